package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"restaurant-service/middleware"
	"restaurant-service/models"
	"restaurant-service/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for orders.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /api/orders: commits the caller's cart. The body
// is optional; only a missing body is tolerated, so a malformed or chunked
// payload still gets validated.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	var req models.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.CommitOrder(ctx.Request.Context(), middleware.GetIdentity(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetOrders handles GET /api/orders: own orders, or all orders for Managers.
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	result, svcErr := oc.orderService.ListOrders(ctx.Request.Context(), middleware.GetIdentity(ctx), page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetOrderByID handles GET /api/orders/:id.
func (oc *OrderController) GetOrderByID(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	order, svcErr := oc.orderService.GetOrder(ctx.Request.Context(), middleware.GetIdentity(ctx), orderID)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateOrder handles PUT/PATCH /api/orders/:id: status and delivery crew
// assignment.
func (oc *OrderController) UpdateOrder(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, svcErr := oc.orderService.UpdateOrder(ctx.Request.Context(), middleware.GetIdentity(ctx), orderID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"order": order})
}

// DeleteOrder handles DELETE /api/orders/:id (Manager only).
func (oc *OrderController) DeleteOrder(ctx *gin.Context) {
	orderID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if svcErr := oc.orderService.DeleteOrder(ctx.Request.Context(), middleware.GetIdentity(ctx), orderID); svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// parsePaginationParams extracts and validates pagination parameters.
func parsePaginationParams(ctx *gin.Context) (int, int) {
	const MaxLimit = 100
	const DefaultPage = 1
	const DefaultLimit = 10

	pageInt := DefaultPage
	limitInt := DefaultLimit

	if p, err := strconv.Atoi(ctx.DefaultQuery("page", "1")); err == nil && p > 0 {
		pageInt = p
	}
	if l, err := strconv.Atoi(ctx.DefaultQuery("limit", "10")); err == nil && l > 0 {
		limitInt = l
		if limitInt > MaxLimit {
			limitInt = MaxLimit
		}
	}

	return pageInt, limitInt
}
