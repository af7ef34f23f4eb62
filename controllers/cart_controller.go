package controllers

import (
	"net/http"

	"restaurant-service/middleware"
	"restaurant-service/models"
	"restaurant-service/services"

	"github.com/gin-gonic/gin"
)

// CartController handles HTTP requests for the caller's cart.
type CartController struct {
	cartService services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart handles GET /api/cart/menu-items.
func (cc *CartController) GetCart(ctx *gin.Context) {
	items, svcErr := cc.cartService.ListCart(ctx.Request.Context(), middleware.GetIdentity(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	if items == nil {
		items = []models.CartItem{}
	}
	ctx.JSON(http.StatusOK, gin.H{"cart": items})
}

// AddItem handles POST /api/cart/menu-items. Adding an item already in the
// cart increments its quantity.
func (cc *CartController) AddItem(ctx *gin.Context) {
	var req models.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := cc.cartService.AddItem(ctx.Request.Context(), middleware.GetIdentity(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"cart_item": item})
}

// ClearCart handles DELETE /api/cart/menu-items. Idempotent.
func (cc *CartController) ClearCart(ctx *gin.Context) {
	if svcErr := cc.cartService.ClearCart(ctx.Request.Context(), middleware.GetIdentity(ctx)); svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Status(http.StatusNoContent)
}
