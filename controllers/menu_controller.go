package controllers

import (
	"net/http"
	"strconv"

	"restaurant-service/middleware"
	"restaurant-service/models"
	"restaurant-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MenuController handles HTTP requests for categories and menu items.
type MenuController struct {
	menuService services.MenuService
}

// NewMenuController creates a new MenuController.
func NewMenuController(menuService services.MenuService) *MenuController {
	return &MenuController{menuService: menuService}
}

// ListCategories handles GET /api/categories.
func (mc *MenuController) ListCategories(ctx *gin.Context) {
	categories, svcErr := mc.menuService.ListCategories(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /api/categories (Manager only).
func (mc *MenuController) CreateCategory(ctx *gin.Context) {
	var req models.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	category, svcErr := mc.menuService.CreateCategory(ctx.Request.Context(), middleware.GetIdentity(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"category": category})
}

// ListMenuItems handles GET /api/menu-items. Public; supports category,
// featured and ordering=price query filters.
func (mc *MenuController) ListMenuItems(ctx *gin.Context) {
	var filter models.MenuItemFilter

	if raw := ctx.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		filter.CategoryID = &categoryID
	}
	if raw := ctx.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid featured flag"})
			return
		}
		filter.Featured = &featured
	}
	filter.OrderByPrice = ctx.Query("ordering") == "price"

	items, svcErr := mc.menuService.ListMenuItems(ctx.Request.Context(), filter)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"menu_items": items})
}

// GetMenuItem handles GET /api/menu-items/:id.
func (mc *MenuController) GetMenuItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	item, svcErr := mc.menuService.GetMenuItem(ctx.Request.Context(), itemID)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// CreateMenuItem handles POST /api/menu-items (Manager only).
func (mc *MenuController) CreateMenuItem(ctx *gin.Context) {
	var req models.CreateMenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := mc.menuService.CreateMenuItem(ctx.Request.Context(), middleware.GetIdentity(ctx), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"menu_item": item})
}

// UpdateMenuItem handles PUT/PATCH /api/menu-items/:id (Manager only).
func (mc *MenuController) UpdateMenuItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req models.UpdateMenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	item, svcErr := mc.menuService.UpdateMenuItem(ctx.Request.Context(), middleware.GetIdentity(ctx), itemID, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"menu_item": item})
}

// DeleteMenuItem handles DELETE /api/menu-items/:id (Manager only).
func (mc *MenuController) DeleteMenuItem(ctx *gin.Context) {
	itemID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if svcErr := mc.menuService.DeleteMenuItem(ctx.Request.Context(), middleware.GetIdentity(ctx), itemID); svcErr != nil {
		ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// parseIDParam parses the :id path parameter, writing a 400 on failure.
func parseIDParam(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id format"})
		return uuid.Nil, false
	}
	return id, true
}
