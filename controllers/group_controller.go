package controllers

import (
	"net/http"

	"restaurant-service/middleware"
	"restaurant-service/models"
	"restaurant-service/services"

	"github.com/gin-gonic/gin"
)

// GroupController handles the Manager and Delivery-crew roster endpoints.
// One controller serves both groups; the group name is fixed per route.
type GroupController struct {
	directoryService services.DirectoryService
}

// NewGroupController creates a new GroupController.
func NewGroupController(directoryService services.DirectoryService) *GroupController {
	return &GroupController{directoryService: directoryService}
}

// ListMembers handles GET /api/groups/<group>/users (Manager only).
func (gc *GroupController) ListMembers(group string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		users, svcErr := gc.directoryService.ListMembers(ctx.Request.Context(), middleware.GetIdentity(ctx), group)
		if svcErr != nil {
			ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
			return
		}
		if users == nil {
			users = []models.User{}
		}
		ctx.JSON(http.StatusOK, gin.H{"users": users})
	}
}

// AddMember handles POST /api/groups/<group>/users (Manager only). The
// target user is named in the body; adding an existing member is idempotent.
func (gc *GroupController) AddMember(group string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req models.AddGroupMemberRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}

		user, svcErr := gc.directoryService.AddMember(ctx.Request.Context(), middleware.GetIdentity(ctx), group, req.Username)
		if svcErr != nil {
			ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
			return
		}
		ctx.JSON(http.StatusCreated, gin.H{"user": user})
	}
}

// RemoveMember handles DELETE /api/groups/<group>/users/:id (Manager only).
func (gc *GroupController) RemoveMember(group string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := parseIDParam(ctx)
		if !ok {
			return
		}

		if svcErr := gc.directoryService.RemoveMember(ctx.Request.Context(), middleware.GetIdentity(ctx), group, userID); svcErr != nil {
			ctx.JSON(svcErr.Code, gin.H{"error": svcErr.Message})
			return
		}
		ctx.Status(http.StatusNoContent)
	}
}
