package routes

import (
	"restaurant-service/controllers"
	"restaurant-service/middleware"
	"restaurant-service/models"
	"restaurant-service/repository"

	"github.com/gin-gonic/gin"
)

// Register wires all API routes. Menu reads are public (optional identity);
// everything else requires authentication, with role checks enforced in the
// services.
func Register(
	r *gin.Engine,
	users repository.UserRepository,
	jwtSecret []byte,
	menuThrottle gin.HandlerFunc,
	orderThrottle gin.HandlerFunc,
	menu *controllers.MenuController,
	cart *controllers.CartController,
	order *controllers.OrderController,
	group *controllers.GroupController,
) {
	requireAuth := middleware.Authenticate(users, jwtSecret)
	optionalAuth := middleware.OptionalAuthenticate(users, jwtSecret)

	api := r.Group("/api")

	categories := api.Group("/categories", optionalAuth)
	categories.GET("", menu.ListCategories)
	categories.POST("", menu.CreateCategory)

	menuItems := api.Group("/menu-items", optionalAuth, menuThrottle)
	menuItems.GET("", menu.ListMenuItems)
	menuItems.POST("", menu.CreateMenuItem)
	menuItems.GET("/:id", menu.GetMenuItem)
	menuItems.PUT("/:id", menu.UpdateMenuItem)
	menuItems.PATCH("/:id", menu.UpdateMenuItem)
	menuItems.DELETE("/:id", menu.DeleteMenuItem)

	cartRoutes := api.Group("/cart", requireAuth)
	cartRoutes.GET("/menu-items", cart.GetCart)
	cartRoutes.POST("/menu-items", cart.AddItem)
	cartRoutes.DELETE("/menu-items", cart.ClearCart)

	orders := api.Group("/orders", requireAuth, orderThrottle)
	orders.GET("", order.GetOrders)
	orders.POST("", order.CreateOrder)
	orders.GET("/:id", order.GetOrderByID)
	orders.PUT("/:id", order.UpdateOrder)
	orders.PATCH("/:id", order.UpdateOrder)
	orders.DELETE("/:id", order.DeleteOrder)

	groups := api.Group("/groups", requireAuth)
	for path, name := range map[string]string{
		"manager":       models.GroupManager,
		"delivery-crew": models.GroupDeliveryCrew,
	} {
		roster := groups.Group("/" + path + "/users")
		roster.GET("", group.ListMembers(name))
		roster.POST("", group.AddMember(name))
		roster.DELETE("/:id", group.RemoveMember(name))
	}
}
