package routes

import (
	"campus-errand-api/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler group for route registration.
type Handlers struct {
	Users         *handlers.UserHandler
	Orders        *handlers.OrderHandler
	Reviews       *handlers.ReviewHandler
	Notifications *handlers.NotificationHandler
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")
	{
		// Mock identity (real auth is out of scope)
		api.GET("/user/me", h.Users.Me)
		api.POST("/user/switch", h.Users.Switch)
		api.GET("/users", h.Users.List)
		api.PATCH("/user/preferences", h.Users.UpdatePreferences)
		api.PATCH("/user/profile", h.Users.UpdateProfile)

		// Orders
		api.POST("/orders", h.Orders.Create)
		api.GET("/orders", h.Orders.List)
		api.PATCH("/orders/:id/status", h.Orders.UpdateStatus)
		api.PATCH("/orders/:id/cancel-acceptance", h.Orders.CancelAcceptance)

		// Reviews
		api.POST("/reviews", h.Reviews.Submit)
		api.GET("/orders/:id/review-status", h.Reviews.Status)

		// Notifications
		api.GET("/notifications", h.Notifications.List)
		api.POST("/notifications/mark-read", h.Notifications.MarkRead)

		// State machine info (great for docs/Postman)
		api.GET("/state-machine", h.Orders.StateMachineInfo)
	}
}
