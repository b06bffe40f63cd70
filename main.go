package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus-errand-api/config"
	"campus-errand-api/handlers"
	"campus-errand-api/middleware"
	"campus-errand-api/repository"
	"campus-errand-api/routes"
	"campus-errand-api/services"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	log.Info("database connected and migrated")

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	notificationSvc := services.NewNotificationService(notificationRepo, log)
	orderSvc := services.NewOrderService(orderRepo, userRepo, notificationSvc, log)
	reviewSvc := services.NewReviewService(reviewRepo, orderRepo, userRepo, log)
	userSvc := services.NewUserService(userRepo, log)

	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Campus Errand Matching API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🏃 Welcome to the Campus Errand Matching API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"requester", "runner"},
		})
	})

	routes.SetupRoutes(r, routes.Handlers{
		Users:         handlers.NewUserHandler(userSvc),
		Orders:        handlers.NewOrderHandler(orderSvc),
		Reviews:       handlers.NewReviewHandler(reviewSvc),
		Notifications: handlers.NewNotificationHandler(notificationSvc),
	})

	log.Infof("server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
