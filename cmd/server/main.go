package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"container-tracking-service/internal/auth"
	"container-tracking-service/internal/config"
	"container-tracking-service/internal/controller"
	"container-tracking-service/internal/middleware"
	"container-tracking-service/internal/platform/db"
	"container-tracking-service/internal/repository"
	"container-tracking-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	// Shared Postgres database, owned by the Django warehouse system.
	// This service only reads it.
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	// Repositories and services
	userRepo := repository.NewUserRepository(database)
	orderRepo := repository.NewOrderRepository(database)

	codec := auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codec)
	trackingService := service.NewTrackingService(orderRepo)

	// Handlers
	ctrl := controller.NewTrackingController(authService, trackingService)

	// Router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Public routes
	r.GET("/heartbeat", ctrl.Heartbeat)
	r.POST("/login", ctrl.Login)

	// Protected routes (require token)
	authed := r.Group("/")
	authed.Use(middleware.Auth(authService))
	authed.POST("/order_tracking", ctrl.OrderTracking)

	log.Printf("Container tracking service listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
