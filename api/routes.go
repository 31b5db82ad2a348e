package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/loksar/notifications/api/handlers"
	"github.com/loksar/notifications/api/middleware"
	"github.com/loksar/notifications/internal/logger"
	"github.com/loksar/notifications/internal/tracing"
	"github.com/loksar/notifications/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, log logger.Logger) {
	if s == nil {
		panic("Services cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())                                         // Gin's built-in recovery
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer())) // Our custom Jaeger recovery
	r.Use(middleware.CORSMiddleware())

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck)

	// Submission endpoints
	api := r.Group("/api")
	{
		api.POST("/contact", handlers.Contact(s.NotificationService, log))
		api.POST("/book-cleaning", handlers.BookCleaning(s.NotificationService, log))
		api.POST("/book-gardening", handlers.BookGardening(s.NotificationService, log))
	}
}
