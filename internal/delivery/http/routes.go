package http

import (
	"github.com/cafeassist/backend/config"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	}
	{
		v1.POST("/assistant", handler.Recommend)
		v1.GET("/products", handler.ListProducts)
		v1.GET("/products/:id", handler.GetProduct)
		v1.POST("/contact", handler.SubmitContact)

		admin := v1.Group("/admin")
		admin.Use(AdminAuthMiddleware(cfg.Admin.Key))
		{
			admin.POST("/products", handler.CreateProduct)
			admin.PUT("/products/:id", handler.UpdateProduct)
			admin.DELETE("/products/:id", handler.DeleteProduct)
			admin.GET("/labels", handler.ListLabels)
			admin.POST("/labels", handler.AddLabel)
			admin.GET("/notifications", handler.ListNotifications)
			admin.DELETE("/notifications/:id", handler.ResolveNotification)
		}
	}

	return router
}
