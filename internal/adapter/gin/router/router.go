package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"usertables-generator/internal/adapter/gin/handler"
	"usertables-generator/internal/adapter/gin/middleware"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "usertables-generator"

// SetupRouter configures and returns a Gin router with all routes and middleware.
// rateLimiter may be nil.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": ServiceName,
		})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(rateLimiter.Handler())
	{
		users := v1.Group("/users")
		{
			users.POST("/generate", userHandler.GenerateUsers)
			users.GET("", userHandler.ListUsers)
		}
	}

	return router
}
