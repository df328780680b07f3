package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "usertables-generator/internal/adapter/gin/handler"
	"usertables-generator/internal/adapter/gin/middleware"
	ginrouter "usertables-generator/internal/adapter/gin/router"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, rateLimiter, l)

	l.Info("Gin REST API configured", zap.String("address", ginAddr))

	// generating 100 users from the remote API takes far longer than a CRUD call
	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}
}
