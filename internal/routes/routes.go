package routes

import (
	"socialhub_backend/internal/auth"
	"socialhub_backend/internal/handlers"
	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the HTTP API v1 plus the health and metrics endpoints.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	tokens *auth.TokenManager,
) {
	requireAuth := middleware.AuthMiddleware(tokens)
	requireStaff := middleware.RequirePermission("notifications:broadcast")

	ginRouter.GET("/health", appHandlers.HealthHandler.Health)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api, requireAuth)
		appHandlers.FriendHandler.RegisterRoutes(api, requireAuth)
		appHandlers.NotificationHandler.RegisterRoutes(api, requireAuth, requireStaff)
	}

	logger.Debug("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
