package routes

import (
	"inventory/internal/core/container"
	"inventory/internal/metrics"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	container.LoginHandler.RegisterRoutes(router, container.LoginLimiter.Middleware())
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(container.Tokens.JWTMiddleware())

	container.UserHandler.RegisterRoutes(protectedRoutes)
	container.AssetHandler.RegisterRoutes(protectedRoutes)
	container.CategoryHandler.RegisterRoutes(protectedRoutes)
	container.LocationHandler.RegisterRoutes(protectedRoutes)
	container.CartHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine, container *container.Container) {
	router.GET("/health", container.HealthCheck.Handler())
	router.GET("/metrics", metrics.Handler(container.Registry))
}
