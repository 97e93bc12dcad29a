package connection

import (
	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/config"
	"github.com/conectidade/api/internal/middleware"
	"github.com/conectidade/api/internal/store"
)

// RegisterConnectionRoutes mounts the authenticated connection endpoints.
func RegisterConnectionRoutes(router *gin.RouterGroup, st store.Storage, cfg *config.Config) {
	controller := NewConnectionController(st)

	connections := router.Group("/connections")
	connections.Use(middleware.AuthMiddleware(cfg.JWT.AccessTokenSecret, st))
	{
		connections.GET("", controller.ListConnections)
		connections.POST("", controller.CreateConnection)
		connections.PATCH("/:id/status", controller.UpdateConnectionStatus)
	}
}
