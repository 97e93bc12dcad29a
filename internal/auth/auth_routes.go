package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/config"
	"github.com/conectidade/api/internal/middleware"
	"github.com/conectidade/api/internal/store"
)

// RegisterAuthRoutes mounts the auth endpoints directly under the API
// group, mirroring the client's expectations (/api/register, /api/login,
// /api/logout, /api/user).
func RegisterAuthRoutes(router *gin.RouterGroup, st store.Storage, cfg *config.Config) {
	controller := NewAuthController(st, cfg)

	router.POST("/register", controller.Register)
	router.POST("/login", controller.Login)
	router.POST("/refresh", controller.RefreshToken)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWT.AccessTokenSecret, st))
	{
		protected.POST("/logout", controller.Logout)
		protected.GET("/user", controller.CurrentUser)
	}
}
