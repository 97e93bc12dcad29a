package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/conectidade/api/config"
	"github.com/conectidade/api/internal/auth"
	"github.com/conectidade/api/internal/category"
	"github.com/conectidade/api/internal/connection"
	"github.com/conectidade/api/internal/relation"
	"github.com/conectidade/api/internal/skill"
	"github.com/conectidade/api/internal/store"
)

// SetupRoutes builds the engine with every API route mounted against the
// given store. Tests construct throwaway engines with fresh memory stores
// through the same path the server uses.
func SetupRoutes(st store.Storage, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.App.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "Conectidade API",
			"status":  "ok",
			"docs":    "/swagger/index.html",
			"baseURL": "/api",
		})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	auth.RegisterAuthRoutes(api, st, cfg)
	category.RegisterCategoryRoutes(api, st)
	skill.RegisterSkillRoutes(api, st)
	relation.RegisterUserSkillRoutes(api, st, cfg)
	connection.RegisterConnectionRoutes(api, st, cfg)

	return r
}
