package relation

import (
	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/config"
	"github.com/conectidade/api/internal/middleware"
	"github.com/conectidade/api/internal/store"
)

// RegisterUserSkillRoutes mounts the authenticated user-skill endpoints.
func RegisterUserSkillRoutes(router *gin.RouterGroup, st store.Storage, cfg *config.Config) {
	controller := NewUserSkillController(st)

	userSkills := router.Group("/user-skills")
	userSkills.Use(middleware.AuthMiddleware(cfg.JWT.AccessTokenSecret, st))
	{
		userSkills.GET("", controller.ListUserSkills)
		userSkills.POST("", controller.AddUserSkill)
		userSkills.PATCH("/:skillId", controller.UpdateUserSkill)
		userSkills.DELETE("/:skillId", controller.RemoveUserSkill)
	}
}
