package skill

import (
	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/internal/store"
)

// RegisterSkillRoutes mounts the public skill endpoints.
func RegisterSkillRoutes(router *gin.RouterGroup, st store.Storage) {
	controller := NewSkillController(st)

	skills := router.Group("/skills")
	{
		skills.GET("", controller.ListSkills)
		skills.GET("/:id", controller.GetSkillByID)
	}
}
