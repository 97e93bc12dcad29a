package category

import (
	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/internal/store"
)

// RegisterCategoryRoutes mounts the public category endpoints. The static
// /popular route must be declared alongside the :id route; gin resolves
// the static segment first.
func RegisterCategoryRoutes(router *gin.RouterGroup, st store.Storage) {
	controller := NewCategoryController(st)

	categories := router.Group("/categories")
	{
		categories.GET("", controller.ListCategories)
		categories.GET("/popular", controller.PopularCategories)
		categories.GET("/:id", controller.GetCategoryByID)
	}
}
