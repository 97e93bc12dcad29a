package category

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/internal/store"
	"github.com/conectidade/api/pkg/responses"
)

// CategoryController serves the read-only category reference data.
type CategoryController struct {
	store store.Storage
}

func NewCategoryController(st store.Storage) *CategoryController {
	return &CategoryController{store: st}
}

// ListCategories godoc
// @Summary      List categories
// @Description  Get every category available for browsing.
// @Tags         Categories
// @Produce      json
// @Success      200  {object}  responses.SuccessResponse{data=[]store.Category}
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /categories [get]
func (cc *CategoryController) ListCategories(c *gin.Context) {
	categories, err := cc.store.GetCategories(c.Request.Context())
	if err != nil {
		log.Printf("categories: list failed: %v", err)
		responses.InternalServerError(c, "Failed to fetch categories")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Categories retrieved successfully", categories)
}

// PopularCategories godoc
// @Summary      Popular categories
// @Description  Get the first N categories in creation order (default 5).
// @Tags         Categories
// @Produce      json
// @Param        limit  query  int  false  "Maximum number of categories"  default(5)
// @Success      200  {object}  responses.SuccessResponse{data=[]store.Category}
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /categories/popular [get]
func (cc *CategoryController) PopularCategories(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	categories, err := cc.store.GetPopularCategories(c.Request.Context(), limit)
	if err != nil {
		log.Printf("categories: popular failed: %v", err)
		responses.InternalServerError(c, "Failed to fetch popular categories")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Popular categories retrieved successfully", categories)
}

// GetCategoryByID godoc
// @Summary      Get a category
// @Tags         Categories
// @Produce      json
// @Param        id  path  int  true  "Category ID"
// @Success      200  {object}  responses.SuccessResponse{data=store.Category}
// @Failure      400  {object}  responses.ErrorResponse "Invalid id"
// @Failure      404  {object}  responses.ErrorResponse "Category not found"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /categories/{id} [get]
func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid category ID format")
		return
	}

	category, err := cc.store.GetCategory(c.Request.Context(), uint(id))
	if err != nil {
		log.Printf("categories: get %d failed: %v", id, err)
		responses.InternalServerError(c, "Failed to fetch category")
		return
	}
	if category == nil {
		responses.NotFound(c, "Category")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Category retrieved successfully", category)
}
