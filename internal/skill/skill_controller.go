package skill

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/internal/store"
	"github.com/conectidade/api/pkg/responses"
)

// SkillController serves the skill catalog.
type SkillController struct {
	store store.Storage
}

func NewSkillController(st store.Storage) *SkillController {
	return &SkillController{store: st}
}

// ListSkills godoc
// @Summary      List skills
// @Description  Get all skills, optionally filtered by category name. The category filter matches the skill's own free-text category string.
// @Tags         Skills
// @Produce      json
// @Param        category  query  string  false  "Category name filter"
// @Success      200  {object}  responses.SuccessResponse{data=[]store.Skill}
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /skills [get]
func (sc *SkillController) ListSkills(c *gin.Context) {
	var (
		skills []store.Skill
		err    error
	)
	if category := c.Query("category"); category != "" {
		skills, err = sc.store.GetSkillsByCategory(c.Request.Context(), category)
	} else {
		skills, err = sc.store.GetSkills(c.Request.Context())
	}
	if err != nil {
		log.Printf("skills: list failed: %v", err)
		responses.InternalServerError(c, "Failed to fetch skills")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skills retrieved successfully", skills)
}

// GetSkillByID godoc
// @Summary      Get a skill
// @Tags         Skills
// @Produce      json
// @Param        id  path  int  true  "Skill ID"
// @Success      200  {object}  responses.SuccessResponse{data=store.Skill}
// @Failure      400  {object}  responses.ErrorResponse "Invalid id"
// @Failure      404  {object}  responses.ErrorResponse "Skill not found"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /skills/{id} [get]
func (sc *SkillController) GetSkillByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid skill ID format")
		return
	}

	skill, err := sc.store.GetSkill(c.Request.Context(), uint(id))
	if err != nil {
		log.Printf("skills: get %d failed: %v", id, err)
		responses.InternalServerError(c, "Failed to fetch skill")
		return
	}
	if skill == nil {
		responses.NotFound(c, "Skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Skill retrieved successfully", skill)
}
