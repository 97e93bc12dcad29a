package relation

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/internal/middleware"
	"github.com/conectidade/api/internal/store"
	"github.com/conectidade/api/pkg/responses"
	"github.com/conectidade/api/pkg/validator"
)

// UserSkillController manages the authenticated user's skill declarations.
type UserSkillController struct {
	store store.Storage
}

func NewUserSkillController(st store.Storage) *UserSkillController {
	return &UserSkillController{store: st}
}

type AddUserSkillRequest struct {
	SkillID    uint             `json:"skillId" binding:"required"`
	IsTeaching bool             `json:"isTeaching"`
	IsLearning bool             `json:"isLearning"`
	Level      store.SkillLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type UpdateUserSkillRequest struct {
	IsTeaching *bool             `json:"isTeaching"`
	IsLearning *bool             `json:"isLearning"`
	Level      *store.SkillLevel `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
}

// ListUserSkills godoc
// @Summary      List my skills
// @Description  Get the caller's skills, each joined with the skill record.
// @Tags         UserSkills
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  responses.SuccessResponse{data=[]store.UserSkillWithSkill}
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /user-skills [get]
func (uc *UserSkillController) ListUserSkills(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	userSkills, err := uc.store.GetUserSkills(c.Request.Context(), userID)
	if err != nil {
		log.Printf("user-skills: list failed: %v", err)
		responses.InternalServerError(c, "Failed to fetch user skills")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User skills retrieved successfully", userSkills)
}

// AddUserSkill godoc
// @Summary      Add a skill to my profile
// @Description  Declare a skill as taught and/or learned. Adding a skill already on the profile overwrites the previous declaration.
// @Tags         UserSkills
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userSkill  body  AddUserSkillRequest  true  "Skill declaration"
// @Success      201  {object}  responses.SuccessResponse{data=store.UserSkill}
// @Failure      400  {object}  responses.ErrorResponse "Validation error"
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse "Skill not found"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /user-skills [post]
func (uc *UserSkillController) AddUserSkill(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req AddUserSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorDetails(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	// The referenced skill must exist before the join row is written.
	skill, err := uc.store.GetSkill(c.Request.Context(), req.SkillID)
	if err != nil {
		log.Printf("user-skills: skill lookup failed: %v", err)
		responses.InternalServerError(c, "Failed to add user skill")
		return
	}
	if skill == nil {
		responses.NotFound(c, "Skill")
		return
	}

	userSkill, err := uc.store.AddUserSkill(c.Request.Context(), store.InsertUserSkill{
		UserID:     userID,
		SkillID:    req.SkillID,
		IsTeaching: req.IsTeaching,
		IsLearning: req.IsLearning,
		Level:      req.Level,
	})
	if err != nil {
		log.Printf("user-skills: add failed: %v", err)
		responses.InternalServerError(c, "Failed to add user skill")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "User skill added successfully", userSkill)
}

// UpdateUserSkill godoc
// @Summary      Update a skill on my profile
// @Description  Partially update the teaching/learning flags or level of one of the caller's skills.
// @Tags         UserSkills
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        skillId    path  int  true  "Skill ID"
// @Param        userSkill  body  UpdateUserSkillRequest  true  "Fields to change"
// @Success      200  {object}  responses.SuccessResponse{data=store.UserSkill}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse "User skill not found"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /user-skills/{skillId} [patch]
func (uc *UserSkillController) UpdateUserSkill(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	skillID, err := strconv.ParseUint(c.Param("skillId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid skill ID format")
		return
	}

	var req UpdateUserSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorDetails(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	userSkill, err := uc.store.UpdateUserSkill(c.Request.Context(), userID, uint(skillID), store.UserSkillUpdate{
		IsTeaching: req.IsTeaching,
		IsLearning: req.IsLearning,
		Level:      req.Level,
	})
	if err != nil {
		log.Printf("user-skills: update failed: %v", err)
		responses.InternalServerError(c, "Failed to update user skill")
		return
	}
	if userSkill == nil {
		responses.NotFound(c, "User skill")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "User skill updated successfully", userSkill)
}

// RemoveUserSkill godoc
// @Summary      Remove a skill from my profile
// @Description  Delete the caller's declaration for a skill. Removing a skill that is not on the profile succeeds with no effect.
// @Tags         UserSkills
// @Security     BearerAuth
// @Param        skillId  path  int  true  "Skill ID"
// @Success      204  "Removed"
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /user-skills/{skillId} [delete]
func (uc *UserSkillController) RemoveUserSkill(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	skillID, err := strconv.ParseUint(c.Param("skillId"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid skill ID format")
		return
	}

	if err := uc.store.RemoveUserSkill(c.Request.Context(), userID, uint(skillID)); err != nil {
		log.Printf("user-skills: remove failed: %v", err)
		responses.InternalServerError(c, "Failed to remove user skill")
		return
	}
	c.Status(http.StatusNoContent)
}
