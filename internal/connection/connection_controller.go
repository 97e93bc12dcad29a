package connection

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/internal/middleware"
	"github.com/conectidade/api/internal/store"
	"github.com/conectidade/api/pkg/responses"
	"github.com/conectidade/api/pkg/validator"
)

// ConnectionController manages teacher-student connection proposals.
type ConnectionController struct {
	store store.Storage
}

func NewConnectionController(st store.Storage) *ConnectionController {
	return &ConnectionController{store: st}
}

// CreateConnectionRequest carries the counterpart of the caller: teacherId
// when the caller proposes as a student, studentId when the caller
// proposes as a teacher. Exactly one side is expected; the caller's own id
// always comes from the session, never from the body.
type CreateConnectionRequest struct {
	TeacherID uint   `json:"teacherId"`
	StudentID uint   `json:"studentId"`
	Message   string `json:"message" binding:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status store.ConnectionStatus `json:"status" binding:"required,oneof=accepted rejected"`
}

// ListConnections godoc
// @Summary      List my connections
// @Description  Get the caller's connections on one side of the relationship, each joined with the party on the other side. Defaults to the student side.
// @Tags         Connections
// @Security     BearerAuth
// @Produce      json
// @Param        role  query  string  false  "Side to query"  Enums(teacher, student)  default(student)
// @Success      200  {object}  responses.SuccessResponse{data=[]store.ConnectionWithUser}
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /connections [get]
func (cc *ConnectionController) ListConnections(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	role := store.ConnectionRole(c.DefaultQuery("role", string(store.RoleStudent)))
	if !role.Valid() {
		role = store.RoleStudent
	}

	connections, err := cc.store.GetConnections(c.Request.Context(), userID, role)
	if err != nil {
		log.Printf("connections: list failed: %v", err)
		responses.InternalServerError(c, "Failed to fetch connections")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Connections retrieved successfully", connections)
}

// CreateConnection godoc
// @Summary      Propose a connection
// @Description  Create a pending connection between the caller and the given counterpart. The new connection always starts as pending.
// @Tags         Connections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        connection  body  CreateConnectionRequest  true  "Counterpart and optional message"
// @Success      201  {object}  responses.SuccessResponse{data=store.Connection}
// @Failure      400  {object}  responses.ErrorResponse "No counterpart id supplied"
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /connections [post]
func (cc *ConnectionController) CreateConnection(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorDetails(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	var data store.InsertConnection
	switch {
	case req.TeacherID != 0:
		// Caller is the student proposing to a teacher.
		data = store.InsertConnection{TeacherID: req.TeacherID, StudentID: userID, Message: req.Message}
	case req.StudentID != 0:
		// Caller is the teacher proposing to a student.
		data = store.InsertConnection{TeacherID: userID, StudentID: req.StudentID, Message: req.Message}
	default:
		responses.BadRequest(c, "Either teacherId or studentId must be provided")
		return
	}

	connection, err := cc.store.CreateConnection(c.Request.Context(), data)
	if err != nil {
		log.Printf("connections: create failed: %v", err)
		responses.InternalServerError(c, "Failed to create connection")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Connection created successfully", connection)
}

// UpdateConnectionStatus godoc
// @Summary      Accept or reject a connection
// @Description  Move a connection to accepted or rejected. Only the teacher or the student on the connection may do this.
// @Tags         Connections
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path  int  true  "Connection ID"
// @Param        status  body  UpdateStatusRequest  true  "New status"
// @Success      200  {object}  responses.SuccessResponse{data=store.Connection}
// @Failure      400  {object}  responses.ErrorResponse "Bad status value"
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse "Caller is not a party"
// @Failure      404  {object}  responses.ErrorResponse "Connection not found"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /connections/{id}/status [patch]
func (cc *ConnectionController) UpdateConnectionStatus(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid connection ID format")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorDetails(c, http.StatusBadRequest, "Status must be 'accepted' or 'rejected'", validator.ParseError(err))
		return
	}

	connection, err := cc.store.GetConnection(c.Request.Context(), uint(id))
	if err != nil {
		log.Printf("connections: get %d failed: %v", id, err)
		responses.InternalServerError(c, "Failed to update connection status")
		return
	}
	if connection == nil {
		responses.NotFound(c, "Connection")
		return
	}

	// Only a party to the connection may settle it.
	if connection.TeacherID != userID && connection.StudentID != userID {
		responses.Forbidden(c, "Not authorized to update this connection")
		return
	}

	updated, err := cc.store.UpdateConnectionStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrInvalidStatus) {
			responses.BadRequest(c, "Status must be 'accepted' or 'rejected'")
			return
		}
		log.Printf("connections: update %d failed: %v", id, err)
		responses.InternalServerError(c, "Failed to update connection status")
		return
	}
	if updated == nil {
		responses.NotFound(c, "Connection")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Connection status updated successfully", updated)
}
