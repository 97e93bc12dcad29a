package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/config"
	"github.com/conectidade/api/internal/middleware"
	"github.com/conectidade/api/internal/store"
	"github.com/conectidade/api/pkg/responses"
	"github.com/conectidade/api/pkg/token"
	"github.com/conectidade/api/pkg/validator"
	"github.com/conectidade/api/utils"
)

// AuthController handles registration, login and session management.
type AuthController struct {
	store  store.Storage
	config *config.Config
}

func NewAuthController(st store.Storage, cfg *config.Config) *AuthController {
	return &AuthController{store: st, config: cfg}
}

func (ac *AuthController) generateAndSaveTokens(ctx context.Context, userID uint) (string, string, error) {
	accessToken, err := token.GenerateAccessToken(userID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshToken, err := token.GenerateRefreshToken(userID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	session := &store.Session{
		UserID:    userID,
		Token:     refreshToken,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.store.CreateSession(ctx, session); err != nil {
		return "", "", fmt.Errorf("failed to save session: %w", err)
	}
	return accessToken, refreshToken, nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a user with name, username, password and user type.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201  {object}  responses.SuccessResponse{data=AuthResponse}
// @Failure      400  {object}  responses.ErrorResponse "Validation error"
// @Failure      409  {object}  responses.ErrorResponse "Username already taken"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorDetails(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}

	user, err := ac.store.CreateUser(c.Request.Context(), store.InsertUser{
		Name:     req.Name,
		Username: req.Username,
		Password: hashedPassword,
		UserType: req.UserType,
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			responses.SendError(c, http.StatusConflict, "Username already taken")
			return
		}
		log.Printf("register: create user failed: %v", err)
		responses.InternalServerError(c, "User creation failed")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("register: %v", err)
		responses.InternalServerError(c, "")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "User registered successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(user),
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate with username and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200  {object}  responses.SuccessResponse{data=AuthResponse}
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse "Invalid credentials"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorDetails(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	user, err := ac.store.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		log.Printf("login: lookup failed: %v", err)
		responses.InternalServerError(c, "")
		return
	}
	// Same response for unknown user and wrong password.
	if user == nil || !utils.CheckPassword(user.Password, req.Password) {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("login: %v", err)
		responses.InternalServerError(c, "")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(user),
	})
}

// RefreshToken godoc
// @Summary      Refresh access token
// @Description  Exchange a live refresh token for a new access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse "Invalid or expired refresh token"
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /refresh [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendErrorDetails(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	session, err := ac.store.GetSession(c.Request.Context(), req.RefreshToken)
	if err != nil {
		log.Printf("refresh: session lookup failed: %v", err)
		responses.InternalServerError(c, "")
		return
	}
	if session == nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	accessToken, err := token.GenerateAccessToken(session.UserID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Access token generation failed")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed", gin.H{"accessToken": accessToken})
}

// Logout godoc
// @Summary      Logout
// @Description  Revoke the caller's sessions. With a refreshToken in the body only that session dies; otherwise all of the caller's sessions are revoked.
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body  LogoutRequest  false  "Logout options"
// @Success      200  {object}  responses.SuccessResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req LogoutRequest
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	if req.RefreshToken != "" && !req.AllSessions {
		err = ac.store.RevokeSession(c.Request.Context(), req.RefreshToken)
	} else {
		err = ac.store.RevokeUserSessions(c.Request.Context(), userID)
	}
	if err != nil {
		log.Printf("logout: %v", err)
		responses.InternalServerError(c, "")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged out", nil)
}

// CurrentUser godoc
// @Summary      Current user
// @Description  Return the authenticated user's identity.
// @Tags         Auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  responses.SuccessResponse{data=UserResponse}
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /user [get]
func (ac *AuthController) CurrentUser(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	user, err := ac.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("current user: lookup failed: %v", err)
		responses.InternalServerError(c, "")
		return
	}
	if user == nil {
		responses.NotFound(c, "User")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "User retrieved successfully", FilterUserRecord(user))
}
