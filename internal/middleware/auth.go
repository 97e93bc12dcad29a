package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/conectidade/api/internal/store"
	"github.com/conectidade/api/pkg/responses"
	"github.com/conectidade/api/pkg/token"
)

const (
	AuthUserIDKey = "auth_user_id"
)

// AuthMiddleware authenticates requests with a bearer access token and
// stores the user id in the context. The user must still exist in the
// store; a token for a vanished user is rejected.
func AuthMiddleware(jwtSecret string, st store.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Unauthorized(c, "Not authenticated")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			responses.Unauthorized(c, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateToken(parts[1], jwtSecret)
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token")
			return
		}

		user, err := st.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			responses.InternalServerError(c, "")
			return
		}
		if user == nil {
			responses.Unauthorized(c, "User no longer exists")
			return
		}

		c.Set(AuthUserIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the authenticated user's id from the
// context. It only succeeds after AuthMiddleware has run.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(AuthUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}

	uid, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("user ID has unexpected type: %T", userID)
	}
	return uid, nil
}
