package auth

import "github.com/conectidade/api/internal/store"

type RegisterRequest struct {
	Name     string         `json:"name" binding:"required,max=100"`
	Username string         `json:"username" binding:"required,min=3,max=30"`
	Password string         `json:"password" binding:"required,min=6,max=72"`
	UserType store.UserType `json:"userType" binding:"omitempty,oneof=learn teach both"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"maria"`
	Password string `json:"password" binding:"required" example:"password123"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LogoutRequest struct {
	// RefreshToken revokes one session; AllSessions revokes every session
	// of the caller. An empty body revokes all sessions.
	RefreshToken string `json:"refreshToken"`
	AllSessions  bool   `json:"allSessions"`
}

// UserResponse is the public view of a user; the credential never leaves
// the server.
type UserResponse struct {
	ID       uint           `json:"id"`
	Name     string         `json:"name"`
	Username string         `json:"username"`
	UserType store.UserType `json:"userType"`
}

type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// FilterUserRecord strips a stored user down to its public fields.
func FilterUserRecord(u *store.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		UserType: u.UserType,
	}
}
