package store

import (
	"context"
	"errors"
)

var (
	// ErrUsernameTaken is returned by CreateUser when the username is
	// already registered.
	ErrUsernameTaken = errors.New("store: username already taken")

	// ErrInvalidStatus is returned by UpdateConnectionStatus for any value
	// other than accepted or rejected.
	ErrInvalidStatus = errors.New("store: status must be accepted or rejected")
)

// Storage is the single contract through which all entity access happens.
// It is the seam that lets the in-memory reference implementation be swapped
// for a durable backend without touching any caller.
//
// Lookup methods return (nil, nil) when the record does not exist; absence
// is a normal value, not an error. Translating absence into a 404 is the
// route layer's job.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, data InsertUser) (*User, error)

	// Skills
	GetSkill(ctx context.Context, id uint) (*Skill, error)
	GetSkills(ctx context.Context) ([]Skill, error)
	GetSkillsByCategory(ctx context.Context, category string) ([]Skill, error)
	CreateSkill(ctx context.Context, data InsertSkill) (*Skill, error)

	// User skills. AddUserSkill upserts on the (userId, skillId) pair.
	// RemoveUserSkill of an absent pair is a no-op.
	GetUserSkills(ctx context.Context, userID uint) ([]UserSkillWithSkill, error)
	AddUserSkill(ctx context.Context, data InsertUserSkill) (*UserSkill, error)
	UpdateUserSkill(ctx context.Context, userID, skillID uint, updates UserSkillUpdate) (*UserSkill, error)
	RemoveUserSkill(ctx context.Context, userID, skillID uint) error

	// Connections. CreateConnection always starts the row at pending with a
	// fresh creation timestamp regardless of input.
	GetConnection(ctx context.Context, id uint) (*Connection, error)
	GetConnections(ctx context.Context, userID uint, role ConnectionRole) ([]ConnectionWithUser, error)
	CreateConnection(ctx context.Context, data InsertConnection) (*Connection, error)
	UpdateConnectionStatus(ctx context.Context, id uint, status ConnectionStatus) (*Connection, error)

	// Categories
	GetCategories(ctx context.Context) ([]Category, error)
	GetPopularCategories(ctx context.Context, limit int) ([]Category, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
	CreateCategory(ctx context.Context, data InsertCategory) (*Category, error)

	// Sessions, used by the auth layer to persist logins. GetSession
	// returns (nil, nil) for unknown, revoked or expired tokens.
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, token string) (*Session, error)
	RevokeSession(ctx context.Context, token string) error
	RevokeUserSessions(ctx context.Context, userID uint) error
}
