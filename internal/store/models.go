package store

import "time"

// UserType says what a user is here for: learning, teaching, or both.
type UserType string

const (
	UserTypeLearn UserType = "learn"
	UserTypeTeach UserType = "teach"
	UserTypeBoth  UserType = "both"
)

// SkillLevel is the self-declared proficiency on a user skill.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// ConnectionStatus is the lifecycle state of a teacher-student connection.
type ConnectionStatus string

const (
	StatusPending  ConnectionStatus = "pending"
	StatusAccepted ConnectionStatus = "accepted"
	StatusRejected ConnectionStatus = "rejected"
)

// ConnectionRole selects which side of a connection a user is queried as.
type ConnectionRole string

const (
	RoleTeacher ConnectionRole = "teacher"
	RoleStudent ConnectionRole = "student"
)

// Valid reports whether the role is one of the two known sides.
func (r ConnectionRole) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"not null"`
	Username string   `json:"username" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	UserType UserType `json:"userType" gorm:"not null;default:learn"`
}

type Skill struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Category    string `json:"category" gorm:"not null;index"`
	Description string `json:"description,omitempty"`
	IconName    string `json:"iconName,omitempty"`
}

// UserSkill is the many-to-many row between a user and a skill. The
// (UserID, SkillID) pair is the primary key; there is never more than one
// row per pair.
type UserSkill struct {
	UserID     uint       `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	SkillID    uint       `json:"skillId" gorm:"primaryKey;autoIncrement:false"`
	IsTeaching bool       `json:"isTeaching" gorm:"not null;default:false"`
	IsLearning bool       `json:"isLearning" gorm:"not null;default:false"`
	Level      SkillLevel `json:"level" gorm:"not null;default:beginner"`
}

// UserSkillWithSkill is a read-time join of a user skill with its skill.
type UserSkillWithSkill struct {
	UserSkill
	Skill Skill `json:"skill" gorm:"-"`
}

// Connection is a directed teacher-student relationship proposal.
type Connection struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	TeacherID uint             `json:"teacherId" gorm:"not null;index"`
	StudentID uint             `json:"studentId" gorm:"not null;index"`
	Status    ConnectionStatus `json:"status" gorm:"not null;default:pending"`
	Message   string           `json:"message,omitempty"`
	CreatedAt time.Time        `json:"createdAt" gorm:"not null"`
}

// ConnectionWithUser is a read-time join of a connection with the party on
// the other side of the queried role.
type ConnectionWithUser struct {
	Connection
	User User `json:"user" gorm:"-"`
}

type Category struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description,omitempty"`
	IconName    string `json:"iconName,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// Session is a persisted login session, written and read only by the auth
// layer through the storage contract.
type Session struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"-" gorm:"not null"`
	Revoked   bool      `json:"-" gorm:"not null;default:false"`
}

// Insert* shapes carry exactly the fields a caller may supply on creation.
// Identifiers, timestamps and lifecycle fields are always assigned by the
// store.

type InsertUser struct {
	Name     string
	Username string
	Password string
	UserType UserType
}

type InsertSkill struct {
	Name        string
	Category    string
	Description string
	IconName    string
}

type InsertUserSkill struct {
	UserID     uint
	SkillID    uint
	IsTeaching bool
	IsLearning bool
	Level      SkillLevel
}

type InsertConnection struct {
	TeacherID uint
	StudentID uint
	Message   string
}

type InsertCategory struct {
	Name        string
	Description string
	IconName    string
	ImageURL    string
}

// UserSkillUpdate is a partial update; nil fields are left untouched.
type UserSkillUpdate struct {
	IsTeaching *bool
	IsLearning *bool
	Level      *SkillLevel
}
