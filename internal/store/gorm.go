package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore is the durable Storage implementation over a relational
// database. It implements the same contract as MemoryStore, so callers
// never know which one they are talking to.
type gormStore struct {
	db *gorm.DB
}

var _ Storage = (*gormStore)(nil)

// NewGormStore wraps an open gorm connection in the Storage contract.
func NewGormStore(db *gorm.DB) Storage {
	return &gormStore{db: db}
}

// AutoMigrate creates or updates the relational schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{}, &Skill{}, &UserSkill{},
		&Connection{}, &Category{}, &Session{},
	)
}

// --- Users ---

func (g *gormStore) GetUser(ctx context.Context, id uint) (*User, error) {
	var u User
	err := g.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (g *gormStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := g.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (g *gormStore) CreateUser(ctx context.Context, data InsertUser) (*User, error) {
	existing, err := g.GetUserByUsername(ctx, data.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	userType := data.UserType
	if userType == "" {
		userType = UserTypeLearn
	}

	u := User{
		Name:     data.Name,
		Username: data.Username,
		Password: data.Password,
		UserType: userType,
	}
	if err := g.db.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --- Skills ---

func (g *gormStore) GetSkill(ctx context.Context, id uint) (*Skill, error) {
	var s Skill
	err := g.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (g *gormStore) GetSkills(ctx context.Context) ([]Skill, error) {
	var skills []Skill
	err := g.db.WithContext(ctx).Order("id ASC").Find(&skills).Error
	return skills, err
}

func (g *gormStore) GetSkillsByCategory(ctx context.Context, category string) ([]Skill, error) {
	var skills []Skill
	err := g.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&skills).Error
	return skills, err
}

func (g *gormStore) CreateSkill(ctx context.Context, data InsertSkill) (*Skill, error) {
	s := Skill{
		Name:        data.Name,
		Category:    data.Category,
		Description: data.Description,
		IconName:    data.IconName,
	}
	if err := g.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// --- User skills ---

func (g *gormStore) GetUserSkills(ctx context.Context, userID uint) ([]UserSkillWithSkill, error) {
	var rows []UserSkill
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("skill_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []UserSkillWithSkill{}, nil
	}

	skillIDs := make([]uint, 0, len(rows))
	for _, r := range rows {
		skillIDs = append(skillIDs, r.SkillID)
	}
	var skills []Skill
	if err := g.db.WithContext(ctx).Where("id IN ?", skillIDs).Find(&skills).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]Skill, len(skills))
	for _, s := range skills {
		byID[s.ID] = s
	}

	result := make([]UserSkillWithSkill, 0, len(rows))
	for _, r := range rows {
		skill, ok := byID[r.SkillID]
		if !ok {
			continue
		}
		result = append(result, UserSkillWithSkill{UserSkill: r, Skill: skill})
	}
	return result, nil
}

func (g *gormStore) AddUserSkill(ctx context.Context, data InsertUserSkill) (*UserSkill, error) {
	level := data.Level
	if level == "" {
		level = LevelBeginner
	}

	us := UserSkill{
		UserID:     data.UserID,
		SkillID:    data.SkillID,
		IsTeaching: data.IsTeaching,
		IsLearning: data.IsLearning,
		Level:      level,
	}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "skill_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_teaching", "is_learning", "level"}),
	}).Create(&us).Error
	if err != nil {
		return nil, err
	}
	return &us, nil
}

func (g *gormStore) UpdateUserSkill(ctx context.Context, userID, skillID uint, updates UserSkillUpdate) (*UserSkill, error) {
	var us UserSkill
	err := g.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		First(&us).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if updates.IsTeaching != nil {
		us.IsTeaching = *updates.IsTeaching
		fields["is_teaching"] = *updates.IsTeaching
	}
	if updates.IsLearning != nil {
		us.IsLearning = *updates.IsLearning
		fields["is_learning"] = *updates.IsLearning
	}
	if updates.Level != nil {
		us.Level = *updates.Level
		fields["level"] = *updates.Level
	}
	if len(fields) == 0 {
		return &us, nil
	}

	err = g.db.WithContext(ctx).Model(&UserSkill{}).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}
	return &us, nil
}

func (g *gormStore) RemoveUserSkill(ctx context.Context, userID, skillID uint) error {
	return g.db.WithContext(ctx).
		Where("user_id = ? AND skill_id = ?", userID, skillID).
		Delete(&UserSkill{}).Error
}

// --- Connections ---

func (g *gormStore) GetConnection(ctx context.Context, id uint) (*Connection, error) {
	var c Connection
	err := g.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (g *gormStore) GetConnections(ctx context.Context, userID uint, role ConnectionRole) ([]ConnectionWithUser, error) {
	column := "student_id"
	if role == RoleTeacher {
		column = "teacher_id"
	}

	var conns []Connection
	err := g.db.WithContext(ctx).
		Where(column+" = ?", userID).
		Order("id ASC").
		Find(&conns).Error
	if err != nil {
		return nil, err
	}
	if len(conns) == 0 {
		return []ConnectionWithUser{}, nil
	}

	otherIDs := make([]uint, 0, len(conns))
	for _, c := range conns {
		if role == RoleTeacher {
			otherIDs = append(otherIDs, c.StudentID)
		} else {
			otherIDs = append(otherIDs, c.TeacherID)
		}
	}
	var users []User
	if err := g.db.WithContext(ctx).Where("id IN ?", otherIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	result := make([]ConnectionWithUser, 0, len(conns))
	for _, c := range conns {
		otherID := c.TeacherID
		if role == RoleTeacher {
			otherID = c.StudentID
		}
		other, ok := byID[otherID]
		if !ok {
			continue
		}
		result = append(result, ConnectionWithUser{Connection: c, User: other})
	}
	return result, nil
}

func (g *gormStore) CreateConnection(ctx context.Context, data InsertConnection) (*Connection, error) {
	c := Connection{
		TeacherID: data.TeacherID,
		StudentID: data.StudentID,
		Status:    StatusPending,
		Message:   data.Message,
		CreatedAt: time.Now(),
	}
	if err := g.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (g *gormStore) UpdateConnectionStatus(ctx context.Context, id uint, status ConnectionStatus) (*Connection, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	c, err := g.GetConnection(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}

	err = g.db.WithContext(ctx).Model(&Connection{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return nil, err
	}
	c.Status = status
	return c, nil
}

// --- Categories ---

func (g *gormStore) GetCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := g.db.WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

func (g *gormStore) GetPopularCategories(ctx context.Context, limit int) ([]Category, error) {
	if limit <= 0 {
		limit = 5
	}
	var categories []Category
	err := g.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&categories).Error
	return categories, err
}

func (g *gormStore) GetCategory(ctx context.Context, id uint) (*Category, error) {
	var c Category
	err := g.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (g *gormStore) CreateCategory(ctx context.Context, data InsertCategory) (*Category, error) {
	c := Category{
		Name:        data.Name,
		Description: data.Description,
		IconName:    data.IconName,
		ImageURL:    data.ImageURL,
	}
	if err := g.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// --- Sessions ---

func (g *gormStore) CreateSession(ctx context.Context, session *Session) error {
	return g.db.WithContext(ctx).Create(session).Error
}

func (g *gormStore) GetSession(ctx context.Context, token string) (*Session, error) {
	var s Session
	err := g.db.WithContext(ctx).
		Where("token = ? AND revoked = ? AND expires_at > ?", token, false, time.Now()).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (g *gormStore) RevokeSession(ctx context.Context, token string) error {
	return g.db.WithContext(ctx).Model(&Session{}).
		Where("token = ?", token).
		Update("revoked", true).Error
}

func (g *gormStore) RevokeUserSessions(ctx context.Context, userID uint) error {
	return g.db.WithContext(ctx).Model(&Session{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
