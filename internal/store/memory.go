package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

type userSkillKey struct {
	userID  uint
	skillID uint
}

// MemoryStore is the reference Storage implementation: plain maps with
// monotonically increasing identifiers, one counter per entity type. The
// HTTP server runs handlers concurrently, so every operation takes the
// mutex; each call is atomic with respect to every other.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[uint]User
	skills      map[uint]Skill
	userSkills  map[userSkillKey]UserSkill
	connections map[uint]Connection
	categories  map[uint]Category
	sessions    map[string]Session

	nextUserID       uint
	nextSkillID      uint
	nextConnectionID uint
	nextCategoryID   uint
	nextSessionID    uint
}

var _ Storage = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store. Call Seed to load the initial
// categories and skills.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:            make(map[uint]User),
		skills:           make(map[uint]Skill),
		userSkills:       make(map[userSkillKey]UserSkill),
		connections:      make(map[uint]Connection),
		categories:       make(map[uint]Category),
		sessions:         make(map[string]Session),
		nextUserID:       1,
		nextSkillID:      1,
		nextConnectionID: 1,
		nextCategoryID:   1,
		nextSessionID:    1,
	}
}

// --- Users ---

func (m *MemoryStore) GetUser(_ context.Context, id uint) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) CreateUser(_ context.Context, data InsertUser) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == data.Username {
			return nil, ErrUsernameTaken
		}
	}

	userType := data.UserType
	if userType == "" {
		userType = UserTypeLearn
	}

	u := User{
		ID:       m.nextUserID,
		Name:     data.Name,
		Username: data.Username,
		Password: data.Password,
		UserType: userType,
	}
	m.nextUserID++
	m.users[u.ID] = u
	return &u, nil
}

// --- Skills ---

func (m *MemoryStore) GetSkill(_ context.Context, id uint) (*Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.skills[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) GetSkills(_ context.Context) ([]Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	skills := make([]Skill, 0, len(m.skills))
	for _, s := range m.skills {
		skills = append(skills, s)
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].ID < skills[j].ID })
	return skills, nil
}

func (m *MemoryStore) GetSkillsByCategory(_ context.Context, category string) ([]Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	skills := make([]Skill, 0)
	for _, s := range m.skills {
		if s.Category == category {
			skills = append(skills, s)
		}
	}
	sort.Slice(skills, func(i, j int) bool { return skills[i].ID < skills[j].ID })
	return skills, nil
}

func (m *MemoryStore) CreateSkill(_ context.Context, data InsertSkill) (*Skill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Skill{
		ID:          m.nextSkillID,
		Name:        data.Name,
		Category:    data.Category,
		Description: data.Description,
		IconName:    data.IconName,
	}
	m.nextSkillID++
	m.skills[s.ID] = s
	return &s, nil
}

// --- User skills ---

func (m *MemoryStore) GetUserSkills(_ context.Context, userID uint) ([]UserSkillWithSkill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]UserSkillWithSkill, 0)
	for key, us := range m.userSkills {
		if key.userID != userID {
			continue
		}
		skill, ok := m.skills[key.skillID]
		if !ok {
			// Skill has been removed; the join drops the row.
			continue
		}
		result = append(result, UserSkillWithSkill{UserSkill: us, Skill: skill})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SkillID < result[j].SkillID })
	return result, nil
}

func (m *MemoryStore) AddUserSkill(_ context.Context, data InsertUserSkill) (*UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

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
	// Upsert: a second add for the same pair overwrites the first.
	m.userSkills[userSkillKey{data.UserID, data.SkillID}] = us
	return &us, nil
}

func (m *MemoryStore) UpdateUserSkill(_ context.Context, userID, skillID uint, updates UserSkillUpdate) (*UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := userSkillKey{userID, skillID}
	us, ok := m.userSkills[key]
	if !ok {
		return nil, nil
	}

	if updates.IsTeaching != nil {
		us.IsTeaching = *updates.IsTeaching
	}
	if updates.IsLearning != nil {
		us.IsLearning = *updates.IsLearning
	}
	if updates.Level != nil {
		us.Level = *updates.Level
	}
	m.userSkills[key] = us
	return &us, nil
}

func (m *MemoryStore) RemoveUserSkill(_ context.Context, userID, skillID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.userSkills, userSkillKey{userID, skillID})
	return nil
}

// --- Connections ---

func (m *MemoryStore) GetConnection(_ context.Context, id uint) (*Connection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.connections[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MemoryStore) GetConnections(_ context.Context, userID uint, role ConnectionRole) ([]ConnectionWithUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ConnectionWithUser, 0)
	for _, c := range m.connections {
		var otherID uint
		switch role {
		case RoleTeacher:
			if c.TeacherID != userID {
				continue
			}
			otherID = c.StudentID
		default:
			if c.StudentID != userID {
				continue
			}
			otherID = c.TeacherID
		}

		other, ok := m.users[otherID]
		if !ok {
			continue
		}
		result = append(result, ConnectionWithUser{Connection: c, User: other})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemoryStore) CreateConnection(_ context.Context, data InsertConnection) (*Connection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := Connection{
		ID:        m.nextConnectionID,
		TeacherID: data.TeacherID,
		StudentID: data.StudentID,
		Status:    StatusPending,
		Message:   data.Message,
		CreatedAt: time.Now(),
	}
	m.nextConnectionID++
	m.connections[c.ID] = c
	return &c, nil
}

func (m *MemoryStore) UpdateConnectionStatus(_ context.Context, id uint, status ConnectionStatus) (*Connection, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, ErrInvalidStatus
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.connections[id]
	if !ok {
		return nil, nil
	}
	c.Status = status
	m.connections[id] = c
	return &c, nil
}

// --- Categories ---

func (m *MemoryStore) GetCategories(_ context.Context) ([]Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	categories := make([]Category, 0, len(m.categories))
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

// GetPopularCategories returns the first limit categories in creation
// order. It is not a popularity ranking.
func (m *MemoryStore) GetPopularCategories(ctx context.Context, limit int) ([]Category, error) {
	if limit <= 0 {
		limit = 5
	}
	categories, err := m.GetCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) > limit {
		categories = categories[:limit]
	}
	return categories, nil
}

func (m *MemoryStore) GetCategory(_ context.Context, id uint) (*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *MemoryStore) CreateCategory(_ context.Context, data InsertCategory) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := Category{
		ID:          m.nextCategoryID,
		Name:        data.Name,
		Description: data.Description,
		IconName:    data.IconName,
		ImageURL:    data.ImageURL,
	}
	m.nextCategoryID++
	m.categories[c.ID] = c
	return &c, nil
}

// --- Sessions ---

func (m *MemoryStore) CreateSession(_ context.Context, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.ID = m.nextSessionID
	m.nextSessionID++
	m.sessions[session.Token] = *session
	return nil
}

func (m *MemoryStore) GetSession(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[token]
	if !ok || s.Revoked || s.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) RevokeSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[token]; ok {
		s.Revoked = true
		m.sessions[token] = s
	}
	return nil
}

func (m *MemoryStore) RevokeUserSessions(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for token, s := range m.sessions {
		if s.UserID == userID {
			s.Revoked = true
			m.sessions[token] = s
		}
	}
	return nil
}
