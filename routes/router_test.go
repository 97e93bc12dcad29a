package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conectidade/api/config"
	"github.com/conectidade/api/internal/store"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.Port = "8080"
	cfg.App.FrontendURL = "http://localhost:5173"
	cfg.Storage.Driver = config.DriverMemory
	cfg.JWT.AccessTokenSecret = "test-access-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15
	cfg.JWT.RefreshTokenSecret = "test-refresh-secret"
	cfg.JWT.RefreshTokenExpiryDays = 7
	return cfg
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	require.NoError(t, store.Seed(context.Background(), st))
	return SetupRoutes(st, testConfig())
}

// envelope mirrors the wire format of every JSON response.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

type authResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Username string `json:"username"`
		UserType string `json:"userType"`
	} `json:"user"`
}

func registerUser(t *testing.T, r *gin.Engine, name, username, userType string) authResult {
	t.Helper()

	w, env := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"name":     name,
		"username": username,
		"password": "password123",
		"userType": userType,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var result authResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	return result
}

func TestRegisterAndLogin(t *testing.T) {
	r := newTestRouter(t)

	ana := registerUser(t, r, "Ana", "ana", "teach")
	assert.Equal(t, "ana", ana.User.Username)
	assert.Equal(t, "teach", ana.User.UserType)

	// Duplicate username.
	w, _ := doRequest(t, r, http.MethodPost, "/api/register", "", gin.H{
		"name": "Other Ana", "username": "ana", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Missing user type defaults to learn.
	bruno := registerUser(t, r, "Bruno", "bruno", "")
	assert.Equal(t, "learn", bruno.User.UserType)

	w, env := doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "ana", "password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login authResult
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, ana.User.ID, login.User.ID)

	w, _ = doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "ana", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Unknown user gets the same answer as a wrong password.
	w, _ = doRequest(t, r, http.MethodPost, "/api/login", "", gin.H{
		"username": "nobody", "password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name string
		body gin.H
	}{
		{"short username", gin.H{"name": "Ana", "username": "ab", "password": "password123"}},
		{"short password", gin.H{"name": "Ana", "username": "ana", "password": "12345"}},
		{"missing name", gin.H{"username": "ana", "password": "password123"}},
		{"bad user type", gin.H{"name": "Ana", "username": "ana", "password": "password123", "userType": "wizard"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := doRequest(t, r, http.MethodPost, "/api/register", "", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, env.Errors)
		})
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/user"},
		{http.MethodPost, "/api/logout"},
		{http.MethodGet, "/api/user-skills"},
		{http.MethodPost, "/api/user-skills"},
		{http.MethodGet, "/api/connections"},
		{http.MethodPost, "/api/connections"},
	}
	for _, p := range paths {
		w, _ := doRequest(t, r, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without token", p.method, p.path)

		w, _ = doRequest(t, r, p.method, p.path, "not-a-jwt", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s with garbage token", p.method, p.path)
	}
}

func TestCurrentUser(t *testing.T) {
	r := newTestRouter(t)
	ana := registerUser(t, r, "Ana", "ana", "teach")

	w, env := doRequest(t, r, http.MethodGet, "/api/user", ana.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, ana.User.ID, user.ID)
	assert.Equal(t, "ana", user.Username)
}

func TestRefreshAndLogout(t *testing.T) {
	r := newTestRouter(t)
	ana := registerUser(t, r, "Ana", "ana", "teach")

	w, env := doRequest(t, r, http.MethodPost, "/api/refresh", "", gin.H{
		"refreshToken": ana.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var refreshed struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &refreshed))
	assert.NotEmpty(t, refreshed.AccessToken)

	// Logout revokes the session; the refresh token is dead afterwards.
	w, _ = doRequest(t, r, http.MethodPost, "/api/logout", ana.AccessToken, gin.H{
		"refreshToken": ana.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/refresh", "", gin.H{
		"refreshToken": ana.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The access token keeps working until it expires.
	w, _ = doRequest(t, r, http.MethodGet, "/api/user", ana.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/refresh", "", gin.H{
		"refreshToken": "made-up-token",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []store.Category
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	require.Len(t, categories, 8)
	assert.Equal(t, "Programação", categories[0].Name)

	w, env = doRequest(t, r, http.MethodGet, "/api/categories/popular?limit=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var popular []store.Category
	require.NoError(t, json.Unmarshal(env.Data, &popular))
	require.Len(t, popular, 3)
	assert.Equal(t, "Programação", popular[0].Name)
	assert.Equal(t, "Música", popular[2].Name)

	// Bad limit falls back to the default of five.
	w, env = doRequest(t, r, http.MethodGet, "/api/categories/popular?limit=abc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &popular))
	assert.Len(t, popular, 5)

	w, env = doRequest(t, r, http.MethodGet, "/api/categories/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var category store.Category
	require.NoError(t, json.Unmarshal(env.Data, &category))
	assert.Equal(t, "Programação", category.Name)

	w, _ = doRequest(t, r, http.MethodGet, "/api/categories/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/api/categories/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSkillEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w, env := doRequest(t, r, http.MethodGet, "/api/skills", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var skills []store.Skill
	require.NoError(t, json.Unmarshal(env.Data, &skills))
	assert.Len(t, skills, 7)

	w, env = doRequest(t, r, http.MethodGet, "/api/skills?category=Idiomas", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &skills))
	require.Len(t, skills, 2)
	assert.Equal(t, "Inglês", skills[0].Name)
	assert.Equal(t, "Espanhol", skills[1].Name)

	w, env = doRequest(t, r, http.MethodGet, "/api/skills/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var skill store.Skill
	require.NoError(t, json.Unmarshal(env.Data, &skill))
	assert.Equal(t, "HTML/CSS", skill.Name)

	w, _ = doRequest(t, r, http.MethodGet, "/api/skills/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserSkillEndpoints(t *testing.T) {
	r := newTestRouter(t)
	ana := registerUser(t, r, "Ana", "ana", "both")

	w, _ := doRequest(t, r, http.MethodPost, "/api/user-skills", ana.AccessToken, gin.H{
		"skillId": 1, "isTeaching": true, "level": "advanced",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	// Unknown skill cannot be declared.
	w, _ = doRequest(t, r, http.MethodPost, "/api/user-skills", ana.AccessToken, gin.H{
		"skillId": 999, "isLearning": true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := doRequest(t, r, http.MethodGet, "/api/user-skills", ana.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []store.UserSkillWithSkill
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "HTML/CSS", list[0].Skill.Name)
	assert.True(t, list[0].IsTeaching)
	assert.Equal(t, store.LevelAdvanced, list[0].Level)

	w, env = doRequest(t, r, http.MethodPatch, "/api/user-skills/1", ana.AccessToken, gin.H{
		"isLearning": true, "level": "intermediate",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated store.UserSkill
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.IsTeaching)
	assert.True(t, updated.IsLearning)
	assert.Equal(t, store.LevelIntermediate, updated.Level)

	// Updating a skill not on the profile.
	w, _ = doRequest(t, r, http.MethodPatch, "/api/user-skills/5", ana.AccessToken, gin.H{
		"isLearning": true,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doRequest(t, r, http.MethodDelete, "/api/user-skills/1", ana.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Removal is idempotent.
	w, _ = doRequest(t, r, http.MethodDelete, "/api/user-skills/1", ana.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = doRequest(t, r, http.MethodGet, "/api/user-skills", ana.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Empty(t, list)
}

func TestConnectionLifecycle(t *testing.T) {
	r := newTestRouter(t)
	ana := registerUser(t, r, "Ana", "ana", "teach")
	bruno := registerUser(t, r, "Bruno", "bruno", "learn")
	carol := registerUser(t, r, "Carol", "carol", "learn")

	// Bruno proposes to learn from Ana.
	w, env := doRequest(t, r, http.MethodPost, "/api/connections", bruno.AccessToken, gin.H{
		"teacherId": ana.User.ID, "message": "Quero aprender React!",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	var created store.Connection
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, ana.User.ID, created.TeacherID)
	assert.Equal(t, bruno.User.ID, created.StudentID)
	assert.Equal(t, store.StatusPending, created.Status)

	// Ana sees the proposal on her teacher side, joined with Bruno.
	w, env = doRequest(t, r, http.MethodGet, "/api/connections?role=teacher", ana.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var asTeacher []store.ConnectionWithUser
	require.NoError(t, json.Unmarshal(env.Data, &asTeacher))
	require.Len(t, asTeacher, 1)
	assert.Equal(t, "bruno", asTeacher[0].User.Username)
	assert.Equal(t, store.StatusPending, asTeacher[0].Status)

	statusPath := fmt.Sprintf("/api/connections/%d/status", created.ID)

	// An outsider may not settle it.
	w, _ = doRequest(t, r, http.MethodPatch, statusPath, carol.AccessToken, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Only accepted and rejected are valid targets.
	w, _ = doRequest(t, r, http.MethodPatch, statusPath, ana.AccessToken, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doRequest(t, r, http.MethodPatch, statusPath, ana.AccessToken, gin.H{"status": "accepted"})
	require.Equal(t, http.StatusOK, w.Code)
	var accepted store.Connection
	require.NoError(t, json.Unmarshal(env.Data, &accepted))
	assert.Equal(t, store.StatusAccepted, accepted.Status)

	// Bruno sees the accepted connection on his student side. The default
	// role is student, so no query parameter is needed.
	w, env = doRequest(t, r, http.MethodGet, "/api/connections", bruno.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var asStudent []store.ConnectionWithUser
	require.NoError(t, json.Unmarshal(env.Data, &asStudent))
	require.Len(t, asStudent, 1)
	assert.Equal(t, "ana", asStudent[0].User.Username)
	assert.Equal(t, store.StatusAccepted, asStudent[0].Status)

	w, _ = doRequest(t, r, http.MethodPatch, "/api/connections/999/status", ana.AccessToken, gin.H{"status": "accepted"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateConnectionAsTeacher(t *testing.T) {
	r := newTestRouter(t)
	ana := registerUser(t, r, "Ana", "ana", "teach")
	bruno := registerUser(t, r, "Bruno", "bruno", "learn")

	// Ana, as a teacher, reaches out to Bruno.
	w, env := doRequest(t, r, http.MethodPost, "/api/connections", ana.AccessToken, gin.H{
		"studentId": bruno.User.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created store.Connection
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, ana.User.ID, created.TeacherID)
	assert.Equal(t, bruno.User.ID, created.StudentID)

	// A proposal needs a counterpart.
	w, _ = doRequest(t, r, http.MethodPost, "/api/connections", ana.AccessToken, gin.H{
		"message": "oi",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An unknown role falls back to the student side.
	w, env = doRequest(t, r, http.MethodGet, "/api/connections?role=wizard", bruno.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []store.ConnectionWithUser
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)
}
