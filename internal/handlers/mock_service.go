package handlers

import (
	"context"
	"net/http"

	"travelfy/internal/models"
	"travelfy/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockSession struct {
	signUpErr    error
	loginToken   string
	loginErr     error
	parseUser    string
	parseErr     error
	bio          string
	bioErr       error
	updateBioErr error
	seedErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastLoginUsername  string
	lastLoginPassword  string
	lastParseToken     string
	lastBioUsername    string
	lastUpdateUsername string
	lastUpdateBio      string
}

func (m *mockSession) SignUp(_ context.Context, username, password string) error {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpErr
}
func (m *mockSession) Login(_ context.Context, username, password string) (string, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginErr
}
func (m *mockSession) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}
func (m *mockSession) GetUserBio(_ context.Context, username string) (string, error) {
	m.lastBioUsername = username
	return m.bio, m.bioErr
}
func (m *mockSession) UpdateUserBio(_ context.Context, username, bio string) error {
	m.lastUpdateUsername = username
	m.lastUpdateBio = bio
	return m.updateBioErr
}
func (m *mockSession) SeedDefaultUser(_ context.Context) error {
	return m.seedErr
}

type mockPosts struct {
	saved      models.Post
	saveErr    error
	got        *models.Post
	getErr     error
	list       []models.Post
	listErr    error
	deleteErr  error
	pinned     bool
	pinErr     error
	saveCalls  int
	pinCalls   int
	lastUser   string
	lastID     string
	lastStatus string
	lastSave   models.Post
}

func (m *mockPosts) Save(_ context.Context, username string, p models.Post, status string) (models.Post, error) {
	m.saveCalls++
	m.lastUser = username
	m.lastSave = p
	m.lastStatus = status
	return m.saved, m.saveErr
}
func (m *mockPosts) Get(_ context.Context, username, id string) (*models.Post, error) {
	m.lastUser = username
	m.lastID = id
	return m.got, m.getErr
}
func (m *mockPosts) List(_ context.Context, username, status string) ([]models.Post, error) {
	m.lastUser = username
	m.lastStatus = status
	return m.list, m.listErr
}
func (m *mockPosts) Delete(_ context.Context, username, id string) error {
	m.lastUser = username
	m.lastID = id
	return m.deleteErr
}
func (m *mockPosts) TogglePin(_ context.Context, username, id string) (bool, error) {
	m.pinCalls++
	m.lastUser = username
	m.lastID = id
	return m.pinned, m.pinErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
