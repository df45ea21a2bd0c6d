package service

import (
	"context"
	"testing"

	"travelfy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memUsers is an in-memory Users repository for service tests.
type memUsers struct {
	users map[string]models.User
	order []string
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]models.User{}}
}

func (m *memUsers) Create(_ context.Context, u models.User) error {
	m.users[u.Username] = u
	m.order = append(m.order, u.Username)
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) UpdateBio(_ context.Context, username, bio string) (bool, error) {
	u, ok := m.users[username]
	if !ok {
		return false, nil
	}
	u.Bio = bio
	m.users[username] = u
	return true, nil
}

func (m *memUsers) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

func newTestAuthService() (*AuthService, *memUsers) {
	users := newMemUsers()
	return NewAuthService(users, "test-signing-key"), users
}

func TestAuthService_SignUpThenLogin(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "alice", "secret1"))

	// signup stores a hash, never the raw password, and an empty bio
	stored := users.users["alice"]
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.Empty(t, stored.Bio)

	// signup does not log the user in; login does
	token, err := svc.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestAuthService_SignUp_ReplayFails(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "alice", "secret1"))
	err := svc.SignUp(ctx, "alice", "other-password")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, users.users, 1)
}

func TestAuthService_SignUp_UsernamesAreCaseSensitive(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "alice", "secret1"))
	require.NoError(t, svc.SignUp(ctx, "Alice", "secret2"))
	assert.Len(t, users.users, 2)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "alice", "secret1"))

	token, err := svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _ := newTestAuthService()

	token, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestAuthService_ParseToken_RejectsGarbageAndForgedTokens(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.ParseToken("not-a-token")
	assert.Error(t, err)

	// a token signed with a different key must not verify
	require.NoError(t, svc.SignUp(ctx, "alice", "secret1"))
	otherSvc := NewAuthService(newMemUsers(), "another-key")
	forged, err := otherSvc.issueToken("alice")
	require.NoError(t, err)

	_, err = svc.ParseToken(forged)
	assert.Error(t, err)
}

func TestAuthService_Bio(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "alice", "secret1"))

	bio, err := svc.GetUserBio(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, bio)

	require.NoError(t, svc.UpdateUserBio(ctx, "alice", "Loves hiking"))

	bio, err = svc.GetUserBio(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Loves hiking", bio)
}

func TestAuthService_Bio_UnknownUser(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	_, err := svc.GetUserBio(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.UpdateUserBio(ctx, "bob", "Loves hiking")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, users.users)
}

func TestAuthService_SeedDefaultUser(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaultUser(ctx))
	require.Len(t, users.users, 1)

	admin := users.users["admin"]
	assert.Equal(t, "Default administrator account.", admin.Bio)

	// default credentials must work
	token, err := svc.Login(ctx, "admin", "password")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// seeding is skipped once any user exists
	require.NoError(t, svc.SeedDefaultUser(ctx))
	assert.Len(t, users.users, 1)
}

func TestAuthService_SeedDefaultUser_SkippedWhenUsersExist(t *testing.T) {
	svc, users := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "alice", "secret1"))
	require.NoError(t, svc.SeedDefaultUser(ctx))

	assert.Len(t, users.users, 1)
	_, ok := users.users["admin"]
	assert.False(t, ok)
}
