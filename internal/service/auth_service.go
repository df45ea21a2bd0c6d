package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travelfy/internal/models"
	"travelfy/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// sessionTTL matches the 7-day cookie the session is mirrored into.
const sessionTTL = 7 * 24 * time.Hour

// Domain errors for auth flows. These are deliberately distinct from
// persistence errors, so callers can tell "username taken" from "write failed".
var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// Default account created on first run.
const (
	defaultUsername = "admin"
	defaultPassword = "password"
	defaultBio      = "Default administrator account."
)

// AuthService handles signup, login and profile bio access.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, signingKey string) *AuthService {
	return &AuthService{users: users, signingKey: []byte(signingKey)}
}

var _ Session = (*AuthService)(nil)

// SignUp registers a new account with an empty bio. It does not log the user
// in. Fails with ErrUsernameTaken on a case-sensitive exact match against an
// existing username.
func (s *AuthService) SignUp(ctx context.Context, username, password string) error {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	return s.users.Create(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Bio:          "",
	})
}

// sessionClaims carries the session identity inside the signed token.
type sessionClaims struct {
	jwt.RegisteredClaims
}

// Login validates credentials and returns a signed session token. The token
// replaces the original presence-only cookie value: the route guard verifies
// the signature rather than trusting the cookie's existence.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(u.Username)
}

// ParseToken verifies the session token and returns the username it names.
func (s *AuthService) ParseToken(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// GetUserBio is a pure lookup with no side effects.
func (s *AuthService) GetUserBio(ctx context.Context, username string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return u.Bio, nil
}

// UpdateUserBio replaces the user's bio in place.
func (s *AuthService) UpdateUserBio(ctx context.Context, username, bio string) error {
	updated, err := s.users.UpdateBio(ctx, username, bio)
	if err != nil {
		return err
	}
	if !updated {
		return ErrUserNotFound
	}
	return nil
}

// SeedDefaultUser creates the admin/password account when the user list is
// empty, matching the first-run seed of the original store.
func (s *AuthService) SeedDefaultUser(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := hashPassword(defaultPassword)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}
	return s.users.Create(ctx, models.User{
		Username:     defaultUsername,
		PasswordHash: hash,
		Bio:          defaultBio,
	})
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed token carrying the username as subject
func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(s.signingKey)
}
