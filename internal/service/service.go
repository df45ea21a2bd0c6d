package service

import (
	"context"

	"travelfy/internal/models"
	"travelfy/internal/repository"
)

// Session owns the registered-user list and the session-token contract.
type Session interface {
	SignUp(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (string, error)
	GetUserBio(ctx context.Context, username string) (string, error)
	UpdateUserBio(ctx context.Context, username, bio string) error
	SeedDefaultUser(ctx context.Context) error
}

// Posts holds one user's journal collection and enforces the single-pin
// invariant.
type Posts interface {
	Save(ctx context.Context, username string, p models.Post, status string) (models.Post, error)
	Get(ctx context.Context, username, id string) (*models.Post, error)
	List(ctx context.Context, username, status string) ([]models.Post, error)
	Delete(ctx context.Context, username, id string) error
	TogglePin(ctx context.Context, username, id string) (bool, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Session
	Posts
}

// AuthConfig carries token-signing settings from the config file.
type AuthConfig struct {
	SigningKey string
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Session: NewAuthService(repos.Users, authCfg.SigningKey),
		Posts:   NewPostService(repos.Posts),
	}
}
