package repository

import (
	"context"
	"database/sql"

	"travelfy/internal/models"
	"travelfy/internal/repository/db"
)

// Users is the typed store for registered accounts, keyed by username.
type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateBio(ctx context.Context, username, bio string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Posts is the typed store for journal entries, scoped per owner.
type Posts interface {
	Upsert(ctx context.Context, p models.Post) error
	GetByID(ctx context.Context, username, id string) (*models.Post, error)
	ListByUser(ctx context.Context, username, status string) ([]models.Post, error)
	Delete(ctx context.Context, username, id string) error
	SetPinned(ctx context.Context, username, id string, pinned bool) error
}

type Repository struct {
	Users Users
	Posts Posts
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users: NewUserSQLite(sqlDB),
		Posts: NewPostSQLite(sqlDB),
	}
}

// InitDB opens the SQLite file and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
