package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"travelfy/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, password_hash, bio) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT username, password_hash, bio FROM users WHERE username = ?`
	updateUserBioSQL        = `UPDATE users SET bio = ? WHERE username = ?`
	countUsersSQL           = `SELECT COUNT(*) FROM users`
)

// Create inserts a new user row. The username is the primary key, so a
// duplicate insert fails at the database level.
func (r *UserSQLite) Create(ctx context.Context, u models.User) error {
	if _, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.PasswordHash, u.Bio); err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByUsername fetches a user by exact (case-sensitive) username.
// Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username).
		Scan(&u.Username, &u.PasswordHash, &u.Bio)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return &u, nil
}

// UpdateBio replaces the bio in place and reports whether a row matched.
func (r *UserSQLite) UpdateBio(ctx context.Context, username, bio string) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateUserBioSQL, bio, username)
	if err != nil {
		return false, fmt.Errorf("update bio for user %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for user %q: %w", username, err)
	}
	return n > 0, nil
}

// Count returns the number of registered users. Used for first-run seeding.
func (r *UserSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countUsersSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
