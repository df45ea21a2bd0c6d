package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"travelfy/internal/models"
)

type PostSQLite struct {
	db *sql.DB
}

func NewPostSQLite(db *sql.DB) *PostSQLite {
	return &PostSQLite{db: db}
}

var _ Posts = (*PostSQLite)(nil)

const (
	upsertPostSQL = `
		INSERT INTO posts (id, user_id, title, excerpt, content, date, categories, status, image_url, pinned)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			excerpt=excluded.excerpt,
			content=excluded.content,
			date=excluded.date,
			categories=excluded.categories,
			status=excluded.status,
			image_url=excluded.image_url,
			pinned=excluded.pinned
	`

	selectPostSQL = `
		SELECT id, user_id, title, excerpt, content, date, categories, status, image_url, pinned
		FROM posts WHERE user_id = ? AND id = ?
	`

	selectPostsByUserSQL = `
		SELECT id, user_id, title, excerpt, content, date, categories, status, image_url, pinned
		FROM posts WHERE user_id = ? ORDER BY date DESC
	`

	selectPostsByUserAndStatusSQL = `
		SELECT id, user_id, title, excerpt, content, date, categories, status, image_url, pinned
		FROM posts WHERE user_id = ? AND status = ? ORDER BY date DESC
	`

	deletePostSQL = `DELETE FROM posts WHERE user_id = ? AND id = ?`

	unpinAllSQL = `UPDATE posts SET pinned = 0 WHERE user_id = ?`
	pinOneSQL   = `UPDATE posts SET pinned = 1 WHERE user_id = ? AND id = ?`
	unpinOneSQL = `UPDATE posts SET pinned = 0 WHERE user_id = ? AND id = ?`
)

// marshalCategories converts the ordered list to a JSON string for storage.
func marshalCategories(categories []string) (string, error) {
	if categories == nil {
		categories = []string{}
	}
	b, err := json.Marshal(categories)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalCategories parses the stored JSON string back into a slice.
func unmarshalCategories(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var categories []string
	if err := json.Unmarshal([]byte(s), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Upsert stores a new post or replaces an existing record in place (same id,
// never a duplicate row).
func (r *PostSQLite) Upsert(ctx context.Context, p models.Post) error {
	categoriesJSON, err := marshalCategories(p.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories for post %q: %w", p.ID, err)
	}

	var imageURL *string
	if p.ImageURL != "" {
		imageURL = &p.ImageURL
	}

	_, err = r.db.ExecContext(ctx, upsertPostSQL,
		p.ID,
		p.UserID,
		p.Title,
		p.Excerpt,
		p.Content,
		p.Date,
		categoriesJSON,
		p.Status,
		imageURL,
		p.Pinned,
	)
	if err != nil {
		return fmt.Errorf("upsert post %q: %w", p.ID, err)
	}
	return nil
}

// GetByID fetches one post scoped to its owner. Returns (nil, nil) if not
// found, including when the id exists but belongs to another user.
func (r *PostSQLite) GetByID(ctx context.Context, username, id string) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, selectPostSQL, username, id)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select post %q: %w", id, err)
	}
	return p, nil
}

// ListByUser returns the owner's posts, newest date first. An empty status
// means no filter.
func (r *PostSQLite) ListByUser(ctx context.Context, username, status string) ([]models.Post, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if status == "" {
		rows, err = r.db.QueryContext(ctx, selectPostsByUserSQL, username)
	} else {
		rows, err = r.db.QueryContext(ctx, selectPostsByUserAndStatusSQL, username, status)
	}
	if err != nil {
		return nil, fmt.Errorf("select posts for user %q: %w", username, err)
	}
	defer func() { _ = rows.Close() }()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post for user %q: %w", username, err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts for user %q: %w", username, err)
	}
	return posts, nil
}

// Delete removes the matching record. Deleting an absent id is a no-op.
func (r *PostSQLite) Delete(ctx context.Context, username, id string) error {
	if _, err := r.db.ExecContext(ctx, deletePostSQL, username, id); err != nil {
		return fmt.Errorf("delete post %q: %w", id, err)
	}
	return nil
}

// SetPinned pins or unpins one post. Pinning first unpins every other post of
// the same user inside a single transaction, so at most one pinned post per
// user can ever be observed.
func (r *PostSQLite) SetPinned(ctx context.Context, username, id string, pinned bool) error {
	if !pinned {
		if _, err := r.db.ExecContext(ctx, unpinOneSQL, username, id); err != nil {
			return fmt.Errorf("unpin post %q: %w", id, err)
		}
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin pin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, unpinAllSQL, username); err != nil {
		return fmt.Errorf("unpin posts for user %q: %w", username, err)
	}
	if _, err := tx.ExecContext(ctx, pinOneSQL, username, id); err != nil {
		return fmt.Errorf("pin post %q: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pin transaction: %w", err)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		p              models.Post
		categoriesJSON string
		imageURL       sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Excerpt,
		&p.Content,
		&p.Date,
		&categoriesJSON,
		&p.Status,
		&imageURL,
		&p.Pinned,
	); err != nil {
		return nil, err
	}

	categories, err := unmarshalCategories(categoriesJSON)
	if err != nil {
		return nil, err
	}
	p.Categories = categories
	if imageURL.Valid {
		p.ImageURL = imageURL.String
	}
	return &p, nil
}
