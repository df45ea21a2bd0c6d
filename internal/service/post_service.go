package service

import (
	"context"
	"errors"

	"travelfy/internal/models"
	"travelfy/internal/repository"

	"github.com/google/uuid"
)

// Domain errors for post flows.
var (
	ErrPostNotFound  = errors.New("post not found")
	ErrInvalidStatus = errors.New("invalid post status")
)

// PostService holds post collections and enforces the single-pin invariant.
type PostService struct {
	posts repository.Posts
}

func NewPostService(posts repository.Posts) *PostService {
	return &PostService{posts: posts}
}

var _ Posts = (*PostService)(nil)

// Save creates a post or replaces an existing one in place. A post without an
// id gets a fresh uuid; an edit must name a post the caller owns, otherwise
// ErrPostNotFound. The owner is always stamped from the session identity, and
// the pinned flag survives edits untouched (pin changes go through TogglePin).
func (s *PostService) Save(ctx context.Context, username string, p models.Post, status string) (models.Post, error) {
	if status != models.StatusDraft && status != models.StatusPublished {
		return models.Post{}, ErrInvalidStatus
	}

	p.UserID = username
	p.Status = status

	if p.ID == "" {
		p.ID = uuid.NewString()
		p.Pinned = false
	} else {
		existing, err := s.posts.GetByID(ctx, username, p.ID)
		if err != nil {
			return models.Post{}, err
		}
		if existing == nil {
			return models.Post{}, ErrPostNotFound
		}
		p.Pinned = existing.Pinned
	}

	if err := s.posts.Upsert(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Get returns one post scoped to the owner.
func (s *PostService) Get(ctx context.Context, username, id string) (*models.Post, error) {
	p, err := s.posts.GetByID(ctx, username, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// List returns the owner's posts, newest first, optionally filtered by status.
func (s *PostService) List(ctx context.Context, username, status string) ([]models.Post, error) {
	if status != "" && status != models.StatusDraft && status != models.StatusPublished {
		return nil, ErrInvalidStatus
	}
	return s.posts.ListByUser(ctx, username, status)
}

// Delete removes a post. Deleting an id not in the collection is a no-op.
func (s *PostService) Delete(ctx context.Context, username, id string) error {
	return s.posts.Delete(ctx, username, id)
}

// TogglePin unpins a pinned post, or pins an unpinned one while unpinning
// every other post of the same user. Returns the post's new pinned state.
func (s *PostService) TogglePin(ctx context.Context, username, id string) (bool, error) {
	p, err := s.posts.GetByID(ctx, username, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, ErrPostNotFound
	}

	pinned := !p.Pinned
	if err := s.posts.SetPinned(ctx, username, id, pinned); err != nil {
		return false, err
	}
	return pinned, nil
}
