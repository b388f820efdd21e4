package model

import (
	"context"
	"time"
)

// BlogStore defines persistence operations for blogs.
type BlogStore interface {
	GetByID(ctx context.Context, id int64) (Blog, error)
	// GetByURL resolves a blog by case-insensitive url within one fandom.
	GetByURL(ctx context.Context, fandomID int64, url string) (Blog, error)
	List(ctx context.Context) ([]Blog, error)
	ListByFandom(ctx context.Context, fandomID int64) ([]Blog, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Blog, error)
	Create(ctx context.Context, owner, fandomID int64, url, title, description, avatar string) (int64, error)
	Update(ctx context.Context, editedBy, id int64, title, description, avatar string) error
}

// Blog is an account-owned sub-blog inside a fandom.
type Blog struct {
	ID          int64
	FandomID    int64
	Owner       int64
	URL         string
	Title       string
	Description string
	Avatar      string
	CreatedAt   time.Time
	EditedAt    *time.Time
	EditedBy    *int64
}
