package model

import (
	"context"
	"time"
)

// FandomStore defines persistence operations for fandoms.
type FandomStore interface {
	GetByID(ctx context.Context, id int64) (Fandom, error)
	GetByURL(ctx context.Context, url string) (Fandom, error)
	List(ctx context.Context) ([]Fandom, error)
	// Create inserts a new fandom and returns its id. A duplicate url
	// surfaces as ErrConflict from the unique constraint.
	Create(ctx context.Context, createdBy int64, url, title, description, avatar string) (int64, error)
	Update(ctx context.Context, editedBy, id int64, title, description, avatar string) error
}

// Fandom is a topic community, the top scope of the containment hierarchy.
type Fandom struct {
	ID          int64
	URL         string
	Title       string
	Description string
	Avatar      string
	CreatedAt   time.Time
	EditedAt    *time.Time
	EditedBy    *int64
}
