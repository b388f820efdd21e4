package model

import (
	"context"
	"time"
)

// PostStore defines persistence operations for posts and post votes.
type PostStore interface {
	GetByID(ctx context.Context, id int64) (Post, error)
	List(ctx context.Context) ([]Post, error)
	ListByBlog(ctx context.Context, blogID int64) ([]Post, error)
	ListByFandom(ctx context.Context, fandomID int64) ([]Post, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Post, error)
	Create(ctx context.Context, owner, blogID, fandomID int64, title, content string) (int64, error)
	Update(ctx context.Context, editedBy, id int64, title, content string) error
	ListVotes(ctx context.Context, postID int64) ([]Vote, error)
	SetVote(ctx context.Context, postID, userID int64, up bool) error
}

// Post belongs to a blog and carries the parent fandom id so permission
// checks never need an extra join.
type Post struct {
	ID        int64
	BlogID    int64
	FandomID  int64
	Owner     int64
	Title     string
	Content   string
	CreatedAt time.Time
	EditedAt  *time.Time
	EditedBy  *int64
}

// Vote is one account's up/down vote on a post or comment.
type Vote struct {
	UserID int64
	Up     bool
	SetAt  time.Time
}
