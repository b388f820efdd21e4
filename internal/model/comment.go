package model

import (
	"context"
	"time"
)

// CommentStore defines persistence operations for comments and comment votes.
type CommentStore interface {
	GetByID(ctx context.Context, id int64) (Comment, error)
	// List narrows by the first non-zero scope, most specific first:
	// post, then blog, then fandom, then everything.
	List(ctx context.Context, postID, blogID, fandomID int64) ([]Comment, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Comment, error)
	ListAnswers(ctx context.Context, parentID int64) ([]Comment, error)
	Create(ctx context.Context, owner, postID, blogID, fandomID, parentID int64, content string) (int64, error)
	Update(ctx context.Context, editedBy, id int64, content string) error
	ListVotes(ctx context.Context, commentID int64) ([]Vote, error)
	SetVote(ctx context.Context, commentID, userID int64, up bool) error
}

// Comment belongs to a post and carries the full scope chain. ParentID is
// zero for top-level comments.
type Comment struct {
	ID        int64
	PostID    int64
	BlogID    int64
	FandomID  int64
	Owner     int64
	ParentID  int64
	Content   string
	CreatedAt time.Time
	EditedAt  *time.Time
	EditedBy  *int64
}
