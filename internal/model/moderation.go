package model

import (
	"context"
	"time"
)

// Flag names a boolean permission column on a moderation grant. The set is
// closed: stores resolve flags through a static column table and reject
// anything else, so a flag never reaches SQL as raw text.
type Flag string

// Fandom-scope grant flags.
const (
	FlagEditFandom   Flag = "edit_f"
	FlagManageFandom Flag = "manage_f"
	FlagBanFandom    Flag = "ban_f"
	FlagCreateBlog   Flag = "create_b"
)

// Blog-scope grant flags. FlagEditBlog, FlagEditPost and FlagEditComment
// exist at both scopes; a fandom-level grant reaches down into every blog
// of the fandom.
const (
	FlagEditBlog    Flag = "edit_b"
	FlagManageBlog  Flag = "manage_b"
	FlagBanBlog     Flag = "ban_b"
	FlagCreatePost  Flag = "create_p"
	FlagEditPost    Flag = "edit_p"
	FlagEditComment Flag = "edit_c"
)

// FandomModerFlags is the ordered flag set of a fandom-scope grant.
type FandomModerFlags struct {
	EditFandom   bool
	ManageFandom bool
	BanFandom    bool
	CreateBlog   bool
	EditBlog     bool
	EditPost     bool
	EditComment  bool
}

// BlogModerFlags is the ordered flag set of a blog-scope grant.
type BlogModerFlags struct {
	EditBlog    bool
	ManageBlog  bool
	BanBlog     bool
	CreatePost  bool
	EditPost    bool
	EditComment bool
}

// FandomModer is a moderation grant at fandom scope, unique per
// (user, fandom).
type FandomModer struct {
	UserID    int64
	FandomID  int64
	SetBy     int64
	Flags     FandomModerFlags
	CreatedAt time.Time
}

// BlogModer is a moderation grant at blog scope, unique per (user, blog).
type BlogModer struct {
	UserID    int64
	BlogID    int64
	SetBy     int64
	Flags     BlogModerFlags
	CreatedAt time.Time
}

// Ban is a ban record at either scope, unique per (user, scope target).
type Ban struct {
	UserID    int64
	TargetID  int64
	SetBy     int64
	Reason    string
	CreatedAt time.Time
}

// ModerationStore defines persistence for grants and bans at both scopes.
// Insert methods surface unique-constraint violations as ErrConflict; the
// constraint, not the caller's pre-check, is the authoritative guard
// against concurrent grant/ban races.
type ModerationStore interface {
	ListFandomModers(ctx context.Context, fandomID int64) ([]FandomModer, error)
	GetFandomModer(ctx context.Context, fandomID, userID int64) (FandomModer, error)
	InsertFandomModer(ctx context.Context, m FandomModer) error
	UpdateFandomModer(ctx context.Context, m FandomModer) error
	DeleteFandomModer(ctx context.Context, fandomID, userID int64) error

	ListFandomBans(ctx context.Context, fandomID int64) ([]Ban, error)
	GetFandomBan(ctx context.Context, fandomID, userID int64) (Ban, error)
	InsertFandomBan(ctx context.Context, b Ban) error
	DeleteFandomBan(ctx context.Context, fandomID, userID int64) error

	ListBlogModers(ctx context.Context, blogID int64) ([]BlogModer, error)
	GetBlogModer(ctx context.Context, blogID, userID int64) (BlogModer, error)
	InsertBlogModer(ctx context.Context, m BlogModer) error
	UpdateBlogModer(ctx context.Context, m BlogModer) error
	DeleteBlogModer(ctx context.Context, blogID, userID int64) error

	ListBlogBans(ctx context.Context, blogID int64) ([]Ban, error)
	GetBlogBan(ctx context.Context, blogID, userID int64) (Ban, error)
	InsertBlogBan(ctx context.Context, b Ban) error
	DeleteBlogBan(ctx context.Context, blogID, userID int64) error
}
