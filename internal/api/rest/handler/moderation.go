package handler

import (
	"context"
	"time"

	"github.com/fanhub/fanhub-server/internal/model"
)

// ModerationService defines grant and ban operations at both scopes.
type ModerationService interface {
	ListFandomModers(ctx context.Context, fandomID int64) ([]model.FandomModer, error)
	GetFandomModer(ctx context.Context, fandomID, userID int64) (model.FandomModer, error)
	GrantFandomModer(ctx context.Context, principal, fandomID, targetID int64, flags model.FandomModerFlags) error
	UpdateFandomModer(ctx context.Context, principal, fandomID, targetID int64, flags model.FandomModerFlags) error
	RevokeFandomModer(ctx context.Context, principal, fandomID, targetID int64) error
	ListFandomBans(ctx context.Context, fandomID int64) ([]model.Ban, error)
	GetFandomBan(ctx context.Context, fandomID, userID int64) (model.Ban, error)
	BanAtFandom(ctx context.Context, principal, fandomID, targetID int64, reason string) error
	UnbanAtFandom(ctx context.Context, principal, fandomID, targetID int64) error

	ListBlogModers(ctx context.Context, blogID int64) ([]model.BlogModer, error)
	GetBlogModer(ctx context.Context, blogID, userID int64) (model.BlogModer, error)
	GrantBlogModer(ctx context.Context, principal int64, blog model.Blog, targetID int64, flags model.BlogModerFlags) error
	UpdateBlogModer(ctx context.Context, principal int64, blog model.Blog, targetID int64, flags model.BlogModerFlags) error
	RevokeBlogModer(ctx context.Context, principal int64, blog model.Blog, targetID int64) error
	ListBlogBans(ctx context.Context, blogID int64) ([]model.Ban, error)
	GetBlogBan(ctx context.Context, blogID, userID int64) (model.Ban, error)
	BanAtBlog(ctx context.Context, principal int64, blog model.Blog, targetID int64, reason string) error
	UnbanAtBlog(ctx context.Context, principal int64, blog model.Blog, targetID int64) error
}

type fandomModerFlags struct {
	EditFandom   bool `json:"edit_f"`
	ManageFandom bool `json:"manage_f"`
	BanFandom    bool `json:"ban_f"`
	CreateBlog   bool `json:"create_b"`
	EditBlog     bool `json:"edit_b"`
	EditPost     bool `json:"edit_p"`
	EditComment  bool `json:"edit_c"`
}

func (f fandomModerFlags) model() model.FandomModerFlags {
	return model.FandomModerFlags{
		EditFandom:   f.EditFandom,
		ManageFandom: f.ManageFandom,
		BanFandom:    f.BanFandom,
		CreateBlog:   f.CreateBlog,
		EditBlog:     f.EditBlog,
		EditPost:     f.EditPost,
		EditComment:  f.EditComment,
	}
}

type fandomModerResponse struct {
	UserID    int64     `json:"user_id"`
	FandomID  int64     `json:"fandom_id"`
	SetBy     int64     `json:"set_by"`
	CreatedAt time.Time `json:"created_at"`
	fandomModerFlags
}

func newFandomModerResponse(m model.FandomModer) fandomModerResponse {
	return fandomModerResponse{
		UserID:    m.UserID,
		FandomID:  m.FandomID,
		SetBy:     m.SetBy,
		CreatedAt: m.CreatedAt,
		fandomModerFlags: fandomModerFlags{
			EditFandom:   m.Flags.EditFandom,
			ManageFandom: m.Flags.ManageFandom,
			BanFandom:    m.Flags.BanFandom,
			CreateBlog:   m.Flags.CreateBlog,
			EditBlog:     m.Flags.EditBlog,
			EditPost:     m.Flags.EditPost,
			EditComment:  m.Flags.EditComment,
		},
	}
}

func newFandomModerListResponse(moders []model.FandomModer) []fandomModerResponse {
	out := make([]fandomModerResponse, 0, len(moders))
	for _, m := range moders {
		out = append(out, newFandomModerResponse(m))
	}
	return out
}

type blogModerFlags struct {
	EditBlog    bool `json:"edit_b"`
	ManageBlog  bool `json:"manage_b"`
	BanBlog     bool `json:"ban_b"`
	CreatePost  bool `json:"create_p"`
	EditPost    bool `json:"edit_p"`
	EditComment bool `json:"edit_c"`
}

func (f blogModerFlags) model() model.BlogModerFlags {
	return model.BlogModerFlags{
		EditBlog:    f.EditBlog,
		ManageBlog:  f.ManageBlog,
		BanBlog:     f.BanBlog,
		CreatePost:  f.CreatePost,
		EditPost:    f.EditPost,
		EditComment: f.EditComment,
	}
}

type blogModerResponse struct {
	UserID    int64     `json:"user_id"`
	BlogID    int64     `json:"blog_id"`
	SetBy     int64     `json:"set_by"`
	CreatedAt time.Time `json:"created_at"`
	blogModerFlags
}

func newBlogModerResponse(m model.BlogModer) blogModerResponse {
	return blogModerResponse{
		UserID:    m.UserID,
		BlogID:    m.BlogID,
		SetBy:     m.SetBy,
		CreatedAt: m.CreatedAt,
		blogModerFlags: blogModerFlags{
			EditBlog:    m.Flags.EditBlog,
			ManageBlog:  m.Flags.ManageBlog,
			BanBlog:     m.Flags.BanBlog,
			CreatePost:  m.Flags.CreatePost,
			EditPost:    m.Flags.EditPost,
			EditComment: m.Flags.EditComment,
		},
	}
}

func newBlogModerListResponse(moders []model.BlogModer) []blogModerResponse {
	out := make([]blogModerResponse, 0, len(moders))
	for _, m := range moders {
		out = append(out, newBlogModerResponse(m))
	}
	return out
}

type banResponse struct {
	UserID    int64     `json:"user_id"`
	TargetID  int64     `json:"target_id"`
	SetBy     int64     `json:"set_by"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func newBanResponse(b model.Ban) banResponse {
	return banResponse{
		UserID:    b.UserID,
		TargetID:  b.TargetID,
		SetBy:     b.SetBy,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

func newBanListResponse(bans []model.Ban) []banResponse {
	out := make([]banResponse, 0, len(bans))
	for _, b := range bans {
		out = append(out, newBanResponse(b))
	}
	return out
}

type grantFandomModerRequest struct {
	UserID int64 `json:"user_id"`
	fandomModerFlags
}

type grantBlogModerRequest struct {
	UserID int64 `json:"user_id"`
	blogModerFlags
}

type banRequest struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason"`
}
