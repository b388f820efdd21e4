package handler

import (
	"context"
	"net/http"

	"github.com/fanhub/fanhub-server/internal/apierr"
	restctx "github.com/fanhub/fanhub-server/internal/api/rest/context"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// BlogService defines blog operations.
type BlogService interface {
	GetByRef(ctx context.Context, fandomID int64, ref model.Ref) (model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	ListByFandom(ctx context.Context, fandomID int64) ([]model.Blog, error)
	Create(ctx context.Context, principal int64, fandom model.Fandom, url, title, description, avatar string) (int64, error)
	Update(ctx context.Context, principal int64, blog model.Blog, title, description, avatar string) error
}

// Blog handles the global blog endpoints and the moderation and post
// surfaces nested under a blog.
type Blog struct {
	blogs      BlogService
	posts      PostService
	moderation ModerationService
	logger     *logger.Logger
}

// NewBlog creates a new Blog handler.
func NewBlog(blogs BlogService, posts PostService, moderation ModerationService, logger *logger.Logger) *Blog {
	return &Blog{blogs: blogs, posts: posts, moderation: moderation, logger: logger}
}

// resolve turns the path reference into a stored blog. Blogs addressed
// outside a fandom resolve by id only.
func (h *Blog) resolve(r *http.Request) (model.Blog, error) {
	ref, ok := pathRef(r, "blog")
	if !ok {
		return model.Blog{}, apierr.NewObjectNotFound()
	}
	return h.blogs.GetByRef(r.Context(), 0, ref)
}

func (h *Blog) List(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBlogListResponse(blogs))
}

func (h *Blog) Get(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBlogResponse(blog))
}

type updateBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

func (h *Blog) Update(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req updateBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.blogs.Update(r.Context(), principal, blog, req.Title, req.Description, req.Avatar); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

// Moderation surface.

func (h *Blog) ListModers(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	moders, err := h.moderation.ListBlogModers(r.Context(), blog.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBlogModerListResponse(moders))
}

func (h *Blog) GetModer(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	moder, err := h.moderation.GetBlogModer(r.Context(), blog.ID, userID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBlogModerResponse(moder))
}

func (h *Blog) GrantModer(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req grantBlogModerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.moderation.GrantBlogModer(r.Context(), principal, blog, req.UserID, req.model()); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, nil)
}

func (h *Blog) UpdateModer(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	var req blogModerFlags
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.moderation.UpdateBlogModer(r.Context(), principal, blog, userID, req.model()); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

func (h *Blog) RevokeModer(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.moderation.RevokeBlogModer(r.Context(), principal, blog, userID); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

func (h *Blog) ListBans(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	bans, err := h.moderation.ListBlogBans(r.Context(), blog.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBanListResponse(bans))
}

func (h *Blog) GetBan(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	ban, err := h.moderation.GetBlogBan(r.Context(), blog.ID, userID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBanResponse(ban))
}

func (h *Blog) Ban(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req banRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.moderation.BanAtBlog(r.Context(), principal, blog, req.UserID, req.Reason); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, nil)
}

func (h *Blog) Unban(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.moderation.UnbanAtBlog(r.Context(), principal, blog, userID); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

// Post surface nested under a blog.

func (h *Blog) ListPosts(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	posts, err := h.posts.ListByBlog(r.Context(), blog.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newPostListResponse(posts))
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Blog) CreatePost(w http.ResponseWriter, r *http.Request) {
	blog, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.Title == "" {
		WriteError(w, h.logger, apierr.NewValidationError("Title is required."))
		return
	}

	principal := restctx.Principal(r.Context())
	id, err := h.posts.Create(r.Context(), principal, blog, req.Title, req.Content)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, idResponse{ID: id})
}
