package handler

import (
	"context"
	"net/http"

	"github.com/fanhub/fanhub-server/internal/apierr"
	restctx "github.com/fanhub/fanhub-server/internal/api/rest/context"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// FandomService defines fandom operations.
type FandomService interface {
	GetByRef(ctx context.Context, ref model.Ref) (model.Fandom, error)
	List(ctx context.Context) ([]model.Fandom, error)
	Create(ctx context.Context, principal int64, url, title, description, avatar string) (int64, error)
	Update(ctx context.Context, principal int64, fandom model.Fandom, title, description, avatar string) error
}

// Fandom handles fandom endpoints and the moderation and blog surfaces
// nested under a fandom.
type Fandom struct {
	fandoms    FandomService
	blogs      BlogService
	posts      PostService
	moderation ModerationService
	logger     *logger.Logger
}

// NewFandom creates a new Fandom handler.
func NewFandom(fandoms FandomService, blogs BlogService, posts PostService, moderation ModerationService, logger *logger.Logger) *Fandom {
	return &Fandom{
		fandoms:    fandoms,
		blogs:      blogs,
		posts:      posts,
		moderation: moderation,
		logger:     logger,
	}
}

func (h *Fandom) resolve(r *http.Request) (model.Fandom, error) {
	ref, ok := pathRef(r, "fandom")
	if !ok {
		return model.Fandom{}, apierr.NewObjectNotFound()
	}
	return h.fandoms.GetByRef(r.Context(), ref)
}

func (h *Fandom) List(w http.ResponseWriter, r *http.Request) {
	fandoms, err := h.fandoms.List(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newFandomListResponse(fandoms))
}

func (h *Fandom) Get(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newFandomResponse(fandom))
}

type createFandomRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

func (h *Fandom) Create(w http.ResponseWriter, r *http.Request) {
	var req createFandomRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.URL == "" || req.Title == "" {
		WriteError(w, h.logger, apierr.NewValidationError("Url and title are required."))
		return
	}

	principal := restctx.Principal(r.Context())
	id, err := h.fandoms.Create(r.Context(), principal, req.URL, req.Title, req.Description, req.Avatar)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, idResponse{ID: id})
}

type updateFandomRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

func (h *Fandom) Update(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req updateFandomRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.fandoms.Update(r.Context(), principal, fandom, req.Title, req.Description, req.Avatar); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

// Moderation surface.

func (h *Fandom) ListModers(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	moders, err := h.moderation.ListFandomModers(r.Context(), fandom.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newFandomModerListResponse(moders))
}

func (h *Fandom) GetModer(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	moder, err := h.moderation.GetFandomModer(r.Context(), fandom.ID, userID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newFandomModerResponse(moder))
}

func (h *Fandom) GrantModer(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req grantFandomModerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.moderation.GrantFandomModer(r.Context(), principal, fandom.ID, req.UserID, req.model()); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, nil)
}

func (h *Fandom) UpdateModer(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	var req fandomModerFlags
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.moderation.UpdateFandomModer(r.Context(), principal, fandom.ID, userID, req.model()); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

func (h *Fandom) RevokeModer(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
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
	if err := h.moderation.RevokeFandomModer(r.Context(), principal, fandom.ID, userID); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

func (h *Fandom) ListBans(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	bans, err := h.moderation.ListFandomBans(r.Context(), fandom.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBanListResponse(bans))
}

func (h *Fandom) GetBan(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	userID, ok := pathID(r, "user")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	ban, err := h.moderation.GetFandomBan(r.Context(), fandom.ID, userID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBanResponse(ban))
}

func (h *Fandom) Ban(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
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
	if err := h.moderation.BanAtFandom(r.Context(), principal, fandom.ID, req.UserID, req.Reason); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, nil)
}

func (h *Fandom) Unban(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
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
	if err := h.moderation.UnbanAtFandom(r.Context(), principal, fandom.ID, userID); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

// Blog and post surfaces nested under a fandom.

func (h *Fandom) ListBlogs(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	blogs, err := h.blogs.ListByFandom(r.Context(), fandom.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBlogListResponse(blogs))
}

type createBlogRequest struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

func (h *Fandom) CreateBlog(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req createBlogRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.URL == "" || req.Title == "" {
		WriteError(w, h.logger, apierr.NewValidationError("Url and title are required."))
		return
	}

	principal := restctx.Principal(r.Context())
	id, err := h.blogs.Create(r.Context(), principal, fandom, req.URL, req.Title, req.Description, req.Avatar)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, idResponse{ID: id})
}

func (h *Fandom) GetBlog(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	ref, ok := pathRef(r, "blog")
	if !ok {
		WriteError(w, h.logger, apierr.NewObjectNotFound())
		return
	}

	blog, err := h.blogs.GetByRef(r.Context(), fandom.ID, ref)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBlogResponse(blog))
}

func (h *Fandom) ListPosts(w http.ResponseWriter, r *http.Request) {
	fandom, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	posts, err := h.posts.ListByFandom(r.Context(), fandom.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newPostListResponse(posts))
}
