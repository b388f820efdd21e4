package handler

import (
	"context"
	"net/http"

	"github.com/fanhub/fanhub-server/internal/apierr"
	restctx "github.com/fanhub/fanhub-server/internal/api/rest/context"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// PostService defines post operations.
type PostService interface {
	GetByRef(ctx context.Context, ref model.Ref) (model.Post, error)
	List(ctx context.Context) ([]model.Post, error)
	ListByBlog(ctx context.Context, blogID int64) ([]model.Post, error)
	ListByFandom(ctx context.Context, fandomID int64) ([]model.Post, error)
	Create(ctx context.Context, principal int64, blog model.Blog, title, content string) (int64, error)
	Update(ctx context.Context, principal int64, post model.Post, title, content string) error
	Votes(ctx context.Context, principal int64, post model.Post) ([]model.Vote, error)
	Vote(ctx context.Context, principal int64, post model.Post, up bool) error
}

// Post handles post endpoints and the comment and vote surfaces nested
// under a post.
type Post struct {
	posts    PostService
	comments CommentService
	logger   *logger.Logger
}

// NewPost creates a new Post handler.
func NewPost(posts PostService, comments CommentService, logger *logger.Logger) *Post {
	return &Post{posts: posts, comments: comments, logger: logger}
}

func (h *Post) resolve(r *http.Request) (model.Post, error) {
	ref, ok := pathRef(r, "post")
	if !ok {
		return model.Post{}, apierr.NewObjectNotFound()
	}
	return h.posts.GetByRef(r.Context(), ref)
}

func (h *Post) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newPostListResponse(posts))
}

func (h *Post) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newPostResponse(post))
}

type updatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Post) Update(w http.ResponseWriter, r *http.Request) {
	post, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.posts.Update(r.Context(), principal, post, req.Title, req.Content); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

func (h *Post) ListComments(w http.ResponseWriter, r *http.Request) {
	post, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	comments, err := h.comments.List(r.Context(), post.ID, 0, 0)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newCommentListResponse(comments))
}

type createCommentRequest struct {
	Content string `json:"content"`
}

func (h *Post) CreateComment(w http.ResponseWriter, r *http.Request) {
	post, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if req.Content == "" {
		WriteError(w, h.logger, apierr.NewValidationError("Content is required."))
		return
	}

	principal := restctx.Principal(r.Context())
	id, err := h.comments.Create(r.Context(), principal, post, req.Content)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, idResponse{ID: id})
}

func (h *Post) ListVotes(w http.ResponseWriter, r *http.Request) {
	post, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	votes, err := h.posts.Votes(r.Context(), principal, post)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newVoteListResponse(votes))
}

type voteRequest struct {
	Up bool `json:"up"`
}

// Vote records the caller's vote, replacing any previous one.
func (h *Post) Vote(w http.ResponseWriter, r *http.Request) {
	post, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.posts.Vote(r.Context(), principal, post, req.Up); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}
