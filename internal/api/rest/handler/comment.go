package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/fanhub/fanhub-server/internal/apierr"
	restctx "github.com/fanhub/fanhub-server/internal/api/rest/context"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// CommentService defines comment operations.
type CommentService interface {
	GetByRef(ctx context.Context, ref model.Ref) (model.Comment, error)
	List(ctx context.Context, postID, blogID, fandomID int64) ([]model.Comment, error)
	ListAnswers(ctx context.Context, parentID int64) ([]model.Comment, error)
	Create(ctx context.Context, principal int64, post model.Post, content string) (int64, error)
	CreateAnswer(ctx context.Context, principal int64, parent model.Comment, content string) (int64, error)
	Update(ctx context.Context, principal int64, comment model.Comment, content string) error
	Votes(ctx context.Context, principal int64, comment model.Comment) ([]model.Vote, error)
	Vote(ctx context.Context, principal int64, comment model.Comment, up bool) error
}

// Comment handles comment endpoints, answer threads and votes.
type Comment struct {
	comments CommentService
	logger   *logger.Logger
}

// NewComment creates a new Comment handler.
func NewComment(comments CommentService, logger *logger.Logger) *Comment {
	return &Comment{comments: comments, logger: logger}
}

func (h *Comment) resolve(r *http.Request) (model.Comment, error) {
	ref, ok := pathRef(r, "comment")
	if !ok {
		return model.Comment{}, apierr.NewObjectNotFound()
	}
	return h.comments.GetByRef(r.Context(), ref)
}

// queryID parses an optional numeric query parameter, zero when absent.
func queryID(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, apierr.NewValidationError("Query parameter " + name + " must be a non-negative integer.")
	}
	return id, nil
}

// List narrows by the most specific scope query parameter: post_id, then
// blog_id, then fandom_id, then everything.
func (h *Comment) List(w http.ResponseWriter, r *http.Request) {
	postID, err := queryID(r, "post_id")
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	blogID, err := queryID(r, "blog_id")
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	fandomID, err := queryID(r, "fandom_id")
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	comments, err := h.comments.List(r.Context(), postID, blogID, fandomID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newCommentListResponse(comments))
}

func (h *Comment) Get(w http.ResponseWriter, r *http.Request) {
	comment, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newCommentResponse(comment))
}

func (h *Comment) Update(w http.ResponseWriter, r *http.Request) {
	comment, err := h.resolve(r)
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
	if err := h.comments.Update(r.Context(), principal, comment, req.Content); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

func (h *Comment) ListAnswers(w http.ResponseWriter, r *http.Request) {
	comment, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	answers, err := h.comments.ListAnswers(r.Context(), comment.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newCommentListResponse(answers))
}

// CreateAnswer replies under an existing comment.
func (h *Comment) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	comment, err := h.resolve(r)
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
	id, err := h.comments.CreateAnswer(r.Context(), principal, comment, req.Content)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, idResponse{ID: id})
}

func (h *Comment) ListVotes(w http.ResponseWriter, r *http.Request) {
	comment, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	votes, err := h.comments.Votes(r.Context(), principal, comment)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newVoteListResponse(votes))
}

// Vote records the caller's vote, replacing any previous one.
func (h *Comment) Vote(w http.ResponseWriter, r *http.Request) {
	comment, err := h.resolve(r)
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
	if err := h.comments.Vote(r.Context(), principal, comment, req.Up); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}
