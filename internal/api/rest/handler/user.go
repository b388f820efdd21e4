package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/fanhub/fanhub-server/internal/apierr"
	restctx "github.com/fanhub/fanhub-server/internal/api/rest/context"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// UserService defines account profile operations and the content listings
// under an account.
type UserService interface {
	GetByRef(ctx context.Context, principal int64, ref model.Ref) (model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	UpdateProfile(ctx context.Context, principal, targetID int64, description, avatar string) error
	UploadAvatar(ctx context.Context, principal, targetID int64, reader io.Reader) (string, error)
	DownloadAvatar(ctx context.Context, targetID int64) (io.ReadCloser, error)
	Blogs(ctx context.Context, userID int64) ([]model.Blog, error)
	Posts(ctx context.Context, userID int64) ([]model.Post, error)
	Comments(ctx context.Context, userID int64) ([]model.Comment, error)
}

// User handles account endpoints.
type User struct {
	users  UserService
	logger *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(users UserService, logger *logger.Logger) *User {
	return &User{users: users, logger: logger}
}

// resolve turns the path reference into a stored account.
func (h *User) resolve(r *http.Request) (model.Account, error) {
	ref, ok := pathRef(r, "user")
	if !ok {
		return model.Account{}, apierr.NewObjectNotFound()
	}
	return h.users.GetByRef(r.Context(), restctx.Principal(r.Context()), ref)
}

func (h *User) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.users.List(r.Context())
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newAccountListResponse(accounts))
}

func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newAccountResponse(account))
}

type updateProfileRequest struct {
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

func (h *User) Update(w http.ResponseWriter, r *http.Request) {
	account, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	if err := h.users.UpdateProfile(r.Context(), principal, account.ID, req.Description, req.Avatar); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

type avatarResponse struct {
	Avatar string `json:"avatar"`
}

// UploadAvatar stores the request body as the account's avatar image.
func (h *User) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	account, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	principal := restctx.Principal(r.Context())
	key, err := h.users.UploadAvatar(r.Context(), principal, account.ID, r.Body)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusCreated, avatarResponse{Avatar: key})
}

// DownloadAvatar streams the stored avatar image.
func (h *User) DownloadAvatar(w http.ResponseWriter, r *http.Request) {
	account, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	reader, err := h.users.DownloadAvatar(r.Context(), account.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("User handler: avatar stream interrupted",
			"user_id", account.ID,
			"error", err.Error())
	}
}

func (h *User) Blogs(w http.ResponseWriter, r *http.Request) {
	account, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	blogs, err := h.users.Blogs(r.Context(), account.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newBlogListResponse(blogs))
}

func (h *User) Posts(w http.ResponseWriter, r *http.Request) {
	account, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	posts, err := h.users.Posts(r.Context(), account.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newPostListResponse(posts))
}

func (h *User) Comments(w http.ResponseWriter, r *http.Request) {
	account, err := h.resolve(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	comments, err := h.users.Comments(r.Context(), account.ID)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteData(w, http.StatusOK, newCommentListResponse(comments))
}
