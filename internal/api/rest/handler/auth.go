package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fanhub/fanhub-server/internal/apierr"
	restctx "github.com/fanhub/fanhub-server/internal/api/rest/context"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/service"
)

// Username and password length bounds, enforced before any store call.
const (
	usernameMinLen = 3
	usernameMaxLen = 64
	passwordMinLen = 8
	passwordMaxLen = 256
)

// AuthService defines the credential operations.
type AuthService interface {
	Register(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password, origin string) (service.TokenPair, error)
	Refresh(ctx context.Context, refreshToken, origin string) (string, error)
	Invalidate(ctx context.Context, username, password string) error
	ChangePassword(ctx context.Context, username, password, newPassword string) error
}

// Auth handles the credential endpoints.
type Auth struct {
	auth   AuthService
	logger *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(auth AuthService, logger *logger.Logger) *Auth {
	return &Auth{auth: auth, logger: logger}
}

func validateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return apierr.NewValidationError(fmt.Sprintf(
			"Username must be %d to %d characters long.", usernameMinLen, usernameMaxLen))
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return apierr.NewValidationError(fmt.Sprintf(
			"Password must be %d to %d characters long.", passwordMinLen, passwordMaxLen))
	}
	return nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req credentialsRequest) validate() error {
	if err := validateUsername(req.Username); err != nil {
		return err
	}
	return validatePassword(req.Password)
}

// Register creates an account and points at it with a Location header.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	id, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/users/%d", id))
	WriteData(w, http.StatusCreated, idResponse{ID: id})
}

type tokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies credentials and returns an access/refresh token pair.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	pair, err := h.auth.Login(r.Context(), req.Username, req.Password, restctx.ClientOrigin(r))
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh exchanges a refresh token for a fresh access token bound to the
// caller's origin.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	accessToken, err := h.auth.Refresh(r.Context(), req.RefreshToken, restctx.ClientOrigin(r))
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, accessTokenResponse{AccessToken: accessToken})
}

// Invalidate revokes every outstanding refresh token for the account.
func (h *Auth) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := req.validate(); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.auth.Invalidate(r.Context(), req.Username, req.Password); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}

type changePasswordRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword verifies the old credentials and stores a new password.
func (h *Auth) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := validateUsername(req.Username); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := validatePassword(req.Password); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.auth.ChangePassword(r.Context(), req.Username, req.Password, req.NewPassword); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	WriteData(w, http.StatusOK, nil)
}
