package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (_m *mockAuthService) Register(ctx context.Context, username, password string) (int64, error) {
	args := _m.Called(ctx, username, password)
	return args.Get(0).(int64), args.Error(1)
}

func (_m *mockAuthService) Login(ctx context.Context, username, password, origin string) (service.TokenPair, error) {
	args := _m.Called(ctx, username, password, origin)
	return args.Get(0).(service.TokenPair), args.Error(1)
}

func (_m *mockAuthService) Refresh(ctx context.Context, refreshToken, origin string) (string, error) {
	args := _m.Called(ctx, refreshToken, origin)
	return args.String(0), args.Error(1)
}

func (_m *mockAuthService) Invalidate(ctx context.Context, username, password string) error {
	args := _m.Called(ctx, username, password)
	return args.Error(0)
}

func (_m *mockAuthService) ChangePassword(ctx context.Context, username, password, newPassword string) error {
	args := _m.Called(ctx, username, password, newPassword)
	return args.Error(0)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) (string, map[string]any) {
	t.Helper()
	var body struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Status, body.Data
}

func TestAuth_Register(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Register", mock.Anything, "alice", "password1").Return(int64(7), nil)
	h := NewAuth(svc, logger.New(0))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/auth/register",
		strings.NewReader(`{"username":"alice","password":"password1"}`))

	h.Register(rec, r)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/users/7", rec.Header().Get("Location"))
	status, data := decodeEnvelope(t, rec)
	assert.Equal(t, "success", status)
	assert.Equal(t, float64(7), data["id"])
}

func TestAuth_Register_ShortUsername(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuth(svc, logger.New(0))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/auth/register",
		strings.NewReader(`{"username":"al","password":"password1"}`))

	h.Register(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	status, data := decodeEnvelope(t, rec)
	assert.Equal(t, "fail", status)
	assert.Equal(t, "ValidationError", data["code"])
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_Register_InvalidJSON(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuth(svc, logger.New(0))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/auth/register", strings.NewReader("{not json"))

	h.Register(rec, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	_, data := decodeEnvelope(t, rec)
	assert.Equal(t, "InvalidJson", data["code"])
}

func TestAuth_Register_UsernameTaken(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Register", mock.Anything, "alice", "password1").
		Return(int64(0), apierr.NewUsernameAlreadyTaken())
	h := NewAuth(svc, logger.New(0))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/auth/register",
		strings.NewReader(`{"username":"alice","password":"password1"}`))

	h.Register(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
	status, data := decodeEnvelope(t, rec)
	assert.Equal(t, "fail", status)
	assert.Equal(t, "UsernameAlreadyTaken", data["code"])
}

func TestAuth_Login(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Login", mock.Anything, "alice", "password1", "203.0.113.9").
		Return(service.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
	h := NewAuth(svc, logger.New(0))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"username":"alice","password":"password1"}`))
	r.Header.Set("X-Real-IP", "203.0.113.9")

	h.Login(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	status, data := decodeEnvelope(t, rec)
	assert.Equal(t, "success", status)
	assert.Equal(t, "access", data["access_token"])
	assert.Equal(t, "refresh", data["refresh_token"])
}

func TestAuth_Refresh(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Refresh", mock.Anything, "refresh", "203.0.113.9").Return("access", nil)
	h := NewAuth(svc, logger.New(0))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/auth/refresh",
		strings.NewReader(`{"refresh_token":"refresh"}`))
	r.Header.Set("X-Real-IP", "203.0.113.9")

	h.Refresh(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	_, data := decodeEnvelope(t, rec)
	assert.Equal(t, "access", data["access_token"])
	_, hasRefresh := data["refresh_token"]
	assert.False(t, hasRefresh)
}

func TestAuth_ChangePassword_ValidatesNewPassword(t *testing.T) {
	svc := &mockAuthService{}
	h := NewAuth(svc, logger.New(0))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/auth/change",
		strings.NewReader(`{"username":"alice","password":"password1","new_password":"short"}`))

	h.ChangePassword(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	_, data := decodeEnvelope(t, rec)
	assert.Equal(t, "ValidationError", data["code"])
	svc.AssertNotCalled(t, "ChangePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
