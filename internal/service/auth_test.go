package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-server/internal/apierr"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/mocks"
	"github.com/fanhub/fanhub-server/internal/model"
)

// requireAPICode asserts that err is an *apierr.Error carrying the code.
func requireAPICode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, code, apiErr.Code)
}

func newTestAuth(t *testing.T, accounts *mocks.AccountStore, tokens *mocks.TokenManager) *Auth {
	t.Helper()
	a, err := NewAuth(accounts, tokens, NewHasher(), logger.New(0))
	require.NoError(t, err)
	return a
}

func TestAuth_Register_Success(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	accounts.On("Create", mock.Anything, "alice", mock.AnythingOfType("string")).Return(int64(7), nil)

	a := newTestAuth(t, accounts, tokens)

	id, err := a.Register(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	accounts.AssertExpectations(t)
}

func TestAuth_Register_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	accounts.On("Create", mock.Anything, "alice", mock.AnythingOfType("string")).Return(int64(0), model.ErrConflict)

	a := newTestAuth(t, accounts, tokens)

	_, err := a.Register(ctx, "alice", "password1")
	requireAPICode(t, err, "UsernameAlreadyTaken")
}

func TestAuth_Login_Success(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	hasher := NewHasher()
	hash, err := hasher.Hash("password1")
	require.NoError(t, err)
	nonce := uuid.New()

	accounts.On("GetCredentials", mock.Anything, "alice").
		Return(model.Credentials{ID: 7, PasswordHash: hash, Nonce: nonce}, nil)
	tokens.On("MintAccessToken", int64(7), "10.0.0.1").Return("access", nil)
	tokens.On("MintRefreshToken", int64(7), nonce).Return("refresh", nil)

	a := newTestAuth(t, accounts, tokens)

	pair, err := a.Login(ctx, "alice", "password1", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
	tokens.AssertExpectations(t)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	hasher := NewHasher()
	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	accounts.On("GetCredentials", mock.Anything, "alice").
		Return(model.Credentials{ID: 7, PasswordHash: hash, Nonce: uuid.New()}, nil)

	a := newTestAuth(t, accounts, tokens)

	_, err = a.Login(ctx, "alice", "password2", "10.0.0.1")
	requireAPICode(t, err, "AuthFail")
	tokens.AssertNotCalled(t, "MintAccessToken", mock.Anything, mock.Anything)
}

func TestAuth_Login_UnknownUsername(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	accounts.On("GetCredentials", mock.Anything, "nobody").
		Return(model.Credentials{}, model.ErrNotFound)

	a := newTestAuth(t, accounts, tokens)

	// An unknown username must be indistinguishable from a wrong password.
	_, err := a.Login(ctx, "nobody", "password1", "10.0.0.1")
	requireAPICode(t, err, "AuthFail")
}

func TestAuth_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	nonce := uuid.New()
	tokens.On("ParseRefreshToken", "refresh").Return(int64(7), nonce, nil)
	accounts.On("GetCredentialsByID", mock.Anything, int64(7)).
		Return(model.Credentials{ID: 7, Nonce: nonce}, nil)
	tokens.On("MintAccessToken", int64(7), "10.0.0.1").Return("access", nil)

	a := newTestAuth(t, accounts, tokens)

	access, err := a.Refresh(ctx, "refresh", "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "access", access)
}

func TestAuth_Refresh_RevokedNonce(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	tokens.On("ParseRefreshToken", "refresh").Return(int64(7), uuid.New(), nil)
	accounts.On("GetCredentialsByID", mock.Anything, int64(7)).
		Return(model.Credentials{ID: 7, Nonce: uuid.New()}, nil)

	a := newTestAuth(t, accounts, tokens)

	_, err := a.Refresh(ctx, "refresh", "10.0.0.1")
	requireAPICode(t, err, "InvalidToken")
	tokens.AssertNotCalled(t, "MintAccessToken", mock.Anything, mock.Anything)
}

func TestAuth_Refresh_Expired(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	tokens.On("ParseRefreshToken", "refresh").Return(int64(0), uuid.UUID{}, model.ErrExpiredToken)

	a := newTestAuth(t, accounts, tokens)

	_, err := a.Refresh(ctx, "refresh", "10.0.0.1")
	requireAPICode(t, err, "ExpiredToken")
}

func TestAuth_Refresh_Garbage(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	tokens.On("ParseRefreshToken", "garbage").Return(int64(0), uuid.UUID{}, errors.New("bad signature"))

	a := newTestAuth(t, accounts, tokens)

	_, err := a.Refresh(ctx, "garbage", "10.0.0.1")
	requireAPICode(t, err, "InvalidToken")
}

func TestAuth_Invalidate_RotatesNonce(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	hasher := NewHasher()
	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	accounts.On("GetCredentials", mock.Anything, "alice").
		Return(model.Credentials{ID: 7, PasswordHash: hash, Nonce: uuid.New()}, nil)
	accounts.On("RotateNonce", mock.Anything, int64(7)).Return(nil)

	a := newTestAuth(t, accounts, tokens)

	require.NoError(t, a.Invalidate(ctx, "alice", "password1"))
	accounts.AssertExpectations(t)
}

func TestAuth_Invalidate_WrongPassword(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	hasher := NewHasher()
	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	accounts.On("GetCredentials", mock.Anything, "alice").
		Return(model.Credentials{ID: 7, PasswordHash: hash, Nonce: uuid.New()}, nil)

	a := newTestAuth(t, accounts, tokens)

	requireAPICode(t, a.Invalidate(ctx, "alice", "wrong"), "AuthFail")
	accounts.AssertNotCalled(t, "RotateNonce", mock.Anything, mock.Anything)
}

func TestAuth_ChangePassword(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	tokens := &mocks.TokenManager{}

	hasher := NewHasher()
	hash, err := hasher.Hash("password1")
	require.NoError(t, err)

	accounts.On("GetCredentials", mock.Anything, "alice").
		Return(model.Credentials{ID: 7, PasswordHash: hash, Nonce: uuid.New()}, nil)
	accounts.On("RotateNonce", mock.Anything, int64(7)).Return(nil)
	accounts.On("SetPassword", mock.Anything, int64(7), mock.MatchedBy(func(newHash string) bool {
		return hasher.Verify("password2", newHash)
	})).Return(nil)

	a := newTestAuth(t, accounts, tokens)

	require.NoError(t, a.ChangePassword(ctx, "alice", "password1", "password2"))
	accounts.AssertExpectations(t)
}
