package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/mocks"
	"github.com/fanhub/fanhub-server/internal/model"
)

func newTestUser(accounts *mocks.AccountStore, perms *mocks.PermissionStore, storage *mocks.Storage) *User {
	log := logger.New(0)
	return NewUser(accounts, &mocks.BlogStore{}, &mocks.PostStore{}, &mocks.CommentStore{}, NewPermission(perms, log), storage, log)
}

func TestUser_GetByRef_Current(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	accounts.On("GetByID", mock.Anything, int64(7)).Return(model.Account{ID: 7, Username: "alice"}, nil)

	u := newTestUser(accounts, &mocks.PermissionStore{}, &mocks.Storage{})

	account, err := u.GetByRef(ctx, 7, model.Ref{Kind: model.RefCurrent})
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
}

func TestUser_GetByRef_CurrentAnonymous(t *testing.T) {
	u := newTestUser(&mocks.AccountStore{}, &mocks.PermissionStore{}, &mocks.Storage{})

	_, err := u.GetByRef(context.Background(), model.Anonymous, model.Ref{Kind: model.RefCurrent})
	requireAPICode(t, err, "Forbidden")
}

func TestUser_GetByRef_Slug(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	accounts.On("GetByUsername", mock.Anything, "alice").Return(model.Account{ID: 7, Username: "alice"}, nil)

	u := newTestUser(accounts, &mocks.PermissionStore{}, &mocks.Storage{})

	account, err := u.GetByRef(ctx, model.Anonymous, model.Ref{Kind: model.RefSlug, Slug: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), account.ID)
}

func TestUser_GetByRef_NotFound(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	accounts.On("GetByID", mock.Anything, int64(404)).Return(model.Account{}, model.ErrNotFound)

	u := newTestUser(accounts, &mocks.PermissionStore{}, &mocks.Storage{})

	_, err := u.GetByRef(ctx, model.Anonymous, model.Ref{Kind: model.RefID, ID: 404})
	requireAPICode(t, err, "ObjectNotFound")
}

func TestUser_UpdateProfile_Stranger(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	perms := &mocks.PermissionStore{}
	perms.On("IsAdmin", mock.Anything, int64(7)).Return(false, nil)

	u := newTestUser(accounts, perms, &mocks.Storage{})

	err := u.UpdateProfile(ctx, 7, 8, "new bio", "")
	requireAPICode(t, err, "Forbidden")
	accounts.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUser_UpdateProfile_Self(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	accounts.On("UpdateProfile", mock.Anything, int64(7), int64(7), "new bio", "").Return(nil)

	u := newTestUser(accounts, &mocks.PermissionStore{}, &mocks.Storage{})

	require.NoError(t, u.UpdateProfile(ctx, 7, 7, "new bio", ""))
	accounts.AssertExpectations(t)
}

func TestUser_UploadAvatar(t *testing.T) {
	ctx := context.Background()
	accounts := &mocks.AccountStore{}
	storage := &mocks.Storage{}

	accounts.On("GetByID", mock.Anything, int64(7)).Return(model.Account{ID: 7, Description: "bio"}, nil)
	storage.On("Upload", mock.Anything, "avatars/users/7", mock.Anything).Return(nil)
	accounts.On("UpdateProfile", mock.Anything, int64(7), int64(7), "bio", "avatars/users/7").Return(nil)

	u := newTestUser(accounts, &mocks.PermissionStore{}, storage)

	key, err := u.UploadAvatar(ctx, 7, 7, strings.NewReader("png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "avatars/users/7", key)
	storage.AssertExpectations(t)
}

func TestUser_DownloadAvatar_NotFound(t *testing.T) {
	ctx := context.Background()
	storage := &mocks.Storage{}
	storage.On("Exists", mock.Anything, "avatars/users/7").Return(false, nil)

	u := newTestUser(&mocks.AccountStore{}, &mocks.PermissionStore{}, storage)

	_, err := u.DownloadAvatar(ctx, 7)
	requireAPICode(t, err, "ObjectNotFound")
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything)
}
