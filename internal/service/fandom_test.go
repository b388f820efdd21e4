package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/mocks"
	"github.com/fanhub/fanhub-server/internal/model"
)

func newTestFandom(fandoms *mocks.FandomStore, perms *mocks.PermissionStore) *Fandom {
	log := logger.New(0)
	return NewFandom(fandoms, NewPermission(perms, log), log)
}

func TestFandom_GetByRef(t *testing.T) {
	ctx := context.Background()
	fandoms := &mocks.FandomStore{}
	fandoms.On("GetByURL", mock.Anything, "starwars").Return(model.Fandom{ID: 2, URL: "starwars"}, nil)
	fandoms.On("GetByID", mock.Anything, int64(2)).Return(model.Fandom{ID: 2, URL: "starwars"}, nil)

	f := newTestFandom(fandoms, &mocks.PermissionStore{})

	byURL, err := f.GetByRef(ctx, model.Ref{Kind: model.RefSlug, Slug: "starwars"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byURL.ID)

	byID, err := f.GetByRef(ctx, model.Ref{Kind: model.RefID, ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "starwars", byID.URL)

	_, err = f.GetByRef(ctx, model.Ref{Kind: model.RefCurrent})
	requireAPICode(t, err, "ObjectNotFound")
}

func TestFandom_Create_AdminOnly(t *testing.T) {
	ctx := context.Background()
	fandoms := &mocks.FandomStore{}
	perms := &mocks.PermissionStore{}
	perms.On("IsAdmin", mock.Anything, int64(7)).Return(false, nil)

	f := newTestFandom(fandoms, perms)

	_, err := f.Create(ctx, 7, "starwars", "Star Wars", "", "")
	requireAPICode(t, err, "Forbidden")
	fandoms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFandom_Create_URLTaken(t *testing.T) {
	ctx := context.Background()
	fandoms := &mocks.FandomStore{}
	perms := &mocks.PermissionStore{}
	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	fandoms.On("Create", mock.Anything, int64(1), "starwars", "Star Wars", "", "").Return(int64(0), model.ErrConflict)

	f := newTestFandom(fandoms, perms)

	_, err := f.Create(ctx, 1, "starwars", "Star Wars", "", "")
	requireAPICode(t, err, "FandomUrlAlreadyTaken")
}

func TestFandom_Update_NeedsEditFlag(t *testing.T) {
	ctx := context.Background()
	fandoms := &mocks.FandomStore{}
	perms := &mocks.PermissionStore{}
	perms.On("IsAdmin", mock.Anything, int64(7)).Return(false, nil)
	perms.On("IsFandomModer", mock.Anything, int64(7), int64(2), model.FlagEditFandom).Return(true, nil)
	fandoms.On("Update", mock.Anything, int64(7), int64(2), "New title", "", "").Return(nil)

	f := newTestFandom(fandoms, perms)

	require.NoError(t, f.Update(ctx, 7, model.Fandom{ID: 2}, "New title", "", ""))
	fandoms.AssertExpectations(t)
}
