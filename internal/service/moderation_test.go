package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/mocks"
	"github.com/fanhub/fanhub-server/internal/model"
)

func newTestModeration(moders *mocks.ModerationStore, perms *mocks.PermissionStore, accounts *mocks.AccountStore) *Moderation {
	log := logger.New(0)
	return NewModeration(moders, perms, accounts, NewPermission(perms, log), log)
}

func TestModeration_GrantFandomModer_Success(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsFandomBanned", mock.Anything, int64(7), int64(2)).Return(false, nil)
	moders.On("InsertFandomModer", mock.Anything, model.FandomModer{
		UserID:   7,
		FandomID: 2,
		SetBy:    1,
		Flags:    model.FandomModerFlags{BanFandom: true},
	}).Return(nil)

	m := newTestModeration(moders, perms, accounts)

	err := m.GrantFandomModer(ctx, 1, 2, 7, model.FandomModerFlags{BanFandom: true})
	require.NoError(t, err)
	moders.AssertExpectations(t)
}

func TestModeration_GrantFandomModer_Forbidden(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	perms.On("IsAdmin", mock.Anything, int64(1)).Return(false, nil)
	perms.On("IsFandomModer", mock.Anything, int64(1), int64(2), model.FlagManageFandom).Return(false, nil)

	m := newTestModeration(moders, perms, accounts)

	err := m.GrantFandomModer(ctx, 1, 2, 7, model.FandomModerFlags{})
	requireAPICode(t, err, "Forbidden")
	moders.AssertNotCalled(t, "InsertFandomModer", mock.Anything, mock.Anything)
}

func TestModeration_GrantFandomModer_TargetMissing(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(false, nil)

	m := newTestModeration(moders, perms, accounts)

	err := m.GrantFandomModer(ctx, 1, 2, 7, model.FandomModerFlags{})
	requireAPICode(t, err, "ObjectNotFound")
}

func TestModeration_GrantFandomModer_TargetBanned(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsFandomBanned", mock.Anything, int64(7), int64(2)).Return(true, nil)

	m := newTestModeration(moders, perms, accounts)

	err := m.GrantFandomModer(ctx, 1, 2, 7, model.FandomModerFlags{})
	requireAPICode(t, err, "UserIsBanned")
	moders.AssertNotCalled(t, "InsertFandomModer", mock.Anything, mock.Anything)
}

func TestModeration_GrantFandomModer_Conflict(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsFandomBanned", mock.Anything, int64(7), int64(2)).Return(false, nil)
	moders.On("InsertFandomModer", mock.Anything, mock.Anything).Return(model.ErrConflict)

	m := newTestModeration(moders, perms, accounts)

	// Lost the race against a concurrent grant; the unique constraint is the
	// source of truth.
	err := m.GrantFandomModer(ctx, 1, 2, 7, model.FandomModerFlags{})
	requireAPICode(t, err, "UserIsModer")
}

func TestModeration_BanAtFandom_TargetIsModer(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsFandomModer", mock.Anything, int64(7), int64(2), model.Flag("")).Return(true, nil)

	m := newTestModeration(moders, perms, accounts)

	err := m.BanAtFandom(ctx, 1, 2, 7, "spam")
	requireAPICode(t, err, "UserIsModer")
	moders.AssertNotCalled(t, "InsertFandomBan", mock.Anything, mock.Anything)
}

func TestModeration_BanAtFandom_Conflict(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsFandomModer", mock.Anything, int64(7), int64(2), model.Flag("")).Return(false, nil)
	moders.On("InsertFandomBan", mock.Anything, model.Ban{
		UserID:   7,
		TargetID: 2,
		SetBy:    1,
		Reason:   "spam",
	}).Return(model.ErrConflict)

	m := newTestModeration(moders, perms, accounts)

	err := m.BanAtFandom(ctx, 1, 2, 7, "spam")
	requireAPICode(t, err, "UserIsBanned")
}

func TestModeration_GrantBlogModer_Owner(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	blog := model.Blog{ID: 3, FandomID: 2, Owner: 7}
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)

	m := newTestModeration(moders, perms, accounts)

	err := m.GrantBlogModer(ctx, 1, blog, 7, model.BlogModerFlags{})
	requireAPICode(t, err, "UserIsOwner")
	moders.AssertNotCalled(t, "InsertBlogModer", mock.Anything, mock.Anything)
}

func TestModeration_GrantBlogModer_BannedAtFandom(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	blog := model.Blog{ID: 3, FandomID: 2, Owner: 99}
	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsBlogBanned", mock.Anything, int64(7), int64(3)).Return(false, nil)
	perms.On("IsFandomBanned", mock.Anything, int64(7), int64(2)).Return(true, nil)

	m := newTestModeration(moders, perms, accounts)

	// A fandom ban blocks grants in every blog of that fandom.
	err := m.GrantBlogModer(ctx, 1, blog, 7, model.BlogModerFlags{})
	requireAPICode(t, err, "UserIsBanned")
}

func TestModeration_BanAtBlog_TargetIsFandomModer(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	blog := model.Blog{ID: 3, FandomID: 2, Owner: 99}
	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsBlogModer", mock.Anything, int64(7), int64(3), model.Flag("")).Return(false, nil)
	perms.On("IsFandomModer", mock.Anything, int64(7), int64(2), model.Flag("")).Return(true, nil)

	m := newTestModeration(moders, perms, accounts)

	err := m.BanAtBlog(ctx, 1, blog, 7, "spam")
	requireAPICode(t, err, "UserIsModer")
	moders.AssertNotCalled(t, "InsertBlogBan", mock.Anything, mock.Anything)
}

func TestModeration_BanAtBlog_Success(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	blog := model.Blog{ID: 3, FandomID: 2, Owner: 99}
	perms.On("IsAdmin", mock.Anything, int64(1)).Return(true, nil)
	accounts.On("Exists", mock.Anything, int64(7)).Return(true, nil)
	perms.On("IsBlogModer", mock.Anything, int64(7), int64(3), model.Flag("")).Return(false, nil)
	perms.On("IsFandomModer", mock.Anything, int64(7), int64(2), model.Flag("")).Return(false, nil)
	moders.On("InsertBlogBan", mock.Anything, model.Ban{
		UserID:   7,
		TargetID: 3,
		SetBy:    1,
		Reason:   "spam",
	}).Return(nil)

	m := newTestModeration(moders, perms, accounts)

	require.NoError(t, m.BanAtBlog(ctx, 1, blog, 7, "spam"))
	moders.AssertExpectations(t)
}

func TestModeration_GetFandomModer_NotFound(t *testing.T) {
	ctx := context.Background()
	moders := &mocks.ModerationStore{}
	perms := &mocks.PermissionStore{}
	accounts := &mocks.AccountStore{}

	moders.On("GetFandomModer", mock.Anything, int64(2), int64(7)).
		Return(model.FandomModer{}, model.ErrNotFound)

	m := newTestModeration(moders, perms, accounts)

	_, err := m.GetFandomModer(ctx, 2, 7)
	requireAPICode(t, err, "ObjectNotFound")
}
