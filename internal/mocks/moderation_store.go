package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fanhub/fanhub-server/internal/model"
)

type ModerationStore struct {
	mock.Mock
}

func (_m *ModerationStore) ListFandomModers(ctx context.Context, fandomID int64) ([]model.FandomModer, error) {
	args := _m.Called(ctx, fandomID)
	var moders []model.FandomModer
	if v := args.Get(0); v != nil {
		moders = v.([]model.FandomModer)
	}
	return moders, args.Error(1)
}

func (_m *ModerationStore) GetFandomModer(ctx context.Context, fandomID, userID int64) (model.FandomModer, error) {
	args := _m.Called(ctx, fandomID, userID)
	return args.Get(0).(model.FandomModer), args.Error(1)
}

func (_m *ModerationStore) InsertFandomModer(ctx context.Context, m model.FandomModer) error {
	args := _m.Called(ctx, m)
	return args.Error(0)
}

func (_m *ModerationStore) UpdateFandomModer(ctx context.Context, m model.FandomModer) error {
	args := _m.Called(ctx, m)
	return args.Error(0)
}

func (_m *ModerationStore) DeleteFandomModer(ctx context.Context, fandomID, userID int64) error {
	args := _m.Called(ctx, fandomID, userID)
	return args.Error(0)
}

func (_m *ModerationStore) ListFandomBans(ctx context.Context, fandomID int64) ([]model.Ban, error) {
	args := _m.Called(ctx, fandomID)
	var bans []model.Ban
	if v := args.Get(0); v != nil {
		bans = v.([]model.Ban)
	}
	return bans, args.Error(1)
}

func (_m *ModerationStore) GetFandomBan(ctx context.Context, fandomID, userID int64) (model.Ban, error) {
	args := _m.Called(ctx, fandomID, userID)
	return args.Get(0).(model.Ban), args.Error(1)
}

func (_m *ModerationStore) InsertFandomBan(ctx context.Context, b model.Ban) error {
	args := _m.Called(ctx, b)
	return args.Error(0)
}

func (_m *ModerationStore) DeleteFandomBan(ctx context.Context, fandomID, userID int64) error {
	args := _m.Called(ctx, fandomID, userID)
	return args.Error(0)
}

func (_m *ModerationStore) ListBlogModers(ctx context.Context, blogID int64) ([]model.BlogModer, error) {
	args := _m.Called(ctx, blogID)
	var moders []model.BlogModer
	if v := args.Get(0); v != nil {
		moders = v.([]model.BlogModer)
	}
	return moders, args.Error(1)
}

func (_m *ModerationStore) GetBlogModer(ctx context.Context, blogID, userID int64) (model.BlogModer, error) {
	args := _m.Called(ctx, blogID, userID)
	return args.Get(0).(model.BlogModer), args.Error(1)
}

func (_m *ModerationStore) InsertBlogModer(ctx context.Context, m model.BlogModer) error {
	args := _m.Called(ctx, m)
	return args.Error(0)
}

func (_m *ModerationStore) UpdateBlogModer(ctx context.Context, m model.BlogModer) error {
	args := _m.Called(ctx, m)
	return args.Error(0)
}

func (_m *ModerationStore) DeleteBlogModer(ctx context.Context, blogID, userID int64) error {
	args := _m.Called(ctx, blogID, userID)
	return args.Error(0)
}

func (_m *ModerationStore) ListBlogBans(ctx context.Context, blogID int64) ([]model.Ban, error) {
	args := _m.Called(ctx, blogID)
	var bans []model.Ban
	if v := args.Get(0); v != nil {
		bans = v.([]model.Ban)
	}
	return bans, args.Error(1)
}

func (_m *ModerationStore) GetBlogBan(ctx context.Context, blogID, userID int64) (model.Ban, error) {
	args := _m.Called(ctx, blogID, userID)
	return args.Get(0).(model.Ban), args.Error(1)
}

func (_m *ModerationStore) InsertBlogBan(ctx context.Context, b model.Ban) error {
	args := _m.Called(ctx, b)
	return args.Error(0)
}

func (_m *ModerationStore) DeleteBlogBan(ctx context.Context, blogID, userID int64) error {
	args := _m.Called(ctx, blogID, userID)
	return args.Error(0)
}
