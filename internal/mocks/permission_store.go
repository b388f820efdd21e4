package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fanhub/fanhub-server/internal/model"
)

type PermissionStore struct {
	mock.Mock
}

func (_m *PermissionStore) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	args := _m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (_m *PermissionStore) IsFandomModer(ctx context.Context, userID, fandomID int64, flag model.Flag) (bool, error) {
	args := _m.Called(ctx, userID, fandomID, flag)
	return args.Bool(0), args.Error(1)
}

func (_m *PermissionStore) IsFandomBanned(ctx context.Context, userID, fandomID int64) (bool, error) {
	args := _m.Called(ctx, userID, fandomID)
	return args.Bool(0), args.Error(1)
}

func (_m *PermissionStore) IsBlogModer(ctx context.Context, userID, blogID int64, flag model.Flag) (bool, error) {
	args := _m.Called(ctx, userID, blogID, flag)
	return args.Bool(0), args.Error(1)
}

func (_m *PermissionStore) IsBlogBanned(ctx context.Context, userID, blogID int64) (bool, error) {
	args := _m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}

func (_m *PermissionStore) IsBlogOwner(ctx context.Context, userID, blogID int64) (bool, error) {
	args := _m.Called(ctx, userID, blogID)
	return args.Bool(0), args.Error(1)
}
