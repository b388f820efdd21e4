// Package mocks holds hand-maintained testify mocks for the interfaces in
// internal/model, in the layout mockery would generate.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fanhub/fanhub-server/internal/model"
)

type AccountStore struct {
	mock.Mock
}

func (_m *AccountStore) GetCredentials(ctx context.Context, username string) (model.Credentials, error) {
	args := _m.Called(ctx, username)
	return args.Get(0).(model.Credentials), args.Error(1)
}

func (_m *AccountStore) GetCredentialsByID(ctx context.Context, id int64) (model.Credentials, error) {
	args := _m.Called(ctx, id)
	return args.Get(0).(model.Credentials), args.Error(1)
}

func (_m *AccountStore) GetByID(ctx context.Context, id int64) (model.Account, error) {
	args := _m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (_m *AccountStore) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	args := _m.Called(ctx, username)
	return args.Get(0).(model.Account), args.Error(1)
}

func (_m *AccountStore) List(ctx context.Context) ([]model.Account, error) {
	args := _m.Called(ctx)
	var accounts []model.Account
	if v := args.Get(0); v != nil {
		accounts = v.([]model.Account)
	}
	return accounts, args.Error(1)
}

func (_m *AccountStore) Create(ctx context.Context, username, passwordHash string) (int64, error) {
	args := _m.Called(ctx, username, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (_m *AccountStore) RotateNonce(ctx context.Context, id int64) error {
	args := _m.Called(ctx, id)
	return args.Error(0)
}

func (_m *AccountStore) SetPassword(ctx context.Context, id int64, passwordHash string) error {
	args := _m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (_m *AccountStore) UpdateProfile(ctx context.Context, editedBy, id int64, description, avatar string) error {
	args := _m.Called(ctx, editedBy, id, description, avatar)
	return args.Error(0)
}

func (_m *AccountStore) Exists(ctx context.Context, id int64) (bool, error) {
	args := _m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
