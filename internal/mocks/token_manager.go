package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TokenManager struct {
	mock.Mock
}

func (_m *TokenManager) MintAccessToken(accountID int64, origin string) (string, error) {
	args := _m.Called(accountID, origin)
	return args.String(0), args.Error(1)
}

func (_m *TokenManager) MintRefreshToken(accountID int64, nonce uuid.UUID) (string, error) {
	args := _m.Called(accountID, nonce)
	return args.String(0), args.Error(1)
}

func (_m *TokenManager) ParseAccessToken(token, origin string) (int64, error) {
	args := _m.Called(token, origin)
	return args.Get(0).(int64), args.Error(1)
}

func (_m *TokenManager) ParseRefreshToken(token string) (int64, uuid.UUID, error) {
	args := _m.Called(token)
	return args.Get(0).(int64), args.Get(1).(uuid.UUID), args.Error(2)
}
