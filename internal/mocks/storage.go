package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (_m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := _m.Called(ctx, key, reader)
	return args.Error(0)
}

func (_m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := _m.Called(ctx, key)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Error(1)
}

func (_m *Storage) Delete(ctx context.Context, key string) error {
	args := _m.Called(ctx, key)
	return args.Error(0)
}

func (_m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := _m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
