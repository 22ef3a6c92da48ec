package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"leaseintake/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

// Put accepts either a storage.ObjectInfo or a func computing one from the call.
func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}

// ObjectURL accepts either a string or a func(key) string.
func (m *MockStorage) ObjectURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	if f, ok := args.Get(0).(func(string) string); ok {
		return f(key), args.Error(1)
	}
	return args.String(0), args.Error(1)
}
