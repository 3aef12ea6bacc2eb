package mocks

import (
	"context"
	"io"
	"time"

	"empapi/internal/storage"

	"github.com/stretchr/testify/mock"
)

// PutFunc lets a test inspect the uploaded body and build the returned info.
type PutFunc func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	args := m.Called(ctx, key, r, opt)
	switch v := args.Get(0).(type) {
	case PutFunc:
		return v(ctx, key, r, opt), args.Error(1)
	case func(context.Context, string, io.Reader, storage.PutObjectOptions) storage.ObjectInfo:
		return v(ctx, key, r, opt), args.Error(1)
	case storage.ObjectInfo:
		return v, args.Error(1)
	}
	return storage.ObjectInfo{}, args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
