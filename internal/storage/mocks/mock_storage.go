package mocks

import (
	"context"
	"io"

	"pdfviewer/internal/model"
	"pdfviewer/internal/storage"

	"github.com/stretchr/testify/mock"
)

var _ storage.Storage = (*MockStorage)(nil)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, r io.Reader, originalName string, size int64) (*model.StoredFile, error) {
	args := m.Called(ctx, r, originalName, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StoredFile), args.Error(1)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) Open(ctx context.Context, key string) (io.ReadCloser, *model.StoredFile, error) {
	args := m.Called(ctx, key)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var sf *model.StoredFile
	if args.Get(1) != nil {
		sf = args.Get(1).(*model.StoredFile)
	}
	return rc, sf, args.Error(2)
}

func (m *MockStorage) ListRecent(ctx context.Context, limit int) ([]model.StoredFile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StoredFile), args.Error(1)
}
