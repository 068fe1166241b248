package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"pdfviewer/internal/model"
	"pdfviewer/internal/storage"
)

var (
	// ErrEmptyUpload means the request carried no file.
	ErrEmptyUpload = errors.New("no file selected")
	// ErrUnsupportedType means the file is not a PDF.
	ErrUnsupportedType = errors.New("invalid file type, please upload a PDF file")
	// ErrTooLarge means the file exceeds the configured maximum size.
	ErrTooLarge = errors.New("file is too large")
)

// FileService defines the use cases around uploaded PDFs.
type FileService interface {
	// Upload validates an incoming file and commits it to storage. The
	// returned file's Key is the viewer redirect target.
	Upload(ctx context.Context, r io.Reader, originalName string, size int64) (*model.StoredFile, error)

	// Recent returns the newest files for the index page listing.
	Recent(ctx context.Context, limit int) ([]model.StoredFile, error)

	// Exists reports whether key names a stored file.
	Exists(ctx context.Context, key string) (bool, error)

	// Open returns the raw bytes of a stored file for serving.
	Open(ctx context.Context, key string) (io.ReadCloser, *model.StoredFile, error)
}

type fileService struct {
	store    storage.Storage
	maxBytes int64
}

// NewFileService constructs a FileService on top of the given storage.
func NewFileService(store storage.Storage, maxBytes int64) FileService {
	return &fileService{store: store, maxBytes: maxBytes}
}

func (s *fileService) Upload(ctx context.Context, r io.Reader, originalName string, size int64) (*model.StoredFile, error) {
	if r == nil || originalName == "" {
		return nil, ErrEmptyUpload
	}
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != ".pdf" {
		return nil, ErrUnsupportedType
	}
	// Reject on the declared size before any bytes are read; the store guards
	// the stream itself a second time.
	if size > s.maxBytes {
		return nil, ErrTooLarge
	}

	sf, err := s.store.Store(ctx, r, originalName, size)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, ErrTooLarge
		}
		return nil, err
	}
	return sf, nil
}

func (s *fileService) Recent(ctx context.Context, limit int) ([]model.StoredFile, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.store.ListRecent(ctx, limit)
}

func (s *fileService) Exists(ctx context.Context, key string) (bool, error) {
	return s.store.Exists(ctx, key)
}

func (s *fileService) Open(ctx context.Context, key string) (io.ReadCloser, *model.StoredFile, error) {
	return s.store.Open(ctx, key)
}
