package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"pdfviewer/internal/model"
)

// localStorage implements Storage on a flat local directory. It is safe for
// concurrent use: every Store writes to a distinct path because each key is
// derived from a fresh uuid.
type localStorage struct {
	root     string
	maxBytes int64
}

// NewLocal creates a filesystem-backed Storage rooted at dir, creating the
// directory if missing. maxBytes caps a single stored file.
func NewLocal(dir string, maxBytes int64) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max bytes must be positive")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &localStorage{root: dir, maxBytes: maxBytes}, nil
}

func (s *localStorage) Store(ctx context.Context, r io.Reader, originalName string, size int64) (*model.StoredFile, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrStorage)
	}
	if size > s.maxBytes {
		return nil, ErrTooLarge
	}

	key := uuid.NewString() + "_" + SanitizeName(originalName)
	path := filepath.Join(s.root, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// Copy at most maxBytes+1 so an oversized or lying reader is caught
	// mid-stream instead of after buffering everything.
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if n > s.maxBytes {
		f.Close()
		os.Remove(path)
		return nil, ErrTooLarge
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &model.StoredFile{
		Key:         key,
		DisplayName: DisplayName(key),
		Size:        n,
		UploadedAt:  st.ModTime(),
	}, nil
}

func (s *localStorage) Exists(ctx context.Context, key string) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	_, err := os.Stat(filepath.Join(s.root, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return true, nil
}

func (s *localStorage) Open(ctx context.Context, key string) (io.ReadCloser, *model.StoredFile, error) {
	if err := ValidateKey(key); err != nil {
		return nil, nil, err
	}
	path := filepath.Join(s.root, key)
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return f, &model.StoredFile{
		Key:         key,
		DisplayName: DisplayName(key),
		Size:        st.Size(),
		UploadedAt:  st.ModTime(),
	}, nil
}

func (s *localStorage) ListRecent(ctx context.Context, limit int) ([]model.StoredFile, error) {
	if limit <= 0 {
		return nil, nil
	}
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	files := make([]model.StoredFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// File removed between the listing and the stat; skip it.
			continue
		}
		files = append(files, model.StoredFile{
			Key:         e.Name(),
			DisplayName: DisplayName(e.Name()),
			Size:        info.Size(),
			UploadedAt:  info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	if len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}
