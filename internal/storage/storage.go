package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode"

	"pdfviewer/internal/model"
)

// Package storage maps generated file keys to PDF bytes in a flat directory.
// There is no database and no manifest; directory listing plus mtime is the
// only index.

var (
	// ErrTooLarge is returned when an upload exceeds the configured maximum.
	ErrTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrNotFound is returned when no file exists under the given key.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidKey is returned for keys containing path traversal sequences
	// or other characters that can never appear in a generated key.
	ErrInvalidKey = errors.New("invalid file key")
	// ErrStorage wraps disk/IO failures (disk full, permission denied).
	ErrStorage = errors.New("storage failure")
)

// Storage is the durable mapping from generated keys to file bytes.
type Storage interface {
	// Store sanitizes originalName, generates a fresh unique key, and writes
	// the reader's bytes under it. size is the expected byte count; the write
	// is aborted (leaving no partial file) if the content exceeds the
	// configured maximum.
	Store(ctx context.Context, r io.Reader, originalName string, size int64) (*model.StoredFile, error)
	// Exists reports whether a file with that exact key is present.
	Exists(ctx context.Context, key string) (bool, error)
	// Open returns the file contents for serving.
	Open(ctx context.Context, key string) (io.ReadCloser, *model.StoredFile, error)
	// ListRecent returns up to limit files sorted by modification time descending.
	ListRecent(ctx context.Context, limit int) ([]model.StoredFile, error)
}

// ValidateKey rejects keys that could escape the storage root. Generated keys
// only ever contain a uuid, an underscore, and a sanitized filename, so
// anything with separators, parent references, or control characters is hostile.
func ValidateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return ErrInvalidKey
		}
	}
	return nil
}

// SanitizeName reduces an uploaded filename to a safe form: directory
// components are stripped and anything outside [A-Za-z0-9._-] becomes an
// underscore.
func SanitizeName(name string) string {
	// Strip directory components regardless of the client's path separator.
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := strings.Trim(b.String(), "._")
	if s == "" {
		return "file"
	}
	return s
}

// DisplayName strips the "{36-char-uuid}_" prefix from a stored key when
// present, recovering the original (sanitized) filename for display.
func DisplayName(key string) string {
	if i := strings.IndexByte(key, '_'); i == 36 {
		return key[i+1:]
	}
	return key
}
