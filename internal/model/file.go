package model

import "time"

// StoredFile represents an uploaded PDF on disk.
// This is a pure domain model with no storage-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to
// how files are persisted.
type StoredFile struct {
	// Key is the on-disk identifier: "{uuid}_{sanitizedName}". It is generated
	// once at upload time and never changes.
	Key string `json:"key"`
	// DisplayName is the human-facing name with the uuid prefix stripped.
	DisplayName string `json:"display_name"`
	Size        int64  `json:"size"`
	// UploadedAt is the file's modification time; mtime is the only index the
	// store keeps.
	UploadedAt time.Time `json:"uploaded_at"`
}
