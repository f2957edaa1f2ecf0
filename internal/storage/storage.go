package storage

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
)

// Store saves uploaded book files and covers and resolves their URLs.
type Store interface {
	// Save writes content under subfolder and returns the stored key.
	Save(ctx context.Context, subfolder, filename string, content []byte, contentType string) (string, error)
	// URL returns a client-accessible URL for a stored key.
	URL(key string) string
}

// storedName keeps the original extension but replaces the name with a
// fresh UUID so uploads never collide.
func storedName(original string) string {
	return uuid.NewString() + filepath.Ext(original)
}
