package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local stores files on disk under a base directory. Stored keys are
// relative paths like "books/<uuid>.pdf", served back under /files/.
type Local struct {
	basePath string
}

func NewLocal(basePath string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", basePath, err)
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) Save(_ context.Context, subfolder, filename string, content []byte, _ string) (string, error) {
	dir := filepath.Join(l.basePath, subfolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create subfolder %s: %w", subfolder, err)
	}

	name := storedName(filename)
	if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write file %s: %w", name, err)
	}
	return filepath.ToSlash(filepath.Join(subfolder, name)), nil
}

func (l *Local) URL(key string) string {
	return "/files/" + key
}

// Path maps a stored key to its location on disk, used for downloads.
func (l *Local) Path(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}

// BasePath is the directory served under /files/.
func (l *Local) BasePath() string {
	return l.basePath
}
