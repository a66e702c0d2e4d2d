package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local writes media below a directory that the HTTP server exposes at publicURL.
type Local struct {
	dir       string
	publicURL string
}

func NewLocal(dir, publicURL string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}
	return &Local{dir: dir, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	path := filepath.Join(l.dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write media file: %w", err)
	}
	return l.publicURL + filepath.ToSlash(clean), nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	clean, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(l.dir, clean)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

// cleanKey roots key at "/" so ".." segments cannot leave the media dir.
func cleanKey(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid media key %q", key)
	}
	return clean, nil
}
