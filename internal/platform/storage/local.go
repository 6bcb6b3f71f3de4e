package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore is an ImageStore backed by a directory on local disk.
// Saved images are addressed as "uploads/images/<name>" so the HTTP
// layer can serve them statically under the same prefix.
type LocalStore struct {
	root   string
	prefix string
	logger *slog.Logger
}

// NewLocalStore creates a disk-backed image store rooted at dir,
// creating the directory if needed.
func NewLocalStore(dir string, logger *slog.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalStore{
		root:   dir,
		prefix: "uploads/images",
		logger: logger.With(slog.String("component", "local_image_store")),
	}, nil
}

var _ ImageStore = (*LocalStore)(nil)

// Save implements ImageStore.Save.
func (s *LocalStore) Save(ctx context.Context, content io.Reader, contentType string) (string, error) {
	name, err := newImageName(contentType)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	if _, err := io.Copy(dst, content); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close image file: %w", err)
	}

	path := s.prefix + "/" + name
	s.logger.Debug("image saved", slog.String("path", path))
	return path, nil
}

// Remove implements ImageStore.Remove.
func (s *LocalStore) Remove(ctx context.Context, path string) error {
	name, err := s.nameFromPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return fmt.Errorf("failed to remove image file: %w", err)
	}
	s.logger.Debug("image removed", slog.String("path", path))
	return nil
}

// nameFromPath strips the public prefix and rejects anything that would
// escape the image directory.
func (s *LocalStore) nameFromPath(path string) (string, error) {
	name := strings.TrimPrefix(path, s.prefix+"/")
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: invalid path %q", ErrImageNotFound, path)
	}
	return name, nil
}
