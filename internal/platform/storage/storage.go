// Package storage persists uploaded place and avatar images. Two
// backends are available: local disk for development and S3-compatible
// object storage for production.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Sentinel errors returned by ImageStore implementations.
var (
	// ErrUnsupportedType indicates the uploaded content type is not an accepted image format.
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrImageNotFound indicates no stored image exists at the given path.
	ErrImageNotFound = errors.New("image not found")
)

// extByMIME maps accepted upload content types to file extensions.
var extByMIME = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
	"image/jpg":  "jpg",
}

// ImageStore saves and removes uploaded images.
type ImageStore interface {
	// Save stores the image content under a freshly generated name and
	// returns the path clients use to retrieve it. Returns
	// ErrUnsupportedType when contentType is not an accepted format.
	Save(ctx context.Context, content io.Reader, contentType string) (string, error)

	// Remove deletes a previously stored image. Removing a path that no
	// longer exists returns ErrImageNotFound.
	Remove(ctx context.Context, path string) error
}

// newImageName generates a collision-free object name for the given
// content type, or ErrUnsupportedType if the type is not accepted.
func newImageName(contentType string) (string, error) {
	ext, ok := extByMIME[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	return uuid.New().String() + "." + ext, nil
}
