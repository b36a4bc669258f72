package images

import (
	"context"
	"errors"
	"io"
)

// Image is a stored object reference.
// ID is the storage key used for later deletion; URL is what clients see.
type Image struct {
	ID  string
	URL string
}

var (
	// ErrNotFound is returned when deleting an unknown image id.
	ErrNotFound = errors.New("image not found")

	// ErrUnsupportedType is returned for content types outside the
	// accepted image set.
	ErrUnsupportedType = errors.New("unsupported image type")
)

// Store uploads and deletes hosted images.
type Store interface {
	// Upload stores the image bytes and returns its reference.
	// contentType must be one of the accepted image MIME types.
	Upload(ctx context.Context, r io.Reader, contentType string) (Image, error)

	// Delete removes a previously uploaded image. Best-effort callers may
	// ignore ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// AllowedContentType reports whether ct is an accepted upload type.
func AllowedContentType(ct string) bool {
	switch ct {
	case "image/jpeg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

// extensionFor maps an accepted content type to a storage-key suffix.
func extensionFor(ct string) string {
	switch ct {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
