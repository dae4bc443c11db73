package storage

import (
	"context"
	"strings"

	"glowbook/utils"
)

// MaxImageSize is the upload ceiling for profile and gallery images.
const MaxImageSize = 5 * 1024 * 1024 // 5MB

// FileStore defines the interface for image file storage.
type FileStore interface {
	// Save persists the file bytes and returns the stored filename.
	Save(ctx context.Context, data []byte, originalName, contentType string) (string, error)
	// Delete removes a stored file by name. Missing files are not an error.
	Delete(ctx context.Context, filename string) error
}

// validateImage enforces the shared upload policy: image content only,
// capped at MaxImageSize.
func validateImage(data []byte, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return utils.NewError(utils.KindInvalidInput, "File must be an image.")
	}
	if len(data) > MaxImageSize {
		return utils.NewError(utils.KindInvalidInput, "File size must be less than 5MB.")
	}
	return nil
}
