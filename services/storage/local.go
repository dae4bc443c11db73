package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"glowbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LocalFileStore writes uploads to a directory on disk.
type LocalFileStore struct {
	dir string
}

// NewLocalFileStore creates the upload directory if needed.
func NewLocalFileStore(dir string) (*LocalFileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to create upload directory")
	}
	return &LocalFileStore{dir: dir}, nil
}

func (s *LocalFileStore) Save(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	if err := validateImage(data, contentType); err != nil {
		return "", err
	}
	ext := filepath.Ext(originalName)
	// keep only a sane extension, never a path fragment
	if strings.ContainsAny(ext, "/\\") || len(ext) > 10 {
		ext = ""
	}
	filename := uuid.New().String() + ext
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		utils.GetLogger().Error("Failed to write uploaded file", zap.String("path", path), zap.Error(err))
		return "", utils.WrapError(utils.KindStorageUnavailable, err, "failed to store file")
	}
	return filename, nil
}

func (s *LocalFileStore) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}
	// filename is always a bare uuid-based name we generated; reject anything else
	if filepath.Base(filename) != filename {
		return utils.NewError(utils.KindInvalidInput, "invalid filename")
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to delete file")
	}
	return nil
}
