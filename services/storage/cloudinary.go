package storage

import (
	"bytes"
	"context"

	"glowbook/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CloudinaryFileStore uploads images to Cloudinary.
type CloudinaryFileStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryFileStore initializes a Cloudinary-backed file store.
func NewCloudinaryFileStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryFileStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to initialize cloudinary")
	}
	return &CloudinaryFileStore{cld: cld, folder: folder}, nil
}

func (s *CloudinaryFileStore) Save(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	if err := validateImage(data, contentType); err != nil {
		return "", err
	}
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   s.folder,
		PublicID: uuid.New().String(),
	})
	if err != nil {
		utils.GetLogger().Error("Cloudinary upload failed", zap.Error(err))
		return "", utils.WrapError(utils.KindStorageUnavailable, err, "failed to store file")
	}
	if result.PublicID == "" {
		return "", utils.NewError(utils.KindStorageUnavailable, "no public ID returned for uploaded file")
	}
	return result.PublicID, nil
}

func (s *CloudinaryFileStore) Delete(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: filename})
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to delete file")
	}
	return nil
}
