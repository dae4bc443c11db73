// Package gallery manages provider portfolio images.
package gallery

import (
	"context"

	galleryRepo "glowbook/database/repository/gallery"
	"glowbook/models"
	"glowbook/services/auth"
	"glowbook/services/storage"
	"glowbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GalleryService manages a provider's image gallery.
type GalleryService interface {
	// List returns the caller's gallery images, newest first.
	List(ctx context.Context, ident auth.Claims) ([]models.GalleryImage, error)
	// Upload stores an image file and records it against the caller's profile.
	Upload(ctx context.Context, ident auth.Claims, data []byte, originalName, contentType string) (*models.GalleryImage, error)
	// Delete removes an image the caller owns, including the stored file.
	Delete(ctx context.Context, ident auth.Claims, imageID string) error
}

type DefaultGalleryService struct {
	Repo  galleryRepo.GalleryRepository
	Files storage.FileStore
}

func NewDefaultGalleryService(repo galleryRepo.GalleryRepository, files storage.FileStore) *DefaultGalleryService {
	return &DefaultGalleryService{Repo: repo, Files: files}
}

func (s *DefaultGalleryService) List(ctx context.Context, ident auth.Claims) ([]models.GalleryImage, error) {
	providerID, err := requireProvider(ident)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListByProvider(providerID)
}

func (s *DefaultGalleryService) Upload(ctx context.Context, ident auth.Claims, data []byte, originalName, contentType string) (*models.GalleryImage, error) {
	providerID, err := requireProvider(ident)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, utils.NewError(utils.KindInvalidInput, "No file provided.")
	}
	filename, err := s.Files.Save(ctx, data, originalName, contentType)
	if err != nil {
		return nil, err
	}
	img := &models.GalleryImage{
		ID:         uuid.New().String(),
		ProviderID: providerID,
		Filename:   filename,
	}
	if err := s.Repo.Create(img); err != nil {
		// best effort: don't leave an orphaned file behind
		if delErr := s.Files.Delete(ctx, filename); delErr != nil {
			utils.GetLogger().Warn("Failed to remove orphaned upload", zap.String("filename", filename), zap.Error(delErr))
		}
		return nil, err
	}
	return img, nil
}

func (s *DefaultGalleryService) Delete(ctx context.Context, ident auth.Claims, imageID string) error {
	providerID, err := requireProvider(ident)
	if err != nil {
		return err
	}
	img, err := s.Repo.GetByID(imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return utils.NewError(utils.KindNotFound, "Image not found.")
	}
	if img.ProviderID != providerID {
		return utils.NewError(utils.KindForbidden, "You do not own this image.")
	}
	if err := s.Repo.Delete(imageID); err != nil {
		return err
	}
	if err := s.Files.Delete(ctx, img.Filename); err != nil {
		utils.GetLogger().Warn("Failed to delete stored file", zap.String("filename", img.Filename), zap.Error(err))
	}
	return nil
}

func requireProvider(ident auth.Claims) (string, error) {
	if ident.Role != models.RoleServiceProvider {
		return "", utils.NewError(utils.KindForbidden, "Only service providers can manage gallery images.")
	}
	if ident.ProviderID == "" {
		return "", utils.NewError(utils.KindForbidden, "No provider profile associated with this account.")
	}
	return ident.ProviderID, nil
}
