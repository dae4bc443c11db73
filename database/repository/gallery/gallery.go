package galleryRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/models"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GalleryRepository defines methods for gallery image data access.
type GalleryRepository interface {
	// GetByID retrieves a gallery image by its ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.GalleryImage, error)
	// ListByProvider retrieves a provider's images, newest first.
	ListByProvider(providerID string) ([]models.GalleryImage, error)
	// Create inserts a new gallery image record.
	Create(image *models.GalleryImage) error
	// Delete removes a gallery image record by its ID.
	Delete(id string) error
}

// MongoGalleryRepo implements GalleryRepository using MongoDB.
type MongoGalleryRepo struct {
	coll *mongo.Collection
}

// NewMongoGalleryRepo creates a new instance of GalleryRepository using MongoDB.
func NewMongoGalleryRepo() GalleryRepository {
	repo := &MongoGalleryRepo{coll: database.GetDatabase().Collection("gallery_images")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoGalleryRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a gallery image by its unique ID.
func (r *MongoGalleryRepo) GetByID(id string) (*models.GalleryImage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var img models.GalleryImage
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&img)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to fetch gallery image")
	}
	return &img, nil
}

// ListByProvider retrieves a provider's gallery images, newest first.
func (r *MongoGalleryRepo) ListByProvider(providerID string) ([]models.GalleryImage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID}, opts)
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to list gallery images")
	}
	defer cursor.Close(ctx)

	var images []models.GalleryImage
	if err := cursor.All(ctx, &images); err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to decode gallery images")
	}
	return images, nil
}

// Create inserts a new gallery image document.
func (r *MongoGalleryRepo) Create(image *models.GalleryImage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	image.CreatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, image)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to create gallery image")
	}
	return nil
}

// Delete removes a gallery image document by its ID.
func (r *MongoGalleryRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to delete gallery image")
	}
	if result.DeletedCount == 0 {
		return utils.Errorf(utils.KindNotFound, "gallery image with id %s not found", id)
	}
	return nil
}
