package providerRepo

import (
	"context"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProviderRepository defines methods for service-provider profile access.
type ProviderRepository interface {
	// GetByID retrieves a provider profile by its ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.ServiceProvider, error)
	// GetByUserID retrieves the profile owned by the given user. Returns (nil, nil) when absent.
	GetByUserID(userID string) (*models.ServiceProvider, error)
	// ListAll retrieves all provider profiles.
	ListAll() ([]models.ServiceProvider, error)
	// CreateWithUser inserts the account user and the provider profile atomically.
	CreateWithUser(user *models.User, provider *models.ServiceProvider) error
	// UpdateSetDocument applies a partial $set update to a provider profile.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// DeleteCascade removes a provider, their user account, and every
	// dependent record (gallery, favorites, payments, bookings, services).
	DeleteCascade(id string) error
}

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo() ProviderRepository {
	db := database.GetDatabase()
	repo := &MongoProviderRepo{db: db, coll: db.Collection("service_providers")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProviderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
