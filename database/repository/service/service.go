package serviceRepo

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

// ServiceRepository defines methods for service data access.
type ServiceRepository interface {
	// GetByID retrieves a service by its ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Service, error)
	// ListAll retrieves all services.
	ListAll() ([]models.Service, error)
	// ListByProvider retrieves all services owned by a provider.
	ListByProvider(providerID string) ([]models.Service, error)
	// Create inserts a new service record.
	Create(service *models.Service) error
	// UpdateSetDocument applies a partial $set update to a service record.
	UpdateSetDocument(id string, updateDoc bson.M) error
	// Delete removes a service record by its ID.
	Delete(id string) error
}

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo creates a new instance of ServiceRepository using MongoDB.
func NewMongoServiceRepo() ServiceRepository {
	repo := &MongoServiceRepo{coll: database.GetDatabase().Collection("services")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoServiceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a service by its unique ID.
func (r *MongoServiceRepo) GetByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to fetch service")
	}
	return &svc, nil
}

// ListAll retrieves all services.
func (r *MongoServiceRepo) ListAll() ([]models.Service, error) {
	return r.list(bson.M{})
}

// ListByProvider retrieves all services owned by the given provider.
func (r *MongoServiceRepo) ListByProvider(providerID string) ([]models.Service, error) {
	return r.list(bson.M{"provider_id": providerID})
}

func (r *MongoServiceRepo) list(filter bson.M) ([]models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to list services")
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to decode services")
	}
	return services, nil
}

// Create inserts a new service document.
func (r *MongoServiceRepo) Create(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, service)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to create service")
	}
	return nil
}

// UpdateSetDocument applies a partial update to a service document.
func (r *MongoServiceRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	update := bson.M{"$set": updateDoc}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to update service")
	}
	if result.MatchedCount == 0 {
		return utils.Errorf(utils.KindNotFound, "service with id %s not found", id)
	}
	return nil
}

// Delete removes a service document by its ID.
func (r *MongoServiceRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to delete service")
	}
	if result.DeletedCount == 0 {
		return utils.Errorf(utils.KindNotFound, "service with id %s not found", id)
	}
	return nil
}
