package providerRepo

import (
	"errors"
	"time"

	"glowbook/models"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a provider profile by its unique ID.
func (r *MongoProviderRepo) GetByID(id string) (*models.ServiceProvider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prov models.ServiceProvider
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&prov)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to fetch provider")
	}
	return &prov, nil
}

// GetByUserID retrieves the provider profile owned by the given user account.
func (r *MongoProviderRepo) GetByUserID(userID string) (*models.ServiceProvider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var prov models.ServiceProvider
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&prov)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to fetch provider by user")
	}
	return &prov, nil
}

// ListAll retrieves all provider profiles.
func (r *MongoProviderRepo) ListAll() ([]models.ServiceProvider, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to list providers")
	}
	defer cursor.Close(ctx)

	var providers []models.ServiceProvider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to decode providers")
	}
	return providers, nil
}

// UpdateSetDocument applies a partial update to a provider profile.
func (r *MongoProviderRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	update := bson.M{"$set": updateDoc}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to update provider")
	}
	if result.MatchedCount == 0 {
		return utils.Errorf(utils.KindNotFound, "provider with id %s not found", id)
	}
	return nil
}
