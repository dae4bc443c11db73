package userRepo

import (
	"time"

	"glowbook/models"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(user *models.User) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to create user")
	}
	return nil
}

// UpdateSetDocument applies a partial update to a user document.
func (r *MongoUserRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	// Wrap in $set to comply with MongoDB update syntax
	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return utils.Errorf(utils.KindNotFound, "user with id %s not found", id)
	}
	return nil
}
