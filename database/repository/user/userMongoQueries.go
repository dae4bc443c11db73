package userRepo

import (
	"errors"
	"time"

	"glowbook/models"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to fetch user")
	}
	return &user, nil
}

// GetByEmail retrieves a user by its email address.
func (r *MongoUserRepo) GetByEmail(email string) (*models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to fetch user by email")
	}
	return &user, nil
}

// ListByRole retrieves all users carrying the given role.
func (r *MongoUserRepo) ListByRole(role string) ([]models.User, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to list users")
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to decode users")
	}
	return users, nil
}
