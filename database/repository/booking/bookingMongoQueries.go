package bookingRepo

import (
	"errors"
	"time"

	"glowbook/models"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to fetch booking")
	}
	return &booking, nil
}

// ListActiveByProvider retrieves a provider's non-cancelled bookings. When
// excludeID is non-empty, that booking is left out of the result; reschedules
// use this so a booking never conflicts with itself.
func (r *MongoBookingRepo) ListActiveByProvider(providerID, excludeID string) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$ne": models.BookingCancelled},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to list provider bookings")
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to decode bookings")
	}
	return bookings, nil
}

// ListByClient retrieves all bookings made by a client, sorted by start time.
func (r *MongoBookingRepo) ListByClient(clientID string) ([]models.Booking, error) {
	return r.list(bson.M{"client_id": clientID})
}

// ListByProvider retrieves all bookings for a provider, sorted by start time.
func (r *MongoBookingRepo) ListByProvider(providerID string) ([]models.Booking, error) {
	return r.list(bson.M{"provider_id": providerID})
}

// ListAll retrieves every booking, sorted by start time.
func (r *MongoBookingRepo) ListAll() ([]models.Booking, error) {
	return r.list(bson.M{})
}

func (r *MongoBookingRepo) list(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to list bookings")
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, utils.WrapError(utils.KindStorageUnavailable, err, "failed to decode bookings")
	}
	return bookings, nil
}
