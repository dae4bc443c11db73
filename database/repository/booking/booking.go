package bookingRepo

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

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Booking, error)
	// ListActiveByProvider retrieves a provider's non-cancelled bookings,
	// optionally excluding one booking id (the one being modified).
	ListActiveByProvider(providerID, excludeID string) ([]models.Booking, error)
	// ListByClient retrieves all bookings made by a client, sorted by start.
	ListByClient(clientID string) ([]models.Booking, error)
	// ListByProvider retrieves all bookings for a provider, sorted by start.
	ListByProvider(providerID string) ([]models.Booking, error)
	// ListAll retrieves every booking, sorted by start.
	ListAll() ([]models.Booking, error)
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// UpdateFields applies a partial $set update to a booking record.
	UpdateFields(id string, updateDoc bson.M) error
	// DeleteCascade removes a booking and its dependent payment records.
	DeleteCascade(id string) error
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	db   *mongo.Database
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.GetDatabase()
	repo := &MongoBookingRepo{db: db, coll: db.Collection("bookings")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes matching the admission-check query shape:
// candidate scans filter on provider_id and status.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
