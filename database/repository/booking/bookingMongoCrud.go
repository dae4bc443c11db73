package bookingRepo

import (
	"context"
	"time"

	"glowbook/models"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to create booking")
	}
	return nil
}

// UpdateFields applies a partial update to a booking document.
func (r *MongoBookingRepo) UpdateFields(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	update := bson.M{"$set": updateDoc}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "failed to update booking")
	}
	if result.MatchedCount == 0 {
		return utils.Errorf(utils.KindNotFound, "booking with id %s not found", id)
	}
	return nil
}

// DeleteCascade removes a booking and its dependent payment records in one
// transaction.
func (r *MongoBookingRepo) DeleteCascade(id string) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "could not start session")
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.db.Collection("payments").DeleteMany(sc, bson.M{"booking_id": id}); err != nil {
			return err
		}
		res, err := r.coll.DeleteOne(sc, bson.M{"id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return utils.Errorf(utils.KindNotFound, "booking with id %s not found", id)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(context.Background())
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if utils.KindOf(err) != "" {
			return err
		}
		return utils.WrapError(utils.KindStorageUnavailable, err, "booking delete transaction failed")
	}
	return nil
}
