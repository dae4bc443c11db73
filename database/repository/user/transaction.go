package userRepo

import (
	"context"
	"time"

	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DeleteClientCascade removes a client user together with all dependent
// records (bookings, payments, favorites) in a single transaction, so a
// partially deleted account can never be observed.
func (r *MongoUserRepo) DeleteClientCascade(id string) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "could not start session")
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		clientFilter := bson.M{"client_id": id}
		if _, err := r.db.Collection("payments").DeleteMany(sc, clientFilter); err != nil {
			return err
		}
		if _, err := r.db.Collection("favorites").DeleteMany(sc, clientFilter); err != nil {
			return err
		}
		if _, err := r.db.Collection("bookings").DeleteMany(sc, clientFilter); err != nil {
			return err
		}
		res, err := r.coll.DeleteOne(sc, bson.M{"id": id, "role": "CLIENT"})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return utils.Errorf(utils.KindNotFound, "client with id %s not found", id)
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
		return utils.WrapError(utils.KindStorageUnavailable, err, "client delete transaction failed")
	}
	return nil
}
