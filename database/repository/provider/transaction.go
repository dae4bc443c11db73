package providerRepo

import (
	"context"
	"time"

	"glowbook/models"
	"glowbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithUser inserts the account user and the provider profile in one
// transaction so signup never leaves an account without its profile.
func (r *MongoProviderRepo) CreateWithUser(user *models.User, provider *models.ServiceProvider) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	provider.CreatedAt = now
	provider.UpdatedAt = now

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "could not start session")
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.db.Collection("users").InsertOne(sc, user); err != nil {
			return err
		}
		if _, err := r.coll.InsertOne(sc, provider); err != nil {
			return err
		}
		return nil
	}

	if err := runTxn(ctx, sess, txnFn); err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "provider signup transaction failed")
	}
	return nil
}

// DeleteCascade removes a provider profile, the owning user account, and all
// dependent records. Ordering follows dependency direction: leaves first.
func (r *MongoProviderRepo) DeleteCascade(id string) error {
	ctx, cancel := newContext(15 * time.Second)
	defer cancel()

	prov, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if prov == nil {
		return utils.Errorf(utils.KindNotFound, "provider with id %s not found", id)
	}

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "could not start session")
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		provFilter := bson.M{"provider_id": id}
		for _, coll := range []string{"gallery_images", "favorites", "payments", "bookings", "services"} {
			if _, err := r.db.Collection(coll).DeleteMany(sc, provFilter); err != nil {
				return err
			}
		}
		if _, err := r.coll.DeleteOne(sc, bson.M{"id": id}); err != nil {
			return err
		}
		if _, err := r.db.Collection("users").DeleteOne(sc, bson.M{"id": prov.UserID}); err != nil {
			return err
		}
		return nil
	}

	if err := runTxn(ctx, sess, txnFn); err != nil {
		return utils.WrapError(utils.KindStorageUnavailable, err, "provider delete transaction failed")
	}
	return nil
}

func runTxn(ctx context.Context, sess mongo.Session, fn func(mongo.SessionContext) error) error {
	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(context.Background())
			return err
		}
		return sc.CommitTransaction(sc)
	})
}
