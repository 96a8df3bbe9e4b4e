package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flexwage/apperr"
	"flexwage/db"
	"flexwage/models"
)

// mongoMap adapts one collection to the Map interface. keyField is the bson
// field holding the map key; every model stores its own key.
type mongoMap[T any] struct {
	coll     *mongo.Collection
	keyField string
}

func (m mongoMap[T]) Get(ctx context.Context, key string) (T, error) {
	var val T
	err := m.coll.FindOne(ctx, bson.M{m.keyField: key}).Decode(&val)
	if err == mongo.ErrNoDocuments {
		return val, fmt.Errorf("key %q: %w", key, apperr.ErrNotFound)
	}
	if err != nil {
		return val, err
	}
	return val, nil
}

func (m mongoMap[T]) Put(ctx context.Context, key string, val T) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.coll.ReplaceOne(ctx, bson.M{m.keyField: key}, val, opts)
	return err
}

func (m mongoMap[T]) Delete(ctx context.Context, key string) error {
	res, err := m.coll.DeleteOne(ctx, bson.M{m.keyField: key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("key %q: %w", key, apperr.ErrNotFound)
	}
	return nil
}

func (m mongoMap[T]) Filter(ctx context.Context, match func(T) bool) ([]T, error) {
	cursor, err := m.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []T
	if err := cursor.All(ctx, &all); err != nil {
		return nil, err
	}

	var out []T
	for _, v := range all {
		if match(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// NewMongo builds the production Store over the collections wired in db.
func NewMongo() *Store {
	return &Store{
		Accounts:      mongoMap[models.Account]{db.AccountCollection, "username"},
		Users:         mongoMap[models.UserProfile]{db.UserCollection, "owner_principal"},
		Links:         mongoMap[models.PrincipalLink]{db.PrincipalLinkCollection, "principal"},
		Workers:       mongoMap[models.WorkerProfile]{db.WorkerCollection, "userid"},
		Businesses:    mongoMap[models.BusinessProfile]{db.BusinessCollection, "userid"},
		Shifts:        mongoMap[models.Shift]{db.ShiftCollection, "shiftid"},
		Applications:  mongoMap[models.ShiftApplication]{db.ApplicationCollection, "appkey"},
		History:       mongoMap[models.WorkHistory]{db.WorkHistoryCollection, "historyid"},
		Ratings:       mongoMap[models.Rating]{db.RatingCollection, "ratingid"},
		Credentials:   mongoMap[models.DIDDocument]{db.DIDCollection, "worker_id"},
		Notifications: mongoMap[models.Notification]{db.NotificationCollection, "notificationid"},
	}
}
