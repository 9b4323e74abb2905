package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/buybloom/backend/pkg/models"
)

// InsertOrderIfAbsent writes an order keyed by its gateway payment id.
// The unique index on payment_id turns concurrent duplicate confirmations
// into a duplicate-key error, reported here as (false, nil): the order is
// already on the ledger and the caller treats the write as done.
func InsertOrderIfAbsent(ctx context.Context, order *models.Order) (bool, error) {
	collection := GetCollection("orders")

	result, err := collection.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}

	order.ID = result.InsertedID.(bson.ObjectID)
	return true, nil
}

func GetOrdersByUser(ctx context.Context, userID bson.ObjectID) ([]models.Order, error) {
	collection := GetCollection("orders")

	cursor, err := collection.Find(ctx,
		bson.D{{Key: "user_id", Value: userID}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderStore is the checkout package's view of the order ledger.
type OrderStore struct{}

func (OrderStore) InsertIfAbsent(ctx context.Context, order *models.Order) (bool, error) {
	return InsertOrderIfAbsent(ctx, order)
}
