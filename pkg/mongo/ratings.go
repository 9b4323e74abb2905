package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/buybloom/backend/pkg/models"
)

// UpsertRating writes or replaces the user's rating for a product, then
// recomputes the product's aggregate rating fields.
func UpsertRating(ctx context.Context, rating *models.Rating) error {
	collection := GetCollection("ratings")

	now := time.Now()
	_, err := collection.UpdateOne(ctx,
		bson.D{
			{Key: "product_id", Value: rating.ProductID},
			{Key: "user_id", Value: rating.UserID},
		},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "rating", Value: rating.Rating},
				{Key: "review", Value: rating.Review},
				{Key: "updated_at", Value: now},
			}},
			{Key: "$setOnInsert", Value: bson.D{
				{Key: "created_at", Value: now},
			}},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	return refreshProductRating(ctx, rating.ProductID)
}

func refreshProductRating(ctx context.Context, productID bson.ObjectID) error {
	collection := GetCollection("ratings")

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "product_id", Value: productID}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product_id"},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var aggregates []struct {
		Average float64 `bson:"average"`
		Count   int     `bson:"count"`
	}
	if err := cursor.All(ctx, &aggregates); err != nil {
		return err
	}

	average, count := 0.0, 0
	if len(aggregates) > 0 {
		average = aggregates[0].Average
		count = aggregates[0].Count
	}

	_, err = GetCollection("products").UpdateOne(ctx,
		bson.D{{Key: "_id", Value: productID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "average_rating", Value: average},
			{Key: "total_ratings", Value: count},
		}}},
	)
	return err
}

// GetProductRatings returns a product's ratings joined with rater names.
func GetProductRatings(ctx context.Context, productID bson.ObjectID) ([]models.RatingWithUser, error) {
	collection := GetCollection("ratings")

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "product_id", Value: productID}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "rater"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$rater"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "user_name", Value: "$rater.name"},
		}}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "rater", Value: 0}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	ratings := []models.RatingWithUser{}
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}
