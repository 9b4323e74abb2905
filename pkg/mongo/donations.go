package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/models"
)

func InsertDonation(ctx context.Context, donation *models.Donation) error {
	collection := GetCollection("donations")

	donation.CreatedAt = time.Now()
	result, err := collection.InsertOne(ctx, donation)
	if err != nil {
		return err
	}
	donation.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func GetDonationStats(ctx context.Context) (*models.DonationStats, error) {
	collection := GetCollection("donations")

	pipeline := bson.A{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_amount", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var totals []struct {
		TotalAmount float64 `bson:"total_amount"`
		Count       int     `bson:"count"`
	}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, err
	}

	stats := &models.DonationStats{RecentNames: []string{}}
	if len(totals) > 0 {
		stats.TotalAmount = totals[0].TotalAmount
		stats.Count = totals[0].Count
	}

	recent, err := recentDonorNames(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.RecentNames = recent

	return stats, nil
}

func recentDonorNames(ctx context.Context, limit int64) ([]string, error) {
	collection := GetCollection("donations")

	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "donor_name", Value: bson.D{{Key: "$nin", Value: bson.A{"", nil}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$project", Value: bson.D{{Key: "donor_name", Value: 1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		DonorName string `bson:"donor_name"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.DonorName)
	}
	return names, nil
}

// DonationStore is the checkout package's view of the donations collection.
type DonationStore struct{}

func (DonationStore) Insert(ctx context.Context, donation *models.Donation) error {
	return InsertDonation(ctx, donation)
}
