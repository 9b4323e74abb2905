package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/buybloom/backend/pkg/models"
)

var ErrResetTokenInvalid = errors.New("invalid or expired reset token")

// CreatePasswordReset replaces any outstanding tokens for the user with a
// fresh one. tokenHash is the SHA-256 hex of the token actually sent out.
func CreatePasswordReset(ctx context.Context, userID bson.ObjectID, tokenHash string, ttl time.Duration) error {
	collection := GetCollection("password_resets")

	if _, err := collection.DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}}); err != nil {
		return err
	}

	reset := models.PasswordReset{
		UserID:    userID,
		Token:     tokenHash,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	_, err := collection.InsertOne(ctx, reset)
	return err
}

// ConsumePasswordReset validates an unused, unexpired token and marks it
// used, returning the owning user id.
func ConsumePasswordReset(ctx context.Context, tokenHash string) (bson.ObjectID, error) {
	collection := GetCollection("password_resets")

	var reset models.PasswordReset
	err := collection.FindOneAndUpdate(ctx,
		bson.D{
			{Key: "token", Value: tokenHash},
			{Key: "used", Value: false},
			{Key: "expires_at", Value: bson.D{{Key: "$gt", Value: time.Now()}}},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "used", Value: true}}}},
	).Decode(&reset)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bson.ObjectID{}, ErrResetTokenInvalid
	}
	if err != nil {
		return bson.ObjectID{}, err
	}
	return reset.UserID, nil
}
