package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/buybloom/backend/pkg/models"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrProductMissing = errors.New("product not found")
)

func CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	collection := GetCollection("users")

	user.SetTimestamps()
	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	collection := GetCollection("users")

	var user models.User
	err := collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	collection := GetCollection("users")

	var user models.User
	err := collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserProfile applies the given field updates and returns the new
// document. Email uniqueness is enforced by the index; a duplicate-key
// error is translated to ErrEmailTaken.
func UpdateUserProfile(ctx context.Context, id bson.ObjectID, updates bson.D) (*models.User, error) {
	collection := GetCollection("users")

	var user models.User
	err := collection.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: updates}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

func UpdateUserPassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	collection := GetCollection("users")

	result, err := collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "password", Value: passwordHash}}}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func GetAllUsers(ctx context.Context) ([]models.User, error) {
	collection := GetCollection("users")

	cursor, err := collection.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUserCascade removes a user together with their cart and, for
// sellers, all products they own.
func DeleteUserCascade(ctx context.Context, id bson.ObjectID) error {
	if _, err := GetCollection("carts").DeleteMany(ctx, bson.D{{Key: "user_id", Value: id}}); err != nil {
		return err
	}
	if _, err := GetCollection("products").DeleteMany(ctx, bson.D{{Key: "seller_id", Value: id}}); err != nil {
		return err
	}

	result, err := GetCollection("users").DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ToggleFavorite adds or removes a product from the user's favorites and
// reports whether it is a favorite afterwards.
func ToggleFavorite(ctx context.Context, userID, productID bson.ObjectID) (bool, error) {
	user, err := GetUserByID(ctx, userID)
	if err != nil {
		return false, err
	}

	collection := GetCollection("users")
	if user.IsFavorite(productID) {
		_, err = collection.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: userID}},
			bson.D{{Key: "$pull", Value: bson.D{{Key: "favorites", Value: productID}}}},
		)
		return false, err
	}

	_, err = collection.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$addToSet", Value: bson.D{{Key: "favorites", Value: productID}}}},
	)
	return true, err
}

func GetFavoriteProducts(ctx context.Context, userID bson.ObjectID) ([]models.Product, error) {
	user, err := GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Favorites) == 0 {
		return []models.Product{}, nil
	}

	collection := GetCollection("products")
	cursor, err := collection.Find(ctx, bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: user.Favorites}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
