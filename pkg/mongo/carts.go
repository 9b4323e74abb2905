package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/buybloom/backend/pkg/models"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("item not found in cart")
)

func GetCart(ctx context.Context, userID bson.ObjectID) (*models.Cart, error) {
	collection := GetCollection("carts")

	var cart models.Cart
	err := collection.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart creates the cart lazily on first add. Adding a product that is
// already present increments its quantity instead of duplicating the line.
func AddToCart(ctx context.Context, userID bson.ObjectID, item models.CartItem) (*models.Cart, error) {
	cart, err := GetCart(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == item.ProductID {
			cart.Items[i].Qty++
			found = true
			break
		}
	}
	if !found {
		item.Qty = 1
		cart.Items = append(cart.Items, item)
	}

	return saveCart(ctx, cart)
}

func UpdateCartItem(ctx context.Context, userID, productID bson.ObjectID, qty int) (*models.Cart, error) {
	cart, err := GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if qty < 1 {
		qty = 1
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Qty = qty
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCartItemNotFound
	}

	return saveCart(ctx, cart)
}

func RemoveFromCart(ctx context.Context, userID, productID bson.ObjectID) (*models.Cart, error) {
	cart, err := GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	remaining := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			remaining = append(remaining, item)
		}
	}
	cart.Items = remaining

	return saveCart(ctx, cart)
}

// ClearCart deletes the whole cart document for the user. Deleting the
// document rather than emptying its item list keeps the clear idempotent
// and immune to racing with a concurrent add.
func ClearCart(ctx context.Context, userID bson.ObjectID) error {
	collection := GetCollection("carts")
	_, err := collection.DeleteOne(ctx, bson.D{{Key: "user_id", Value: userID}})
	return err
}

func CountCarts(ctx context.Context) (int64, error) {
	return GetCollection("carts").CountDocuments(ctx, bson.D{})
}

func saveCart(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	collection := GetCollection("carts")

	cart.UpdatedAt = time.Now()
	_, err := collection.UpdateOne(ctx,
		bson.D{{Key: "user_id", Value: cart.UserID}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "user_id", Value: cart.UserID},
			{Key: "items", Value: cart.Items},
			{Key: "updated_at", Value: cart.UpdatedAt},
		}}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// CartStore is the checkout package's view of the cart collection.
type CartStore struct{}

func (CartStore) Items(ctx context.Context, userID bson.ObjectID) ([]models.CartItem, error) {
	cart, err := GetCart(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

func (CartStore) Clear(ctx context.Context, userID bson.ObjectID) error {
	return ClearCart(ctx, userID)
}
