package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestResolvePricing(t *testing.T) {
	tests := []struct {
		name          string
		price         float64
		originalPrice float64
		discount      float64
		wantPrice     float64
		wantOriginal  float64
	}{
		{
			name:         "plain price",
			price:        500,
			wantPrice:    500,
			wantOriginal: 500,
		},
		{
			name:          "explicit original price",
			price:         450,
			originalPrice: 500,
			wantPrice:     450,
			wantOriginal:  500,
		},
		{
			name:         "discount without original derives both",
			price:        1000,
			discount:     20,
			wantPrice:    800,
			wantOriginal: 1000,
		},
		{
			name:          "discount with explicit original keeps price",
			price:         450,
			originalPrice: 500,
			discount:      10,
			wantPrice:     450,
			wantOriginal:  500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, original, discount := ResolvePricing(tt.price, tt.originalPrice, tt.discount)
			assert.InDelta(t, tt.wantPrice, price, 0.001)
			assert.InDelta(t, tt.wantOriginal, original, 0.001)
			assert.Equal(t, tt.discount, discount)
		})
	}
}

func TestCreateProductRequestToProduct(t *testing.T) {
	sellerID := bson.NewObjectID()
	req := CreateProductRequest{
		Name:        "Sunset Rose Bouquet",
		Category:    "bouquets",
		Price:       1000,
		Discount:    10,
		Description: "A dozen roses",
		Image:       "https://example.com/roses.jpg",
	}

	product := req.ToProduct(sellerID)

	assert.Equal(t, sellerID, product.SellerID)
	assert.InDelta(t, 900.0, product.Price, 0.001)
	assert.InDelta(t, 1000.0, product.OriginalPrice, 0.001)
	assert.False(t, product.CreatedAt.IsZero())
	assert.False(t, product.ID.IsZero())
}

func TestCartSubtotal(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ProductID: bson.NewObjectID(), Price: 100, Qty: 2},
			{ProductID: bson.NewObjectID(), Price: 49.5, Qty: 1},
		},
	}

	assert.InDelta(t, 249.5, cart.Subtotal(), 0.001)
}

func TestOrderItemsTotalMatchesTotalAmount(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: bson.NewObjectID(), Quantity: 3, Price: 120},
			{ProductID: bson.NewObjectID(), Quantity: 1, Price: 640},
		},
		TotalAmount: 1000,
	}

	assert.InDelta(t, order.TotalAmount, order.ItemsTotal(), 0.001)
}

func TestUserPasswordRoundTrip(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("correct horse battery"))

	assert.NotEqual(t, "correct horse battery", user.Password)
	assert.True(t, user.ComparePassword("correct horse battery"))
	assert.False(t, user.ComparePassword("wrong password"))
}

func TestUserIsFavorite(t *testing.T) {
	fav := bson.NewObjectID()
	user := &User{Favorites: []bson.ObjectID{fav}}

	assert.True(t, user.IsFavorite(fav))
	assert.False(t, user.IsFavorite(bson.NewObjectID()))
}
