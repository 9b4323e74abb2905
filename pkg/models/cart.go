package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CartItem holds a catalog reference plus display fields captured at
// add-time. The price here is denormalized for rendering only; checkout
// always re-resolves prices from the catalog.
type CartItem struct {
	ProductID bson.ObjectID `bson:"product_id" json:"product_id"`
	Name      string        `bson:"name" json:"name"`
	Price     float64       `bson:"price" json:"price"`
	Image     string        `bson:"image" json:"image"`
	Qty       int           `bson:"qty" json:"qty"`
}

// Cart is the per-user pre-purchase aggregate. One document per user,
// at most one item per distinct product.
type Cart struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"user_id"`
	Items     []CartItem    `bson:"items" json:"items"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

type AddToCartRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Image     string  `json:"image" binding:"required"`
}

type UpdateCartItemRequest struct {
	Qty int `json:"qty" binding:"required,min=1"`
}

func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Qty)
	}
	return total
}
