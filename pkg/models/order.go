package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem records one purchased line: the product, its seller and the
// price that was actually charged.
type OrderItem struct {
	ProductID bson.ObjectID `bson:"product_id" json:"product_id" validate:"required"`
	SellerID  bson.ObjectID `bson:"seller_id" json:"seller_id" validate:"required"`
	Quantity  int           `bson:"quantity" json:"quantity" validate:"required,gte=1"`
	Price     float64       `bson:"price" json:"price" validate:"required,gt=0"`
}

// Order is an append-only ledger entry for a completed purchase. The
// gateway payment id carries a unique index and acts as the idempotency
// key; an order is never mutated after it is written.
type Order struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      bson.ObjectID `bson:"user_id" json:"user_id" validate:"required"`
	Items       []OrderItem   `bson:"items" json:"items" validate:"required,min=1,dive"`
	TotalAmount float64       `bson:"total_amount" json:"total_amount" validate:"required,gt=0"`
	PaymentID   string        `bson:"payment_id" json:"payment_id" validate:"required"`
	Status      string        `bson:"status" json:"status" validate:"required,oneof=completed cancelled"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// ItemsTotal sums the line items; it must always equal TotalAmount.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (o *Order) SetTimestamps() {
	now := time.Now()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
}
