package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Rating is one user's score for one product. A compound unique index on
// (product_id, user_id) makes re-rating an update rather than a duplicate.
type Rating struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID bson.ObjectID `bson:"product_id" json:"product_id" validate:"required"`
	UserID    bson.ObjectID `bson:"user_id" json:"user_id" validate:"required"`
	Rating    int           `bson:"rating" json:"rating" validate:"required,gte=1,lte=5"`
	Review    string        `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updated_at"`
}

type AddRatingRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Review    string `json:"review"`
}

// RatingWithUser is the read shape for product rating listings.
type RatingWithUser struct {
	Rating   `bson:",inline"`
	UserName string `bson:"user_name" json:"user_name"`
}
