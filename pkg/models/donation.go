package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Donation is a standalone gateway payment with no cart behind it. The
// donor fields are optional so guests can donate without an account.
type Donation struct {
	ID         bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID     *bson.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`
	DonorName  string         `bson:"donor_name,omitempty" json:"donor_name,omitempty"`
	DonorEmail string         `bson:"donor_email,omitempty" json:"donor_email,omitempty"`
	Amount     float64        `bson:"amount" json:"amount" validate:"required,gte=1,lte=100000"`
	PaymentID  string         `bson:"payment_id" json:"payment_id" validate:"required"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
}

type CreateDonationRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// DonationStats summarizes the donations collection for the public
// donate page.
type DonationStats struct {
	TotalAmount float64  `json:"total_amount"`
	Count       int      `json:"count"`
	RecentNames []string `json:"recent_names"`
}
