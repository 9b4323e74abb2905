package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// PasswordReset stores a single-use reset token, SHA-256 hashed at rest.
// A TTL index on expires_at removes stale documents.
type PasswordReset struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"user_id" json:"user_id"`
	Token     string        `bson:"token" json:"-"`
	ExpiresAt time.Time     `bson:"expires_at" json:"expires_at"`
	Used      bool          `bson:"used" json:"used"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
