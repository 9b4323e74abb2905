package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User represents an account holder: a buyer, a seller, or an admin.
type User struct {
	ID             bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string          `bson:"name" json:"name" validate:"required,min=2,max=50"`
	Email          string          `bson:"email" json:"email" validate:"required,email"`
	Password       string          `bson:"password" json:"-" validate:"required,min=8"` // Never expose in JSON
	Role           string          `bson:"role" json:"role" validate:"required,oneof=user seller admin"`
	Avatar         string          `bson:"avatar" json:"avatar"`
	AvatarPublicID string          `bson:"avatar_public_id,omitempty" json:"-"`
	Favorites      []bson.ObjectID `bson:"favorites,omitempty" json:"favorites,omitempty"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updated_at"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user seller admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=50"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UserInfo is the public projection of a User returned by auth endpoints.
type UserInfo struct {
	ID     bson.ObjectID `json:"id"`
	Name   string        `json:"name"`
	Email  string        `json:"email"`
	Role   string        `json:"role"`
	Avatar string        `json:"avatar,omitempty"`
}

func (u *User) Info() UserInfo {
	return UserInfo{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}

// SetPassword hashes the plaintext password with bcrypt (cost 12).
func (u *User) SetPassword(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate)) == nil
}

func (u *User) IsFavorite(productID bson.ObjectID) bool {
	for _, id := range u.Favorites {
		if id == productID {
			return true
		}
	}
	return false
}

func (u *User) SetTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}
