package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Product represents a catalog entry owned by a single seller.
type Product struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string        `bson:"name" json:"name" validate:"required,min=2,max=200"`
	Category      string        `bson:"category" json:"category" validate:"required,min=2,max=100"`
	Price         float64       `bson:"price" json:"price" validate:"required,gt=0"`
	OriginalPrice float64       `bson:"original_price,omitempty" json:"original_price,omitempty"`
	Discount      float64       `bson:"discount" json:"discount" validate:"gte=0,lte=100"`
	Description   string        `bson:"description" json:"description" validate:"required,max=2000"`
	Image         string        `bson:"image" json:"image" validate:"required"`
	SellerID      bson.ObjectID `bson:"seller_id" json:"seller_id" validate:"required"`
	AverageRating float64       `bson:"average_rating" json:"average_rating" validate:"gte=0,lte=5"`
	TotalRatings  int           `bson:"total_ratings" json:"total_ratings" validate:"gte=0"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=200"`
	Category      string  `json:"category" binding:"required,min=2,max=100"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	OriginalPrice float64 `json:"original_price" binding:"omitempty,gt=0"`
	Discount      float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Description   string  `json:"description" binding:"required,max=2000"`
	Image         string  `json:"image" binding:"omitempty,url"`
}

type UpdateProductRequest struct {
	Name          string   `json:"name" binding:"omitempty,min=2,max=200"`
	Category      string   `json:"category" binding:"omitempty,min=2,max=100"`
	Price         *float64 `json:"price" binding:"omitempty,gt=0"`
	OriginalPrice *float64 `json:"original_price" binding:"omitempty,gt=0"`
	Discount      *float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	Description   string   `json:"description" binding:"omitempty,max=2000"`
	Image         string   `json:"image" binding:"omitempty,url"`
}

// ResolvePricing derives the effective price, original price and discount
// from a seller-supplied combination. A discount without an explicit
// original price marks the given price as the original and reduces it.
func ResolvePricing(price, originalPrice, discount float64) (float64, float64, float64) {
	finalPrice := price
	finalOriginal := originalPrice
	if finalOriginal == 0 {
		finalOriginal = price
	}
	if discount > 0 && originalPrice == 0 {
		finalOriginal = price
		finalPrice = price * (1 - discount/100)
	}
	return finalPrice, finalOriginal, discount
}

func (req *CreateProductRequest) ToProduct(sellerID bson.ObjectID) *Product {
	price, original, discount := ResolvePricing(req.Price, req.OriginalPrice, req.Discount)
	product := &Product{
		ID:            bson.NewObjectID(),
		Name:          req.Name,
		Category:      req.Category,
		Price:         price,
		OriginalPrice: original,
		Discount:      discount,
		Description:   req.Description,
		Image:         req.Image,
		SellerID:      sellerID,
	}
	product.SetTimestamps()
	return product
}

func (p *Product) SetTimestamps() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
