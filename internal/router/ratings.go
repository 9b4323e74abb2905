package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
	"github.com/buybloom/backend/pkg/redis"
)

// AddRating records or replaces the caller's rating for a product and
// refreshes the product's aggregate score.
func AddRating(c *gin.Context) {
	var req models.AddRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	productID, err := bson.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "product_id", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	if _, err := mongo.GetProductByID(c.Request.Context(), productID); err != nil {
		if err == mongo.ErrProductMissing {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "product_id", Message: "No product exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error checking product before rating: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add rating", nil))
		return
	}

	rating := &models.Rating{
		ProductID: productID,
		UserID:    currentUserID(c),
		Rating:    req.Rating,
		Review:    req.Review,
	}
	if err := mongo.UpsertRating(c.Request.Context(), rating); err != nil {
		log.Printf("Error upserting rating: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add rating", nil))
		return
	}

	// The cached product carries stale aggregate fields now
	if product, err := mongo.GetProductByID(c.Request.Context(), productID); err == nil {
		if cacheErr := redis.CacheProduct(c.Request.Context(), product); cacheErr != nil {
			log.Printf("Warning: Failed to refresh product cache in Redis: %v", cacheErr)
		}
	}

	c.JSON(http.StatusCreated, global.SuccessResponse(rating))
}

func GetProductRatings(c *gin.Context) {
	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "productId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	ratings, err := mongo.GetProductRatings(c.Request.Context(), productID)
	if err != nil {
		log.Printf("Error fetching ratings: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get ratings", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(ratings))
}
