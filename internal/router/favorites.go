package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/mongo"
)

// ToggleFavorite flips a product in and out of the caller's favorites.
func ToggleFavorite(c *gin.Context) {
	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "productId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	if _, err := mongo.GetProductByID(c.Request.Context(), productID); err != nil {
		if err == mongo.ErrProductMissing {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "productId", Message: "No product exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error checking product before favorite toggle: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update favorites", nil))
		return
	}

	isFavorite, err := mongo.ToggleFavorite(c.Request.Context(), currentUserID(c), productID)
	if err != nil {
		log.Printf("Error toggling favorite: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update favorites", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]bool{"is_favorite": isFavorite}))
}

func GetFavorites(c *gin.Context) {
	products, err := mongo.GetFavoriteProducts(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("Error fetching favorites: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get favorites", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func CheckFavoriteStatus(c *gin.Context) {
	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "productId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	user := currentUser(c)
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]bool{"is_favorite": user.IsFavorite(productID)}))
}
