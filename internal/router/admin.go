package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/ai"
	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/mongo"
)

func GetDashboardStats(c *gin.Context) {
	stats, err := mongo.GetDashboardStats(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching dashboard stats: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get dashboard stats", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(stats))
}

func GetAllUsers(c *gin.Context) {
	users, err := mongo.GetAllUsers(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get users", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(users))
}

func GetAllProductsAdmin(c *gin.Context) {
	products, err := mongo.GetAllProductsWithSellers(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching products with sellers: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get products", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(products))
}

func GetSellerStats(c *gin.Context) {
	stats, err := mongo.GetSellerStats(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching seller stats: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get seller stats", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(stats))
}

// DeleteUser removes an account along with its cart and listed products.
func DeleteUser(c *gin.Context) {
	userID, err := bson.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid user ID format", []global.ValidationError{
			{Field: "userId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	if userID == currentUserID(c) {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Cannot delete your own account", []global.ValidationError{
			{Field: "userId", Message: "Admins cannot delete themselves", Code: "invalid_operation"},
		}))
		return
	}

	if err := mongo.DeleteUserCascade(c.Request.Context(), userID); err != nil {
		if err == mongo.ErrUserNotFound {
			c.JSON(http.StatusNotFound, global.ErrorResponse("User not found", []global.ValidationError{
				{Field: "userId", Message: "No user exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error deleting user: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete user", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "User successfully deleted"}))
}

// GetSalesInsights returns the order-ledger rollup with an AI narrative
// when the AI service is configured.
func GetSalesInsights(c *gin.Context) {
	insights, err := ai.GenerateSalesInsights(c.Request.Context())
	if err != nil {
		log.Printf("Error generating sales insights: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to generate sales insights", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(insights))
}
