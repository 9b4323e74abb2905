package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
)

func GetCart(c *gin.Context) {
	userID := currentUserID(c)

	cart, err := mongo.GetCart(c.Request.Context(), userID)
	if err == mongo.ErrCartNotFound {
		// No document yet is the same as an empty cart
		c.JSON(http.StatusOK, global.SuccessResponse(&models.Cart{
			UserID: userID,
			Items:  []models.CartItem{},
		}))
		return
	}
	if err != nil {
		log.Printf("Error fetching cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func AddToCart(c *gin.Context) {
	var req models.AddToCartRequest
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

	// Make sure the product still exists before putting it in the cart
	if _, err := mongo.GetProductByID(c.Request.Context(), productID); err != nil {
		if err == mongo.ErrProductMissing {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Product not found", []global.ValidationError{
				{Field: "product_id", Message: "No product exists with this ID", Code: "not_found"},
			}))
			return
		}
		log.Printf("Error checking product before cart add: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add to cart", nil))
		return
	}

	cart, err := mongo.AddToCart(c.Request.Context(), currentUserID(c), models.CartItem{
		ProductID: productID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	})
	if err != nil {
		log.Printf("Error adding to cart: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to add to cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func UpdateCartItem(c *gin.Context) {
	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "productId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	var req models.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "qty", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	cart, err := mongo.UpdateCartItem(c.Request.Context(), currentUserID(c), productID, req.Qty)
	if err != nil {
		switch err {
		case mongo.ErrCartNotFound, mongo.ErrCartItemNotFound:
			c.JSON(http.StatusNotFound, global.ErrorResponse("Item not found in cart", []global.ValidationError{
				{Field: "productId", Message: "This product is not in your cart", Code: "not_found"},
			}))
		default:
			log.Printf("Error updating cart item: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func RemoveFromCart(c *gin.Context) {
	productID, err := bson.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid product ID format", []global.ValidationError{
			{Field: "productId", Message: "Must be a valid MongoDB ObjectID", Code: "invalid_format"},
		}))
		return
	}

	cart, err := mongo.RemoveFromCart(c.Request.Context(), currentUserID(c), productID)
	if err != nil {
		if err == mongo.ErrCartNotFound {
			c.JSON(http.StatusNotFound, global.ErrorResponse("Cart not found", nil))
			return
		}
		log.Printf("Error removing cart item: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update cart", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(cart))
}

func GetMyOrders(c *gin.Context) {
	orders, err := mongo.GetOrdersByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("Error fetching orders: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get orders", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(orders))
}
