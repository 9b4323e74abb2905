package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/checkout"
	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
)

// CreateOrder prices the caller's cart and mints a gateway payment intent.
func CreateOrder(c *gin.Context) {
	intent, err := checkoutSvc.InitiateCheckout(c.Request.Context(), currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Cart is empty", []global.ValidationError{
				{Field: "cart", Message: "Add items to your cart before checking out", Code: "empty_cart"},
			}))
		case errors.Is(err, checkout.ErrGatewayUnavailable):
			log.Printf("Payment gateway error during checkout: %v", err)
			c.JSON(http.StatusBadGateway, global.ErrorResponse("Payment gateway unavailable", nil))
		default:
			log.Printf("Error initiating checkout: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create order", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(intent))
}

// VerifyPayment consumes the gateway confirmation triple, writes the order
// and clears the cart. A bad signature gets the same generic answer as any
// malformed confirmation.
func VerifyPayment(c *gin.Context) {
	var conf checkout.Confirmation
	if err := c.ShouldBindJSON(&conf); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Payment verification failed", nil))
		return
	}

	if err := checkoutSvc.ConfirmCheckout(c.Request.Context(), currentUserID(c), conf); err != nil {
		if errors.Is(err, checkout.ErrInvalidSignature) {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Payment verification failed", nil))
			return
		}
		log.Printf("Error confirming payment %s: %v", conf.PaymentID, err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to record order", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Payment verified successfully"}))
}

// CreateDonation mints a gateway intent for a standalone donation amount.
func CreateDonation(c *gin.Context) {
	var req models.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "amount", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	intent, err := checkoutSvc.InitiateDonation(c.Request.Context(), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid donation amount", []global.ValidationError{
				{Field: "amount", Message: "Amount must be between 1 and 100000", Code: "out_of_range"},
			}))
		case errors.Is(err, checkout.ErrGatewayUnavailable):
			log.Printf("Payment gateway error during donation: %v", err)
			c.JSON(http.StatusBadGateway, global.ErrorResponse("Payment gateway unavailable", nil))
		default:
			log.Printf("Error initiating donation: %v", err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create donation order", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(intent))
}

type verifyDonationRequest struct {
	checkout.Confirmation
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	DonorName  string  `json:"donor_name" binding:"omitempty,max=100"`
	DonorEmail string  `json:"donor_email" binding:"omitempty,email"`
}

// VerifyDonation records a completed donation, attributed to the session
// user when one is present.
func VerifyDonation(c *gin.Context) {
	var req verifyDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Payment verification failed", nil))
		return
	}

	var userID *bson.ObjectID
	donorName := req.DonorName
	donorEmail := req.DonorEmail
	if user := currentUser(c); user != nil {
		id := user.ID
		userID = &id
		donorName = user.Name
		donorEmail = user.Email
	}

	err := checkoutSvc.ConfirmDonation(c.Request.Context(), req.Confirmation, req.Amount, userID, donorName, donorEmail)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Payment verification failed", nil))
		case errors.Is(err, checkout.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid donation amount", []global.ValidationError{
				{Field: "amount", Message: "Amount must be between 1 and 100000", Code: "out_of_range"},
			}))
		default:
			log.Printf("Error confirming donation %s: %v", req.PaymentID, err)
			c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to record donation", nil))
		}
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Donation recorded successfully"}))
}

func GetDonationStats(c *gin.Context) {
	stats, err := mongo.GetDonationStats(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching donation stats: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to get donation stats", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(stats))
}
