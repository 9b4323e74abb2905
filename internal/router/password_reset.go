package router

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
)

const resetTokenTTL = 30 * time.Minute

// RequestPasswordReset issues a single-use reset token. The response is
// identical whether or not the email exists, so the endpoint cannot be
// used to probe for accounts.
func RequestPasswordReset(c *gin.Context) {
	var req models.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "email", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	uniformResponse := global.SuccessResponse(map[string]string{
		"message": "If an account exists for this email, a reset link has been sent",
	})

	user, err := mongo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if err != mongo.ErrUserNotFound {
			log.Printf("Error looking up user for password reset: %v", err)
		}
		c.JSON(http.StatusOK, uniformResponse)
		return
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		log.Printf("Error generating reset token: %v", err)
		c.JSON(http.StatusOK, uniformResponse)
		return
	}
	token := hex.EncodeToString(raw)
	hash := sha256.Sum256([]byte(token))

	if err := mongo.CreatePasswordReset(c.Request.Context(), user.ID, hex.EncodeToString(hash[:]), resetTokenTTL); err != nil {
		log.Printf("Error storing reset token: %v", err)
		c.JSON(http.StatusOK, uniformResponse)
		return
	}

	// No mail provider wired up yet, so surface the link in the server log
	log.Printf("Password reset link for %s: /reset-password?token=%s", user.Email, token)

	c.JSON(http.StatusOK, uniformResponse)
}

func ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	hash := sha256.Sum256([]byte(req.Token))
	userID, err := mongo.ConsumePasswordReset(c.Request.Context(), hex.EncodeToString(hash[:]))
	if err != nil {
		if err == mongo.ErrResetTokenInvalid {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid or expired reset token", nil))
			return
		}
		log.Printf("Error consuming reset token: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to reset password", nil))
		return
	}

	var user models.User
	if err := user.SetPassword(req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password", nil))
		return
	}

	if err := mongo.UpdateUserPassword(c.Request.Context(), userID, user.Password); err != nil {
		log.Printf("Error updating password: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to reset password", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Password reset successfully"}))
}
