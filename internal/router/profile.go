package router

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/media"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
)

func UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	updates := bson.D{}
	if req.Name != "" {
		updates = append(updates, bson.E{Key: "name", Value: req.Name})
	}
	if req.Email != "" {
		updates = append(updates, bson.E{Key: "email", Value: req.Email})
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("No updates provided", []global.ValidationError{
			{Field: "body", Message: "Request body must contain at least one field to update", Code: "empty_updates"},
		}))
		return
	}

	user, err := mongo.UpdateUserProfile(c.Request.Context(), currentUserID(c), updates)
	if err != nil {
		if err == mongo.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
			}))
			return
		}
		log.Printf("Error updating profile: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to update profile", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user.Info()))
}

// UploadAvatar replaces the caller's avatar image. The previous asset is
// destroyed after the new one is stored.
func UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Avatar file is required", []global.ValidationError{
			{Field: "avatar", Message: "Attach an image file under the 'avatar' field", Code: "missing_file"},
		}))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Failed to read avatar file", nil))
		return
	}
	defer file.Close()

	uploaded, err := mediaStore.Upload(c.Request.Context(), file, "avatars")
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, global.ErrorResponse("Media storage is not available", nil))
			return
		}
		log.Printf("Error uploading avatar: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to upload avatar", nil))
		return
	}

	old := currentUser(c)
	user, err := mongo.UpdateUserProfile(c.Request.Context(), old.ID, bson.D{
		{Key: "avatar", Value: uploaded.URL},
		{Key: "avatar_public_id", Value: uploaded.PublicID},
	})
	if err != nil {
		log.Printf("Error saving avatar reference: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to upload avatar", nil))
		return
	}

	if old.AvatarPublicID != "" {
		if destroyErr := mediaStore.Destroy(c.Request.Context(), old.AvatarPublicID); destroyErr != nil {
			log.Printf("Warning: Failed to destroy previous avatar %s: %v", old.AvatarPublicID, destroyErr)
		}
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user.Info()))
}

func DeleteAvatar(c *gin.Context) {
	old := currentUser(c)
	if old.Avatar == "" {
		c.JSON(http.StatusOK, global.SuccessResponse(old.Info()))
		return
	}

	user, err := mongo.UpdateUserProfile(c.Request.Context(), old.ID, bson.D{
		{Key: "avatar", Value: ""},
		{Key: "avatar_public_id", Value: ""},
	})
	if err != nil {
		log.Printf("Error clearing avatar reference: %v", err)
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to delete avatar", nil))
		return
	}

	if old.AvatarPublicID != "" {
		if destroyErr := mediaStore.Destroy(c.Request.Context(), old.AvatarPublicID); destroyErr != nil {
			log.Printf("Warning: Failed to destroy avatar %s: %v", old.AvatarPublicID, destroyErr)
		}
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user.Info()))
}
