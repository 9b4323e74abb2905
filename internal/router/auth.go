package router

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/auth"
	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/models"
	"github.com/buybloom/backend/pkg/mongo"
)

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ctxUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func currentUserID(c *gin.Context) bson.ObjectID {
	if v, ok := c.Get(ctxUserIDKey); ok {
		if id, ok := v.(bson.ObjectID); ok {
			return id
		}
	}
	return bson.ObjectID{}
}

const sessionCookieMaxAge = 7 * 24 * 60 * 60 // seconds, matches token lifetime

func sendTokenCookie(c *gin.Context, token string) {
	secure := os.Getenv("ENV") == "production"
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", token, sessionCookieMaxAge, "/", "", secure, true)
}

func Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to process password", nil))
		return
	}

	created, err := mongo.CreateUser(c.Request.Context(), user)
	if err != nil {
		if err == mongo.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Email already registered", []global.ValidationError{
				{Field: "email", Message: "This email is already in use", Code: "duplicate_email"},
			}))
			return
		}
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account", nil))
		return
	}

	token, err := auth.GenerateToken(created.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to issue session", nil))
		return
	}
	sendTokenCookie(c, token)

	c.JSON(http.StatusCreated, global.SuccessResponse(created.Info()))
}

func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid request data", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	user, err := mongo.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !user.ComparePassword(req.Password) {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid credentials", nil))
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex())
	if err != nil {
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to issue session", nil))
		return
	}
	sendTokenCookie(c, token)

	c.JSON(http.StatusOK, global.SuccessResponse(user.Info()))
}

func Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, global.SuccessResponse(map[string]string{"message": "Logged out successfully"}))
}

func Me(c *gin.Context) {
	user := currentUser(c)
	c.JSON(http.StatusOK, global.SuccessResponse(user.Info()))
}
