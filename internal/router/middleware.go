package router

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/time/rate"

	"github.com/buybloom/backend/pkg/auth"
	"github.com/buybloom/backend/pkg/global"
	"github.com/buybloom/backend/pkg/mongo"
)

const (
	ctxUserKey   = "user"
	ctxUserIDKey = "userID"
)

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func loadSessionUser(c *gin.Context) bool {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return false
	}

	userIDHex, err := auth.ParseToken(tokenString)
	if err != nil {
		return false
	}
	userID, err := bson.ObjectIDFromHex(userIDHex)
	if err != nil {
		return false
	}

	user, err := mongo.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		return false
	}

	c.Set(ctxUserKey, user)
	c.Set(ctxUserIDKey, user.ID)
	return true
}

// Authenticate gates a route on a valid session token and loads the
// account into the request context.
func Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loadSessionUser(c) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuthenticate loads the session user when a valid token is
// present but lets anonymous requests through.
func OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		loadSessionUser(c)
		c.Next()
	}
}

// RequireRoles allows only the listed roles past. Must run after
// Authenticate.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Authentication required", nil))
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, global.ErrorResponse("Insufficient permissions", nil))
		c.Abort()
	}
}

// RateLimit allows up to burst requests per window for each client IP.
func RateLimit(window time.Duration, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limit := rate.Every(window / time.Duration(burst))
	return func(c *gin.Context) {
		mu.Lock()
		limiter, ok := limiters[c.ClientIP()]
		if !ok {
			limiter = rate.NewLimiter(limit, burst)
			limiters[c.ClientIP()] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, global.ErrorResponse("Too many attempts, please try again later", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}
