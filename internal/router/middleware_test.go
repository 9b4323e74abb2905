package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/models"
)

func runMiddleware(handler gin.HandlerFunc, user *models.User) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if user != nil {
		c.Set(ctxUserKey, user)
		c.Set(ctxUserIDKey, user.ID)
	}

	handler(c)
	return recorder
}

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name     string
		user     *models.User
		roles    []string
		wantCode int
	}{
		{
			name:     "no session",
			roles:    []string{models.RoleAdmin},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "wrong role",
			user:     &models.User{ID: bson.NewObjectID(), Role: models.RoleUser},
			roles:    []string{models.RoleAdmin},
			wantCode: http.StatusForbidden,
		},
		{
			name:  "allowed role",
			user:  &models.User{ID: bson.NewObjectID(), Role: models.RoleSeller},
			roles: []string{models.RoleSeller, models.RoleAdmin},
			// handler chain continues, recorder keeps the default code
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := runMiddleware(RequireRoles(tt.roles...), tt.user)
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	limiter := RateLimit(time.Hour, 3)

	var lastCode int
	for i := 0; i < 4; i++ {
		recorder := runMiddleware(limiter, nil)
		lastCode = recorder.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
