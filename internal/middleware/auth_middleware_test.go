package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emres/learnhub/internal/app/models"
	"github.com/emres/learnhub/internal/pkg/auth"
)

type identityCapture struct {
	called bool
	userID int64
	role   models.RoleType
}

func optionalAuthRouter(jwtService *auth.JWTService, capture *identityCapture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	router.GET("/courses/:id", m.OptionalJWTAuth(), func(c *gin.Context) {
		capture.called = true
		capture.userID = CurrentUserID(c)
		capture.role = CurrentUserRole(c)
		c.Status(http.StatusOK)
	})
	return router
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
}

func TestOptionalJWTAuthAnonymousPassesThrough(t *testing.T) {
	capture := &identityCapture{}
	router := optionalAuthRouter(testJWTService(), capture)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/1", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.called)
	assert.Zero(t, capture.userID)
	assert.Empty(t, capture.role)
}

func TestOptionalJWTAuthSetsIdentityFromToken(t *testing.T) {
	jwtService := testJWTService()
	capture := &identityCapture{}
	router := optionalAuthRouter(jwtService, capture)

	token, _, err := jwtService.GenerateToken(&models.User{
		ID:    7,
		Email: "admin@learnhub.local",
		Role:  models.RoleAdmin,
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.called)
	assert.Equal(t, int64(7), capture.userID)
	assert.Equal(t, models.RoleAdmin, capture.role)
}

func TestOptionalJWTAuthRejectsInvalidToken(t *testing.T) {
	capture := &identityCapture{}
	router := optionalAuthRouter(testJWTService(), capture)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/courses/1", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, capture.called)
}
