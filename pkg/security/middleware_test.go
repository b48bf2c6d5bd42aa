package security

import (
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedRouter(t *testing.T) (*gin.Engine, *TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	protected := router.Group("")
	protected.Use(issuer.JWTMiddleware())
	protected.GET("/me", func(c *gin.Context) {
		identity, err := IdentityFromContext(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, identity)
	})
	protected.GET("/admin", Authorize(roles.Admin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return router, issuer
}

func TestJWTMiddleware(t *testing.T) {
	router, issuer := setupProtectedRouter(t)
	token, err := issuer.GenerateJWT(testUser)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthorize(t *testing.T) {
	router, issuer := setupProtectedRouter(t)

	moderatorToken, err := issuer.GenerateJWT(testUser)
	require.NoError(t, err)
	admin := testUser
	admin.Role = "admin"
	adminToken, err := issuer.GenerateJWT(admin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+moderatorToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestIdentityFromContext_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := IdentityFromContext(c)
	assert.Error(t, err)

	SetIdentity(c, models.Identity{ID: "u-1", Role: roles.User})
	identity, err := IdentityFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.ID)
	assert.Equal(t, "user", c.GetString("role"))
}
