package security

import (
	"errors"
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// JWTMiddleware validates the bearer token and stores the caller identity.
func (t *TokenIssuer) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		claims, err := t.Parse(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		SetIdentity(c, claims.Identity())
		c.Next()
	}
}

// Authorize ensures the user has at least the required role.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := IdentityFromContext(c)
		if err != nil || !identity.Role.IsValid() || !identity.Role.HasPermission(requiredRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}

		c.Next()
	}
}

func SetIdentity(c *gin.Context, identity models.Identity) {
	c.Set(identityKey, identity)
	c.Set("userID", identity.ID)
	c.Set("role", identity.Role.String())
}

func IdentityFromContext(c *gin.Context) (models.Identity, error) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, errors.New("no authenticated user")
	}

	identity, ok := value.(models.Identity)
	if !ok || identity.ID == "" {
		return models.Identity{}, errors.New("no authenticated user")
	}

	return identity, nil
}
