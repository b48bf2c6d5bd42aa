package security

import (
	"errors"
	"fmt"
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 120 * time.Hour

type Claims struct {
	UserID   string `json:"userID"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() models.Identity {
	name := c.Name
	if name == "" {
		name = c.Username
	}

	return models.Identity{
		ID:   c.UserID,
		Name: name,
		Role: roles.NewRole(c.Role),
	}
}

// TokenIssuer signs and verifies HS256 tokens with one shared secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (t *TokenIssuer) GenerateJWT(user models.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
		Name:     user.Fullname,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user")
	}

	return claims, nil
}
