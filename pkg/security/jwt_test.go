package security

import (
	"inventory/pkg/models"
	"inventory/pkg/roles"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{ID: "u-1", Username: "alex", Fullname: "Alex Doe", Role: "moderator"}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestGenerateAndParse(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.GenerateJWT(testUser)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{ID: "u-1", Name: "Alex Doe", Role: roles.Moderator}, claims.Identity())
}

func TestParse_RejectsExpiredAndForeignTokens(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenIssuer("other-secret", time.Hour)
	require.NoError(t, err)

	foreign, err := other.GenerateJWT(testUser)
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.Error(t, err)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := issuer.GenerateJWT(testUser)
	require.NoError(t, err)
	issuer.now = time.Now
	_, err = issuer.Parse(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestClaimsIdentity_FallsBackToUsername(t *testing.T) {
	claims := Claims{UserID: "u-2", Username: "sam", Role: "USER"}
	assert.Equal(t, models.Identity{ID: "u-2", Name: "sam", Role: roles.User}, claims.Identity())
}
