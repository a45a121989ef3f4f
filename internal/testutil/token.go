package testutil

import (
	"testing"
	"time"

	"go-echo-newsroom/internal/middleware"
	"go-echo-newsroom/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// Token signs a bearer token for user that the auth middleware accepts for an
// hour.
func Token(t testing.TB, secret string, user *models.User) string {
	t.Helper()

	claims := middleware.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
