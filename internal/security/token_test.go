package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-at-least-32-characters!!"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	token, err := tm.GenerateAccessToken(7, "admin@fleetrent.example")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.AdminID)
	assert.Equal(t, "admin@fleetrent.example", claims.Email)
	assert.Equal(t, "fleetrent-admin", claims.Issuer)
}

func TestTokenManager_ValidateToken(t *testing.T) {
	tm := NewTokenManager(testSecret, 60)

	t.Run("Garbage token", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-also-32-characters!!!", 60)
		token, err := other.GenerateAccessToken(7, "admin@fleetrent.example")
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := &tokenManager{secret: []byte(testSecret), expiry: -time.Hour}
		token, err := expired.GenerateAccessToken(7, "admin@fleetrent.example")
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	assert.NoError(t, err)
	assert.True(t, CheckPassword("s3cret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}
