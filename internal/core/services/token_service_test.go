package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitnotes/habitnotes/internal/core/services"
)

func TestTokenService(t *testing.T) {
	svc := services.NewTokenService("test-secret-key", "habitnotes", time.Hour)

	t.Run("Success: generated token validates back to its subject", func(t *testing.T) {
		token, err := svc.GenerateToken("api")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		subject, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "api", subject)
	})

	t.Run("Fail: garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("Fail: token signed with a different secret", func(t *testing.T) {
		other := services.NewTokenService("other-secret", "habitnotes", time.Hour)
		token, err := other.GenerateToken("api")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Fail: wrong issuer", func(t *testing.T) {
		other := services.NewTokenService("test-secret-key", "someone-else", time.Hour)
		token, err := other.GenerateToken("api")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Fail: expired token", func(t *testing.T) {
		expired := services.NewTokenService("test-secret-key", "habitnotes", -time.Minute)
		token, err := expired.GenerateToken("api")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})
}
