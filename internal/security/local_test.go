package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func TestLocalVerifier(t *testing.T) {
	ctx := context.Background()
	verifier := NewLocalVerifier(testSecret)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := GenerateLocalToken(testSecret, "user-1", "user@example.com", time.Hour)
		require.NoError(t, err)

		user, err := verifier.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UID)
		assert.Equal(t, "user@example.com", user.Email)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token, err := GenerateLocalToken(testSecret, "user-1", "user@example.com", -time.Minute)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := GenerateLocalToken("another-secret-another-secret-1234", "user-1", "", time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MissingSubject", func(t *testing.T) {
		token, err := GenerateLocalToken(testSecret, "", "user@example.com", time.Hour)
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
