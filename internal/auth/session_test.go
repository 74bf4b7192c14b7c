package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	token, err := issuer.Issue("0xabc")
	require.NoError(t, err)

	identityKey, err := issuer.ExtractIdentityKey(token)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", identityKey)

	// Bearer prefix is accepted too.
	identityKey, ok := issuer.ValidateToken("Bearer " + token)
	assert.True(t, ok)
	assert.Equal(t, "0xabc", identityKey)
}

func TestTokenIssuerRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, ok := issuer.ValidateToken("Bearer not-a-token")
		assert.False(t, ok)
	})

	t.Run("empty header", func(t *testing.T) {
		_, ok := issuer.ValidateToken("")
		assert.False(t, ok)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenIssuer([]byte("other-secret"), time.Hour)
		token, err := other.Issue("0xabc")
		require.NoError(t, err)

		_, ok := issuer.ValidateToken(token)
		assert.False(t, ok)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenIssuer([]byte("test-secret"), -time.Minute)
		token, err := expired.Issue("0xabc")
		require.NoError(t, err)

		_, ok := issuer.ValidateToken(token)
		assert.False(t, ok)
	})
}
