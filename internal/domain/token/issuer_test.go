//go:build unit

package token_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/coastalprograms/swms-engine/internal/domain/token"
	"github.com/coastalprograms/swms-engine/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssue(t *testing.T) {
	issuedAt := time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(issuedAt)
	issuer := token.NewIssuer(7*24*time.Hour, clk)

	tok, err := issuer.Issue()
	require.NoError(t, err)

	t.Run("carries 256 bits of entropy", func(t *testing.T) {
		raw, decodeErr := base64.RawURLEncoding.DecodeString(tok.Value)
		require.NoError(t, decodeErr)
		assert.Len(t, raw, 32)
	})

	t.Run("expiry is issued_at plus ttl", func(t *testing.T) {
		assert.Equal(t, issuedAt, tok.IssuedAt)
		assert.Equal(t, issuedAt.Add(7*24*time.Hour), tok.ExpiresAt)
		assert.True(t, tok.ExpiresAt.After(tok.IssuedAt))
	})

	t.Run("successive tokens never collide", func(t *testing.T) {
		seen := map[string]bool{tok.Value: true}
		for i := 0; i < 100; i++ {
			next, issueErr := issuer.Issue()
			require.NoError(t, issueErr)
			require.False(t, seen[next.Value])
			seen[next.Value] = true
		}
	})
}

func TestExpiredAt(t *testing.T) {
	issuedAt := time.Date(2025, 3, 7, 8, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(issuedAt)
	issuer := token.NewIssuer(7*24*time.Hour, clk)

	tok, err := issuer.Issue()
	require.NoError(t, err)

	assert.False(t, tok.ExpiredAt(issuedAt))
	assert.False(t, tok.ExpiredAt(tok.ExpiresAt))
	assert.True(t, tok.ExpiredAt(tok.ExpiresAt.Add(time.Second)))
	assert.True(t, tok.ExpiredAt(tok.ExpiresAt.Add(30*24*time.Hour)))
}
