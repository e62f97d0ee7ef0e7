// Package token mints portal access tokens: time-boxed secrets granting one
// contractor access to submit documents for one campaign without a login.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/coastalprograms/swms-engine/internal/pkg/clock"
	"github.com/coastalprograms/swms-engine/internal/pkg/errs"
)

// 32 bytes of entropy, well past the 128-bit guessing floor.
const tokenBytes = 32

var ErrEntropy = errs.New("failed to read random bytes for portal token")

// Token is immutable once issued. Supersession happens at the persistence
// layer: writing a new token over a (campaign, contractor) send row atomically
// makes the previous value unresolvable.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ExpiredAt reports whether the token is unusable at now, regardless of any
// document state.
func (t Token) ExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type Issuer struct {
	ttl   time.Duration
	clock clock.Clock
}

func NewIssuer(ttl time.Duration, clk clock.Clock) *Issuer {
	return &Issuer{ttl: ttl, clock: clk}
}

// Issue mints a fresh high-entropy token. Uniqueness across live tokens comes
// from the entropy; the database additionally carries a unique index as a
// backstop.
func (i *Issuer) Issue() (Token, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return Token{}, errs.Mark(err, ErrEntropy)
	}

	issuedAt := i.clock.Now()
	return Token{
		Value:     base64.RawURLEncoding.EncodeToString(buf),
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(i.ttl),
	}, nil
}
