package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestJWTer(clock *fakeClock) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "crud-api", TTL: time.Hour, Now: clock.Now}
}

func TestIssueAndParse(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	j := newTestJWTer(clock)

	tok, err := j.Issue("u-1", "admin")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", c.UID)
	assert.Equal(t, "u-1", c.Subject)
	assert.Equal(t, "admin", c.Role)
	assert.Equal(t, clock.t.Add(time.Hour).Unix(), c.ExpiresAt.Unix())
}

func TestParse_ExpiryWindow(t *testing.T) {
	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issued}
	j := newTestJWTer(clock)

	tok, err := j.Issue("u-1", "user")
	require.NoError(t, err)

	clock.t = issued.Add(30 * time.Minute)
	_, err = j.Parse(tok)
	assert.NoError(t, err)

	clock.t = issued.Add(61 * time.Minute)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParse_Invalid(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	j := newTestJWTer(clock)
	tok, err := j.Issue("u-1", "user")
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other-secret"), Issuer: "crud-api", Now: clock.Now}
	forged, err := other.Issue("u-1", "admin")
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "crud-api",
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tp, fp := strings.Split(tok, "."), strings.Split(forged, ".")
	spliced := tp[0] + "." + fp[1] + "." + tp[2]

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", forged},
		{"alg none", unsigned},
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"tampered payload", spliced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Parse(tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	j := newTestJWTer(clock)
	other := &JWTer{Secret: j.Secret, Issuer: "someone-else", Now: clock.Now}

	tok, err := other.Issue("u-1", "user")
	require.NoError(t, err)

	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssue_DefaultTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	j := &JWTer{Secret: []byte("s"), Now: clock.Now}

	tok, err := j.Issue("u-1", "user")
	require.NoError(t, err)
	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(DefaultTTL).Unix(), c.ExpiresAt.Unix())
}
