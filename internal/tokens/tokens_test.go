package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer() *Issuer {
	return &Issuer{Secret: []byte("test-secret"), TTL: time.Hour}
}

func TestSignAndParse(t *testing.T) {
	issuer := testIssuer()
	id := uuid.New()

	raw, err := issuer.Sign(id, "moderator", time.Now())
	require.NoError(t, err)

	claims, err := issuer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "moderator", claims.Role)

	got, err := claims.AccountID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseExpired(t *testing.T) {
	issuer := testIssuer()

	raw, err := issuer.Sign(uuid.New(), "member", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTampered(t *testing.T) {
	issuer := testIssuer()

	raw, err := issuer.Sign(uuid.New(), "member", time.Now())
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = issuer.Parse(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	raw, err := testIssuer().Sign(uuid.New(), "admin", time.Now())
	require.NoError(t, err)

	other := &Issuer{Secret: []byte("different"), TTL: time.Hour}
	_, err = other.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	issuer := testIssuer()
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := issuer.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestParseMissingRole(t *testing.T) {
	issuer := testIssuer()

	raw, err := issuer.Sign(uuid.New(), "", time.Now())
	require.NoError(t, err)

	_, err = issuer.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
