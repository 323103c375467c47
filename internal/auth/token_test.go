package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/internal/errors"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	userID := uuid.New()

	token, err := issuer.Sign(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	other := NewTokenIssuer("other-secret")

	token, err := issuer.Sign(uuid.New())
	require.NoError(t, err)

	got, err := other.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	assert.Equal(t, uuid.Nil, got)
}

func TestTokenIssuer_TamperedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Sign(uuid.New())
	require.NoError(t, err)

	// flip the last character of the signature
	flipped := "A"
	if token[len(token)-1] == 'A' {
		flipped = "B"
	}
	tampered := token[:len(token)-1] + flipped

	got, err := issuer.Verify(tampered)
	assert.ErrorIs(t, err, apperrors.ErrInvalidSignature)
	assert.Equal(t, uuid.Nil, got)
}

func TestTokenIssuer_NilUserID(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	// a validly signed token for the nil id is still not an identity
	token, err := issuer.Sign(uuid.Nil)
	require.NoError(t, err)

	got, err := issuer.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrMalformedToken)
	assert.Equal(t, uuid.Nil, got)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	for _, token := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		got, err := issuer.Verify(token)
		assert.ErrorIs(t, err, apperrors.ErrMalformedToken, "token %q", token)
		assert.Equal(t, uuid.Nil, got)
	}
}
