package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerify(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("super-secret")

	token, err := issuer.Sign("a@x.com", "user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := issuer.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", identity.Email)
	require.Equal(t, "user-123", identity.UserID)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenIssuer("right-secret").Sign("a@x.com", "u1")
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong-secret").Verify(token)
	require.Error(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	t.Parallel()

	_, err := NewTokenIssuer("secret").Verify("not-a-token")
	require.Error(t, err)
}

func TestVerifyMissingUserID(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret")
	token, err := issuer.Sign("a@x.com", "")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
