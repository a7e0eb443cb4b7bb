package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/taskflow-server/token"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	signer := token.NewHMACSigner("secret")

	raw, err := token.NewAccessToken(signer, "user-1", time.Now(), time.Minute)
	require.NoError(t, err)

	claims, err := token.Parse(signer, raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Empty(t, claims.JTI)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	signer := token.NewHMACSigner("secret")

	raw, err := token.NewRefreshToken(signer, "user-1", "jti-1", time.Now(), time.Minute)
	require.NoError(t, err)

	claims, err := token.Parse(signer, raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "jti-1", claims.JTI)
}

func TestParseRejectsWrongKey(t *testing.T) {
	raw, err := token.NewAccessToken(token.NewHMACSigner("secret"), "user-1", time.Now(), time.Minute)
	require.NoError(t, err)

	_, err = token.Parse(token.NewHMACSigner("other-secret"), raw)
	require.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	signer := token.NewHMACSigner("secret")

	raw, err := token.NewAccessToken(signer, "user-1", time.Now().Add(-2*time.Minute), time.Minute)
	require.NoError(t, err)

	_, err = token.Parse(signer, raw)
	require.Error(t, err)
}
