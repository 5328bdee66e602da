// internal/auth/session_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	require.NoError(t, Init(time.Hour))

	token, err := CreateJWT("player-1")
	require.NoError(t, err)

	sub, err := AuthenticateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "player-1", sub)
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	require.NoError(t, Init(time.Hour))
	token, err := CreateJWT("player-1")
	require.NoError(t, err)

	// a new key pair invalidates earlier tokens
	require.NoError(t, Init(-time.Minute))
	_, err = AuthenticateJWT(token)
	assert.Error(t, err)

	expired, err := CreateJWT("player-1")
	require.NoError(t, err)
	_, err = AuthenticateJWT(expired)
	assert.Error(t, err)

	_, err = AuthenticateJWT("not-a-token")
	assert.Error(t, err)
}
