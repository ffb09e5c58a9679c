package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestMaker_ParseToken_WrongSecret(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)
	other := NewMaker("another-secret", time.Hour)

	token, err := maker.GenerateToken("alice")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseToken_Expired(t *testing.T) {
	maker := NewMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken("alice")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseToken_Garbage(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	_, err := maker.ParseToken("not.a.token")
	assert.Error(t, err)
}
