package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Generate("u1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate("u1")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTWrongSecret(t *testing.T) {
	issuer := NewJWTManager("issuer-secret", time.Hour)
	verifier := NewJWTManager("other-secret", time.Hour)

	token, _, err := issuer.Generate("u1")
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestJWTTampered(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, _, err := m.Generate("u1")
	require.NoError(t, err)

	_, err = m.Parse(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("testers")
	require.NoError(t, err)
	require.NotEqual(t, "testers", hash)

	assert.True(t, CompareHashAndPassword(hash, "testers"))
	assert.False(t, CompareHashAndPassword(hash, "wrong"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "testers"))
}
