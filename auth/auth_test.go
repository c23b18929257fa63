package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "super-secret"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{SessionID: "s1", EmployeeID: "e1"}

	token, err := GenerateToken(secret, claims, time.Hour, time.Now())
	require.NoError(t, err)

	parsed, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "s1", parsed.SessionID)
	assert.Equal(t, "e1", parsed.EmployeeID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("right", Claims{SessionID: "s1"}, time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ParseToken("wrong", token)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken("s", Claims{SessionID: "s1"}, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = ParseToken("s", token)
	assert.Error(t, err)
}
