package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	payload := &Payload{
		SessionID: "sess_AbC123xyz789",
		UserID:    "user_000000000001",
		Email:     "john@example.com",
		UserType:  UserTypeRegistered,
	}

	token, err := GenerateToken(payload, testSecret, SessionExpiration)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ParseToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "sess_AbC123xyz789", parsed.SessionID)
	assert.Equal(t, "user_000000000001", parsed.UserID)
	assert.Equal(t, "john@example.com", parsed.Email)
	assert.Equal(t, UserTypeRegistered, parsed.UserType)
	assert.Equal(t, TokenIssuer, parsed.Issuer)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(&Payload{SessionID: "sess_AbC123xyz789", UserType: UserTypeGuest}, testSecret, SessionExpiration)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(&Payload{SessionID: "sess_AbC123xyz789", UserType: UserTypeGuest}, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, testSecret)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSecret)
	assert.Error(t, err)
}
