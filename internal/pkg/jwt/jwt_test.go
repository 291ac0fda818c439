package jwt

import (
	"testing"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RejectsBadDuration(t *testing.T) {
	_, err := NewJWTService("secret", "soon")
	assert.Error(t, err)
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newService(t)

	token, expiresAt, err := svc.GenerateAccessToken("u-1", user.RoleManager, "fr")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims["user_id"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, "fr", claims["language"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestSSEToken_RoundTrip(t *testing.T) {
	svc := newService(t)

	token, expiresIn, err := svc.GenerateSSEToken("u-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestValidateSSEToken_RejectsAccessToken(t *testing.T) {
	svc := newService(t)

	access, _, err := svc.GenerateAccessToken("u-1", user.RoleOwner, "")
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)

	_, err = svc.ValidateSSEToken("garbage")
	assert.Error(t, err)
}
