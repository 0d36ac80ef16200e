package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriflow/kyc-server/internal/model"
)

func TestJWT_AccessTokenRoundTrip(t *testing.T) {
	j := NewJWT("test-secret")
	userID := uuid.New()

	tokenString, err := j.GenerateAccessToken(userID, model.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	parsedID, role, err := j.ParseAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, model.RoleAdmin, role)
}

func TestJWT_RefreshTokenRoundTrip(t *testing.T) {
	j := NewJWT("test-secret")
	userID := uuid.New()

	tokenString, jti, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	parsedID, parsedJTI, err := j.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, jti, parsedJTI)
}

func TestJWT_TypeMismatch(t *testing.T) {
	j := NewJWT("test-secret")
	userID := uuid.New()

	access, err := j.GenerateAccessToken(userID, model.RoleCustomer)
	require.NoError(t, err)
	refresh, _, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, _, err = j.ParseRefreshToken(access)
	assert.Error(t, err)
	_, _, err = j.ParseAccessToken(refresh)
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	issued := NewJWT("secret-one")
	verifier := NewJWT("secret-two")

	tokenString, err := issued.GenerateAccessToken(uuid.New(), model.RoleCustomer)
	require.NoError(t, err)

	_, _, err = verifier.ParseAccessToken(tokenString)
	assert.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	j := NewJWT("test-secret")

	_, _, err := j.ParseAccessToken("not-a-token")
	assert.Error(t, err)
}
