package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veriflow/kyc-server/internal/model"
	"github.com/veriflow/kyc-server/internal/testutil"
	"github.com/veriflow/kyc-server/internal/token"
)

func newAuthFixture(users ...model.User) (*Auth, *fakeUserStore, model.TokenManager) {
	userStore := newFakeUserStore(users...)
	manager := token.NewJWT("test-secret")
	tokens := NewTokens(manager, newFakeRefreshTokenStore(), userStore, testutil.MakeNoopLogger())
	return NewAuth(userStore, tokens, testutil.MakeNoopLogger()), userStore, manager
}

func TestAuth_Login(t *testing.T) {
	existing := model.User{
		ID:                 uuid.New(),
		Email:              "user@example.com",
		DisplayName:        "John Doe",
		PasswordHash:       mustHash("user123"),
		Role:               model.RoleCustomer,
		VerificationStatus: model.VerificationPending,
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials",
			email:    "user@example.com",
			password: "user123",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "user123",
			wantErr:  model.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "user@example.com",
			password: "hunter2",
			wantErr:  model.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, _, manager := newAuthFixture(existing)

			identity, pair, err := auth.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, existing.Identity(), identity)

			userID, role, err := manager.ParseAccessToken(pair.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, existing.ID, userID)
			assert.Equal(t, model.RoleCustomer, role)
			assert.NotEmpty(t, pair.RefreshToken)
		})
	}
}

func TestAuth_Register(t *testing.T) {
	auth, userStore, _ := newAuthFixture()

	identity, pair, err := auth.Register(context.Background(), "Jane Roe", "jane@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "Jane Roe", identity.DisplayName)
	assert.Equal(t, "jane@example.com", identity.Email)
	assert.Equal(t, model.RoleCustomer, identity.Role)
	assert.Equal(t, model.VerificationNotStarted, identity.VerificationStatus)
	assert.NotEmpty(t, identity.AvatarURL)
	assert.NotEmpty(t, pair.AccessToken)

	stored, err := userStore.GetByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, []byte("secret"), stored.PasswordHash)
}

func TestAuth_Register_NoUniquenessCheck(t *testing.T) {
	auth, _, _ := newAuthFixture()

	_, _, err := auth.Register(context.Background(), "First", "same@example.com", "one")
	require.NoError(t, err)
	_, _, err = auth.Register(context.Background(), "Second", "same@example.com", "two")
	assert.NoError(t, err)
}

func TestAuth_Register_StorageError(t *testing.T) {
	auth, userStore, _ := newAuthFixture()
	userStore.createErr = errors.New("connection refused")

	_, _, err := auth.Register(context.Background(), "Jane Roe", "jane@example.com", "secret")
	assert.Error(t, err)
}

func TestAuth_Logout_RevokesRefreshToken(t *testing.T) {
	existing := model.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: mustHash("user123"),
		Role:         model.RoleCustomer,
	}
	userStore := newFakeUserStore(existing)
	manager := token.NewJWT("test-secret")
	refreshStore := newFakeRefreshTokenStore()
	tokens := NewTokens(manager, refreshStore, userStore, testutil.MakeNoopLogger())
	auth := NewAuth(userStore, tokens, testutil.MakeNoopLogger())

	_, pair, err := auth.Login(context.Background(), "user@example.com", "user123")
	require.NoError(t, err)

	require.NoError(t, auth.Logout(context.Background(), pair.RefreshToken))

	_, err = tokens.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, model.ErrTokenRevoked)
}
