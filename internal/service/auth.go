// Package service implements the application's business operations on top of
// the persistence interfaces declared in model.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
)

// defaultAvatarURL is assigned to newly registered customers.
const defaultAvatarURL = "https://images.pexels.com/photos/1040880/pexels-photo-1040880.jpeg?w=150&h=150&fit=crop"

// Auth authenticates users and creates accounts.
type Auth struct {
	users  model.UserStore
	tokens *Tokens
	logger *logger.Logger
}

// NewAuth creates a new auth service.
func NewAuth(users model.UserStore, tokens *Tokens, logger *logger.Logger) *Auth {
	return &Auth{users: users, tokens: tokens, logger: logger}
}

// Login verifies the credentials and issues a token pair. Unknown email and
// wrong password both return model.ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) (model.Identity, model.TokenPair, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Identity{}, model.TokenPair{}, model.ErrInvalidCredentials
		}
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return model.Identity{}, model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)
	return user.Identity(), pair, nil
}

// Register creates a customer account and issues a token pair. There is no
// input validation and no uniqueness check on email; registration fails only
// on storage errors.
func (a *Auth) Register(ctx context.Context, name, email, password string) (model.Identity, model.TokenPair, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.users.Create(ctx, model.User{
		ID:                 uuid.New(),
		Email:              email,
		DisplayName:        name,
		PasswordHash:       hash,
		Role:               model.RoleCustomer,
		VerificationStatus: model.VerificationNotStarted,
		AvatarURL:          defaultAvatarURL,
	})
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := a.tokens.Issue(ctx, user)
	if err != nil {
		return model.Identity{}, model.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	a.logger.Info("user registered", "user_id", user.ID)
	return user.Identity(), pair, nil
}

// Logout revokes the presented refresh token.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	return a.tokens.Revoke(ctx, refreshToken)
}
