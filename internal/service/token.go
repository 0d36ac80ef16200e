package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// Tokens issues access/refresh token pairs and rotates refresh tokens.
// Refresh tokens are stored hashed; presenting a revoked or rotated token
// fails validation.
type Tokens struct {
	manager model.TokenManager
	store   model.RefreshTokenStore
	users   model.UserStore
	logger  *logger.Logger
}

// NewTokens creates a new token service.
func NewTokens(manager model.TokenManager, store model.RefreshTokenStore, users model.UserStore, logger *logger.Logger) *Tokens {
	return &Tokens{
		manager: manager,
		store:   store,
		users:   users,
		logger:  logger,
	}
}

// Issue generates a fresh access/refresh pair for the user and records the
// refresh token hash.
func (t *Tokens) Issue(ctx context.Context, user model.User) (model.TokenPair, error) {
	return t.issue(ctx, user, nil)
}

// Refresh exchanges a valid refresh token for a new pair. The presented
// token is revoked as part of the rotation, so each refresh token is
// single-use.
func (t *Tokens) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	userID, jti, err := t.manager.ParseRefreshToken(refreshToken)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to parse refresh token: %w", err)
	}

	record, err := t.store.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrTokenRevoked
		}
		return model.TokenPair{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err := validateRecord(record, refreshToken); err != nil {
		return model.TokenPair{}, err
	}

	user, err := t.users.GetByID(ctx, userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := t.store.RevokeByJTI(ctx, jti); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to revoke rotated token: %w", err)
	}

	return t.issue(ctx, user, &jti)
}

// Revoke invalidates the presented refresh token. Tokens that do not parse
// or are already revoked are treated as revoked.
func (t *Tokens) Revoke(ctx context.Context, refreshToken string) error {
	_, jti, err := t.manager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	if err := t.store.RevokeByJTI(ctx, jti); err != nil && !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// RevokeAll invalidates every refresh token issued to the user.
func (t *Tokens) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	if err := t.store.RevokeAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke user tokens: %w", err)
	}
	return nil
}

func (t *Tokens) issue(ctx context.Context, user model.User, rotatedFromJTI *string) (model.TokenPair, error) {
	access, err := t.manager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, jti, err := t.manager.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	err = t.store.Create(ctx, model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         user.ID,
		TokenHash:      hashToken(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(refreshTokenTTL),
		RotatedFromJTI: rotatedFromJTI,
	})
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func validateRecord(record model.RefreshToken, presented string) error {
	if record.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if time.Now().After(record.ExpiresAt) {
		return model.ErrTokenExpired
	}
	hash := hashToken(presented)
	if subtle.ConstantTimeCompare(record.TokenHash, hash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}

func hashToken(token string) []byte {
	sum := sha256.Sum256([]byte(token))
	return sum[:]
}
