// Package session owns the current Identity of a client session and mediates
// all changes to it. State survives reloads in a DurableStore under two keys,
// auth_token and user_data, which are always written and removed together.
package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/veriflow/kyc-server/internal/logger"
	"github.com/veriflow/kyc-server/internal/model"
)

// AuthBackend performs the actual credential exchange for the session store.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (model.Identity, model.TokenPair, error)
	Register(ctx context.Context, name, email, password string) (model.Identity, model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

// Store mediates all changes to the current Identity. Each operation either
// fully replaces the identity or leaves it untouched; no partial update is
// ever observable. Overlapping login/register calls are allowed and resolve
// last-write-wins: the durable store is only written on completion.
type Store struct {
	auth   AuthBackend
	tokens model.TokenManager
	logger *logger.Logger
}

// NewStore creates a session store bound to an auth backend and token manager.
func NewStore(auth AuthBackend, tokens model.TokenManager, logger *logger.Logger) *Store {
	return &Store{auth: auth, tokens: tokens, logger: logger}
}

// Restore rebuilds the session from durable storage. If either key is absent
// the session is anonymous. If the stored identity does not parse, or the
// stored token does not validate, the corrupt entries are cleared and the
// session degrades to anonymous; no error is surfaced.
func (s *Store) Restore(ctx context.Context, store model.DurableStore) model.Session {
	tokenString, haveToken := store.Get(model.StorageKeyAuthToken)
	rawIdentity, haveIdentity := store.Get(model.StorageKeyUserData)

	if !haveToken || !haveIdentity {
		return model.Session{}
	}

	var identity model.Identity
	if err := json.Unmarshal([]byte(rawIdentity), &identity); err != nil {
		s.logger.Warn("session restore: stored identity does not parse, clearing",
			"error", err.Error())
		clearStorage(store)
		return model.Session{}
	}

	if _, _, err := s.tokens.ParseAccessToken(tokenString); err != nil {
		s.logger.Warn("session restore: stored token is invalid, clearing",
			"error", err.Error())
		clearStorage(store)
		return model.Session{}
	}

	return model.Session{Current: &identity}
}

// Login authenticates against the backend. On success the identity and token
// pair are persisted and the returned session carries the new identity. On
// credential mismatch storage and session are left untouched and
// model.ErrInvalidCredentials is returned.
func (s *Store) Login(ctx context.Context, store model.DurableStore, email, password string) (model.Session, error) {
	identity, pair, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return model.Session{}, err
	}

	if err := persist(store, identity, pair); err != nil {
		return model.Session{}, err
	}

	s.logger.Info("session: login completed", "email", identity.Email, "role", identity.Role)
	return model.Session{Current: &identity}, nil
}

// Register creates a new customer account. Registration performs no
// validation by contract and fails only on backend storage errors.
func (s *Store) Register(ctx context.Context, store model.DurableStore, name, email, password string) (model.Session, error) {
	identity, pair, err := s.auth.Register(ctx, name, email, password)
	if err != nil {
		return model.Session{}, err
	}

	if err := persist(store, identity, pair); err != nil {
		return model.Session{}, err
	}

	s.logger.Info("session: registration completed", "email", identity.Email)
	return model.Session{Current: &identity}, nil
}

// Logout clears the current identity and removes all persisted session
// entries. The refresh token is revoked best-effort: a revocation failure
// never keeps the client logged in.
func (s *Store) Logout(ctx context.Context, store model.DurableStore) model.Session {
	if refresh, ok := store.Get(model.StorageKeyRefreshToken); ok {
		if err := s.auth.Logout(ctx, refresh); err != nil {
			s.logger.Warn("session: refresh token revocation failed", "error", err.Error())
		}
	}

	clearStorage(store)
	return model.Session{}
}

func persist(store model.DurableStore, identity model.Identity, pair model.TokenPair) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to serialize identity: %w", err)
	}

	store.Set(model.StorageKeyAuthToken, pair.AccessToken)
	store.Set(model.StorageKeyUserData, string(raw))
	store.Set(model.StorageKeyRefreshToken, pair.RefreshToken)
	return nil
}

func clearStorage(store model.DurableStore) {
	store.Delete(model.StorageKeyAuthToken)
	store.Delete(model.StorageKeyUserData)
	store.Delete(model.StorageKeyRefreshToken)
}
