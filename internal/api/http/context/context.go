// Package context carries the authenticated identity through request
// contexts.
package context

import (
	"context"

	"github.com/veriflow/kyc-server/internal/model"
)

type contextKey string

const identityKey contextKey = "identity"

// Manager implements model.ContextManager on plain context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity set by SetIdentityToContext.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

var _ model.ContextManager = (*Manager)(nil)
