package context

import (
	"context"

	"github.com/dtroode/learnhub-auth/internal/model"
)

// principalKey is the context key the authenticated principal is stored under.
type principalKey struct{}

// Manager stores the request-scoped principal in a context.Context.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetPrincipalToContext returns a copy of ctx carrying principal.
func (m *Manager) SetPrincipalToContext(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, &principal)
}

// GetPrincipalFromContext returns the principal set on ctx, if any.
func (m *Manager) GetPrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*model.Principal)
	if !ok || principal == nil {
		return model.Principal{}, false
	}
	return *principal, true
}

// ClearPrincipal returns a copy of ctx with no principal. Clearing a context
// that has none is a no-op.
func (m *Manager) ClearPrincipal(ctx context.Context) context.Context {
	if _, ok := m.GetPrincipalFromContext(ctx); !ok {
		return ctx
	}
	return context.WithValue(ctx, principalKey{}, (*model.Principal)(nil))
}
