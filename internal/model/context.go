package model

import "context"

// ContextManager attaches and removes the request-scoped principal.
type ContextManager interface {
	SetPrincipalToContext(ctx context.Context, principal Principal) context.Context
	GetPrincipalFromContext(ctx context.Context) (Principal, bool)
	ClearPrincipal(ctx context.Context) context.Context
}
