package model

import (
	"context"

	"todo-assistant/pkg/scope"
)

// Scope identifies the authenticated user a request acts for. Every store
// lookup and write in a request is keyed by Scope.UserID.
type Scope struct {
	UserID   int64
	Username string
}

// NewScope builds a Scope from a verified session payload.
func NewScope(p scope.Payload) Scope {
	return Scope{UserID: p.UserID, Username: p.Username}
}

// ScopeFromContext returns the Scope of the authenticated request, if any.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	p, ok := scope.GetPayloadFromContext(ctx)
	if !ok || p.UserID <= 0 {
		return Scope{}, false
	}
	return NewScope(p), true
}
