package middleware

import (
	"context"

	"github.com/VasudevKishan/todo-api/internal/domain"
)

type contextKey string

const identityContextKey contextKey = "identity"

// WithIdentity injects the verified caller into the context.
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// IdentityFromContext returns the caller from the context, or nil.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	v := ctx.Value(identityContextKey)
	if v == nil {
		return nil
	}
	id, _ := v.(*domain.Identity)
	return id
}
