package api

import (
	"context"

	"shopbridge/pkg/shopify"
)

type ctxKey string

const ctxKeySession ctxKey = "session"

func WithSession(ctx context.Context, s *shopify.VerifiedSession) context.Context {
	return context.WithValue(ctx, ctxKeySession, s)
}

// SessionFromContext returns the verified admin session, or nil in dev mode.
func SessionFromContext(ctx context.Context) *shopify.VerifiedSession {
	s, _ := ctx.Value(ctxKeySession).(*shopify.VerifiedSession)
	return s
}
