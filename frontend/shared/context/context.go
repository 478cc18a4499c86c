package context

import (
	"context"

	"codeslabs/models"
)

type sessionKey struct{}

func NewContextWithSession(ctx context.Context, session models.AdminSession) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func GetSessionFromContext(ctx context.Context) (models.AdminSession, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.AdminSession)
	return s, ok
}

// IsAdmin reports whether the request carries a resolved admin session.
func IsAdmin(ctx context.Context) bool {
	_, ok := GetSessionFromContext(ctx)
	return ok
}
