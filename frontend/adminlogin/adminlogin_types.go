package adminlogin

import (
	"context"
	"net/http"

	"codeslabs/models"
)

// KeyVerifier checks a submitted admin key.
type KeyVerifier interface {
	Verify(candidate string) error
}

// Sessions issues and revokes admin sessions.
type Sessions interface {
	Create(ctx context.Context) (models.AdminSession, *http.Cookie, error)
	Delete(ctx context.Context, token string) error
}
