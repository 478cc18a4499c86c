// Package session issues and resolves admin sessions backed by the
// admin_sessions table and an in-memory cache.
package session

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"codeslabs/infrastructure/cache"
	"codeslabs/infrastructure/sqlite"
	"codeslabs/models"
)

const (
	CookieName = "admin_auth_token"
	Lifetime   = 12 * time.Hour
)

var ErrNoSession = errors.New("no admin session")

func Cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// ClearCookie expires the admin cookie in the browser.
func ClearCookie() *http.Cookie {
	return Cookie("", -1)
}

// Manager owns the admin session lifecycle.
type Manager struct {
	db    *sqlite.DB
	cache *cache.AdminSessionCache
	now   func() time.Time
}

func NewManager(db *sqlite.DB, c *cache.AdminSessionCache) *Manager {
	if c == nil {
		c = cache.NewAdminSessionCache()
	}
	return &Manager{db: db, cache: c, now: func() time.Time { return time.Now().UTC() }}
}

// Create persists a fresh session and returns it with its cookie.
func (m *Manager) Create(ctx context.Context) (models.AdminSession, *http.Cookie, error) {
	now := m.now()
	s := models.AdminSession{
		ID:        newToken(),
		ExpiresAt: now.Add(Lifetime),
		CreatedAt: now,
	}
	err := m.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&s).Exec(ctx)
		return err
	})
	if err != nil {
		return models.AdminSession{}, nil, fmt.Errorf("create admin session: %w", err)
	}
	m.cache.Add(s)
	return s, Cookie(s.ID, int(Lifetime.Seconds())), nil
}

// Resolve returns the live session for token, consulting the cache first.
// Expired sessions are deleted and reported as ErrNoSession.
func (m *Manager) Resolve(ctx context.Context, token string) (models.AdminSession, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.AdminSession{}, ErrNoSession
	}

	s, ok := m.cache.Find(token)
	if !ok {
		err := m.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
			return tx.NewSelect().Model(&s).Where("s.id = ?", token).Limit(1).Scan(ctx)
		})
		if errors.Is(err, sql.ErrNoRows) {
			return models.AdminSession{}, ErrNoSession
		}
		if err != nil {
			return models.AdminSession{}, fmt.Errorf("load admin session: %w", err)
		}
		m.cache.Add(s)
	}

	if m.now().After(s.ExpiresAt) {
		if err := m.Delete(ctx, token); err != nil {
			return models.AdminSession{}, err
		}
		return models.AdminSession{}, ErrNoSession
	}
	return s, nil
}

func (m *Manager) Delete(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	m.cache.Delete(token)
	err := m.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.AdminSession)(nil)).Where("id = ?", token).Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired sessions from the table and the cache.
func (m *Manager) PurgeExpired(ctx context.Context) (int, error) {
	now := m.now()
	m.cache.PruneExpired(now)
	var removed int64
	err := m.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*models.AdminSession)(nil)).Where("expires_at < ?", now).Exec(ctx)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("purge admin sessions: %w", err)
	}
	return int(removed), nil
}

func newToken() string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
