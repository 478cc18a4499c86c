package cache

import (
	"sync"
	"time"

	"codeslabs/models"
)

// AdminSessionCache stores admin sessions by token.
type AdminSessionCache struct {
	mu       sync.RWMutex
	sessions map[string]models.AdminSession
}

func NewAdminSessionCache() *AdminSessionCache {
	return &AdminSessionCache{sessions: make(map[string]models.AdminSession)}
}

func (c *AdminSessionCache) Add(s models.AdminSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[s.ID] = s
}

func (c *AdminSessionCache) Find(token string) (models.AdminSession, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[token]
	return s, ok
}

func (c *AdminSessionCache) Delete(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
}

// PruneExpired drops sessions that expired before now and returns how many
// were removed.
func (c *AdminSessionCache) PruneExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for token, s := range c.sessions {
		if now.After(s.ExpiresAt) {
			delete(c.sessions, token)
			removed++
		}
	}
	return removed
}
