// Package session holds the signed-in operator for a client process.
package session

import (
	"sync"
	"time"

	"pharmanet/internal/domain/entity"
)

// Session is what a successful login leaves behind on the client.
type Session struct {
	Profile     *entity.Profile
	AccessToken string
	ExpiresAt   time.Time
}

// Cache is a single-slot, process-local session holder. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	current *Session
	now     func() time.Time
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{now: time.Now}
}

// Set replaces the cached session.
func (c *Cache) Set(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = s
}

// Current returns the cached session, or nil when none is set or it has expired.
func (c *Cache) Current() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil {
		return nil
	}
	if !c.current.ExpiresAt.IsZero() && !c.now().Before(c.current.ExpiresAt) {
		return nil
	}

	return c.current
}

// Principal returns the authorization context of the cached session.
func (c *Cache) Principal() (entity.Principal, bool) {
	s := c.Current()
	if s == nil || s.Profile == nil {
		return entity.Principal{}, false
	}

	return s.Profile.Principal(), true
}

// Clear empties the slot.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = nil
}
