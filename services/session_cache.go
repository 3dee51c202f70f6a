package services

import (
	"sync"
	"time"

	"github.com/UncoreDigital/secure-place-api/models"
)

// SessionCache is a process-wide cache of authenticated users keyed by
// access token, with an explicit TTL and explicit invalidation. It
// replaces the ambient browser-side user cache of the original client:
// consumers receive it as an injected dependency rather than global
// state.
type SessionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]sessionEntry
}

type sessionEntry struct {
	user      *models.AuthenticatedUser
	expiresAt time.Time
}

// NewSessionCache creates a cache whose entries live for the given TTL
func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		ttl:     ttl,
		entries: make(map[string]sessionEntry),
	}
}

// Get returns the cached user for a token, if present and unexpired
func (c *SessionCache) Get(token string) (*models.AuthenticatedUser, bool) {
	c.mu.RLock()
	entry, ok := c.entries[token]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Clear(token)
		return nil, false
	}
	return entry.user, true
}

// Set caches the user for a token. The entry expires after the cache
// TTL or the token's own expiry, whichever comes first.
func (c *SessionCache) Set(token string, user *models.AuthenticatedUser) {
	expiresAt := time.Now().Add(c.ttl)
	if !user.ExpiresAt.IsZero() && user.ExpiresAt.Before(expiresAt) {
		expiresAt = user.ExpiresAt
	}

	c.mu.Lock()
	c.entries[token] = sessionEntry{user: user, expiresAt: expiresAt}
	c.mu.Unlock()
}

// Clear removes a single token's entry. Called on sign-out.
func (c *SessionCache) Clear(token string) {
	c.mu.Lock()
	delete(c.entries, token)
	c.mu.Unlock()
}

// Expire drops all expired entries and reports how many were removed
func (c *SessionCache) Expire() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for token, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of cached entries, expired or not
func (c *SessionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
