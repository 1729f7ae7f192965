package carrier

import (
	"context"
	"sync"
	"time"
)

// fetchFunc obtains a fresh bearer token and its expiry.
type fetchFunc func(ctx context.Context) (token string, expiry time.Time, err error)

// TokenCache keeps one bearer token alive until shortly before its expiry.
// It is an explicit object rather than package state so callers own its
// lifetime and tests can construct their own.
type TokenCache struct {
	mu     sync.Mutex
	token  string
	expiry time.Time
	fetch  fetchFunc

	// refreshed early so an almost-expired token is never sent
	skew time.Duration
}

func NewTokenCache(fetch fetchFunc) *TokenCache {
	return &TokenCache{fetch: fetch, skew: 30 * time.Second}
}

// Token returns the cached token, fetching a new one when missing or expired.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiry.Add(-c.skew)) {
		return c.token, nil
	}

	token, expiry, err := c.fetch(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiry = expiry
	return token, nil
}

// Invalidate drops the cached token, forcing a refetch on next use.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.expiry = time.Time{}
}
