package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Cache used when no Redis address is configured,
// and by tests. Expired entries are dropped lazily on Get; Janitor can be
// run in a goroutine to reclaim entries nobody reads again.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// Now is the clock used for expiry decisions. Tests override it to
	// step past a TTL without sleeping.
	Now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		Now:     time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", ErrMiss
	}

	if !c.Now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", ErrMiss
	}

	return entry.value, nil
}

func (c *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{value: value, expiresAt: c.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Janitor purges expired entries every interval until ctx is cancelled.
func (c *Memory) Janitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.purge()
		}
	}
}

func (c *Memory) purge() {
	now := c.Now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
