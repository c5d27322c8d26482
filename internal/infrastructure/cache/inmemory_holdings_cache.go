package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/hiring"
)

// holdingsEntry is one user's cached holdings with its expiry
type holdingsEntry struct {
	ids       map[uuid.UUID]struct{}
	expiresAt time.Time
}

// InMemoryHoldingsCache implements hiring.HoldingsCache with a process-local
// map. This is suitable for single-instance deployments and testing.
// WARNING: in-memory state is not shared across process instances, so a hire
// confirmed on one instance stays invisible to another until its entry
// expires or is rebuilt.
type InMemoryHoldingsCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*holdingsEntry
	ttl     time.Duration
}

// NewInMemoryHoldingsCache creates a new in-memory holdings cache
func NewInMemoryHoldingsCache(ttl time.Duration) *InMemoryHoldingsCache {
	return &InMemoryHoldingsCache{
		entries: make(map[uuid.UUID]*holdingsEntry),
		ttl:     ttl,
	}
}

// Get returns the cached employee IDs for a user. Expired entries are
// dropped lazily on read.
func (c *InMemoryHoldingsCache) Get(_ context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, userID)
		return nil, false, nil
	}

	ids := make([]uuid.UUID, 0, len(entry.ids))
	for id := range entry.ids {
		ids = append(ids, id)
	}
	return ids, true, nil
}

// Populate replaces the user's cached holdings
func (c *InMemoryHoldingsCache) Populate(_ context.Context, userID uuid.UUID, entryIDs []uuid.UUID) error {
	ids := make(map[uuid.UUID]struct{}, len(entryIDs))
	for _, id := range entryIDs {
		ids[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = &holdingsEntry{
		ids:       ids,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// MarkHired appends one employee to the user's cached holdings.
// A no-op when the user has no populated entry.
func (c *InMemoryHoldingsCache) MarkHired(_ context.Context, userID, employeeID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}
	entry.ids[employeeID] = struct{}{}
	entry.expiresAt = time.Now().Add(c.ttl)
	return nil
}

// Invalidate drops the user's cached holdings
func (c *InMemoryHoldingsCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

// Size returns the number of cached users (for testing/monitoring)
func (c *InMemoryHoldingsCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryHoldingsCache implements HoldingsCache
var _ hiring.HoldingsCache = (*InMemoryHoldingsCache)(nil)
