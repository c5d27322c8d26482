package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hirehub/backend/internal/domain/hiring"
	"github.com/redis/go-redis/v9"
)

// populatedMarker is a sentinel member added to every populated holdings set.
// It makes "populated but empty" distinguishable from "never populated":
// without it a user with zero hires would look like a cache miss on every
// read and hit the store each time.
const populatedMarker = "__populated__"

// RedisHoldingsCache implements hiring.HoldingsCache on a Redis set per user.
// This is suitable for distributed deployments where multiple instances
// serve hire requests for the same user.
type RedisHoldingsCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisHoldingsCache creates a holdings cache on an existing Redis client
func NewRedisHoldingsCache(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisHoldingsCache {
	if keyPrefix == "" {
		keyPrefix = "hirehub"
	}
	return &RedisHoldingsCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (c *RedisHoldingsCache) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:holdings:%s", c.keyPrefix, userID)
}

// Get returns the cached employee IDs for a user. A missing key is a miss;
// a set holding only the populated marker is a hit with zero holdings.
func (c *RedisHoldingsCache) Get(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, bool, error) {
	members, err := c.client.SMembers(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read holdings: %w", err)
	}
	if len(members) == 0 {
		return nil, false, nil
	}

	ids := make([]uuid.UUID, 0, len(members)-1)
	for _, member := range members {
		if member == populatedMarker {
			continue
		}
		id, err := uuid.Parse(member)
		if err != nil {
			// Corrupt entry: treat the whole set as untrustworthy
			// and let the caller rebuild from the store.
			_ = c.client.Del(ctx, c.key(userID)).Err()
			return nil, false, nil
		}
		ids = append(ids, id)
	}
	return ids, true, nil
}

// Populate replaces the user's cached holdings after an authoritative store read
func (c *RedisHoldingsCache) Populate(ctx context.Context, userID uuid.UUID, entryIDs []uuid.UUID) error {
	key := c.key(userID)
	members := make([]interface{}, 0, len(entryIDs)+1)
	members = append(members, populatedMarker)
	for _, id := range entryIDs {
		members = append(members, id.String())
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to populate holdings: %w", err)
	}
	return nil
}

// MarkHired appends one employee to the user's cached holdings. If the set
// is not populated this is a no-op: adding to an absent set would fabricate
// a populated-looking entry missing the user's other hires.
func (c *RedisHoldingsCache) MarkHired(ctx context.Context, userID, employeeID uuid.UUID) error {
	key := c.key(userID)
	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check holdings: %w", err)
	}
	if exists == 0 {
		return nil
	}

	pipe := c.client.TxPipeline()
	pipe.SAdd(ctx, key, employeeID.String())
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark hire: %w", err)
	}
	return nil
}

// Invalidate drops the user's cached holdings
func (c *RedisHoldingsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate holdings: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisHoldingsCache) Close() error {
	return c.client.Close()
}

// Ensure RedisHoldingsCache implements HoldingsCache
var _ hiring.HoldingsCache = (*RedisHoldingsCache)(nil)
