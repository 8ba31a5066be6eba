package student

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const rosterKey = "carometro:roster"

// RosterCache keeps the full roster in Redis so the gallery does not hit
// Postgres on every navigation. Any student write invalidates it.
type RosterCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRosterCache creates a cache with the given TTL.
func NewRosterCache(client *redis.Client, ttl time.Duration) *RosterCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RosterCache{client: client, ttl: ttl}
}

// Get returns the cached roster and whether it was present.
func (c *RosterCache) Get(ctx context.Context) ([]Student, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, rosterKey).Bytes()
	if err != nil {
		return nil, false
	}
	var students []Student
	if err := json.Unmarshal(payload, &students); err != nil {
		return nil, false
	}
	return students, true
}

// Set stores the roster. Failures are ignored; the cache is advisory.
func (c *RosterCache) Set(ctx context.Context, students []Student) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(students)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, rosterKey, payload, c.ttl).Err()
}

// Invalidate drops the cached roster.
func (c *RosterCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, rosterKey).Err()
}
