package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis carries the shared client behind the roster cache and the audit
// queue.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects with the configured timeouts. Operation timeouts stay
// short: the roster cache is advisory, so a stalled Redis must not hold up
// request handling.
func NewRedis(addr string, dialTimeout, opTimeout time.Duration) *Redis {
	if dialTimeout <= 0 {
		dialTimeout = 2 * time.Second
	}
	if opTimeout <= 0 {
		opTimeout = time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  dialTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})
	return &Redis{Client: client}
}

// Healthy reports whether Redis answers a ping. The API keeps serving from
// Postgres when it does not.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}
