// Package limiter provides a redis-backed keyed attempt counter. The
// counter survives restarts and is shared between instances, unlike a
// process-local map.
package limiter

import (
	"context"
	"time"

	"designhub_backend/platform/apperr"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "attempts:"

// Counter tracks failed attempts per identifier within a rolling
// window.
type Counter struct {
	client redis.Cmdable
	window time.Duration
}

// New creates a counter. window bounds how long attempts are held
// against an identifier.
func New(client redis.Cmdable, window time.Duration) *Counter {
	return &Counter{client: client, window: window}
}

// Increment records one attempt and returns the running total. The
// window starts at the first attempt.
func (c *Counter) Increment(ctx context.Context, identifier string) (int64, error) {
	key := keyPrefix + identifier

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, c.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "increment attempt counter failed", err)
	}
	return incr.Val(), nil
}

// Count returns the current total without recording an attempt.
func (c *Counter) Count(ctx context.Context, identifier string) (int64, error) {
	count, err := c.client.Get(ctx, keyPrefix+identifier).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, apperr.Wrap(apperr.KindInternal, "read attempt counter failed", err)
	}
	return count, nil
}

// Reset clears the counter, typically after a successful verification.
func (c *Counter) Reset(ctx context.Context, identifier string) error {
	if err := c.client.Del(ctx, keyPrefix+identifier).Err(); err != nil {
		return apperr.Wrap(apperr.KindInternal, "reset attempt counter failed", err)
	}
	return nil
}
