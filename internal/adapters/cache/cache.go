package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a best-effort read-through byte cache. Implementations must treat
// every failure as a miss; callers never see cache errors.
type Cache interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// TimeBucket floors now to the ttl interval, in nanoseconds. Keys built from
// the bucket expire naturally when the clock rolls into the next bucket, so no
// eviction logic is needed beyond the ttl itself.
func TimeBucket(now time.Time, ttl time.Duration) int64 {
	if ttl <= 0 {
		return now.UnixNano()
	}
	return now.UnixNano() / int64(ttl) * int64(ttl)
}

// Key builds an opaque cache key as {purpose}:{symbol}:{timeBucket}
func Key(purpose, symbol string, bucket int64) string {
	return fmt.Sprintf("%s:%s:%d", purpose, symbol, bucket)
}
