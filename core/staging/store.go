package staging

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store holds a single deduplicated batch of staged items.
type Store[T any] interface {
	// Get returns the current batch, or an empty slice if absent or expired.
	Get(ctx context.Context) ([]T, error)
	// Merge folds batch into the current one and returns the stored result.
	Merge(ctx context.Context, batch []T) ([]T, error)
	// Clear drops the current batch.
	Clear(ctx context.Context) error
}

// KeyFunc extracts the deduplication key of an item.
type KeyFunc[T any] func(T) string

// Policy is the compound expiration policy of a batch.
type Policy struct {
	Sliding  time.Duration
	Absolute time.Duration
}

// DefaultPolicy is 6 days sliding, 30 days absolute.
var DefaultPolicy = Policy{Sliding: 6 * 24 * time.Hour, Absolute: 30 * 24 * time.Hour}

// normalized fills unset windows: no absolute means the default absolute, no sliding
// means the absolute window alone applies.
func (p Policy) normalized() Policy {
	if p.Absolute <= 0 {
		p.Absolute = DefaultPolicy.Absolute
	}
	if p.Sliding <= 0 || p.Sliding > p.Absolute {
		p.Sliding = p.Absolute
	}
	return p
}

// ttl returns how long an entry may live from now given its absolute deadline.
// Zero means the entry is already expired.
func (p Policy) ttl(now, deadline time.Time) time.Duration {
	remaining := deadline.Sub(now)
	if remaining <= 0 {
		return 0
	}
	if p.Sliding < remaining {
		return p.Sliding
	}
	return remaining
}

// MergeBatch appends batch to existing and deduplicates by key.
// The last value for a key wins; the key keeps the position of its first appearance.
func MergeBatch[T any](existing, batch []T, key KeyFunc[T]) []T {
	out := make([]T, 0, len(existing)+len(batch))
	index := make(map[string]int, len(existing)+len(batch))

	for _, items := range [][]T{existing, batch} {
		for _, item := range items {
			k := key(item)
			if i, ok := index[k]; ok {
				out[i] = item
				continue
			}
			index[k] = len(out)
			out = append(out, item)
		}
	}
	return out
}

// NewStore builds the store selected by cfg. rdb is required by the redis driver only.
func NewStore[T any](cfg Config, rdb redis.UniversalClient, key KeyFunc[T]) (Store[T], error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemoryStore(key, cfg.Policy()), nil
	case DriverRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis staging driver requires a redis client")
		}
		return NewRedisStore(rdb, cfg.Key, key, cfg.Policy()), nil
	default:
		return nil, fmt.Errorf("unsupported staging driver: %s", cfg.Driver)
	}
}
