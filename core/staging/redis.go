package staging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "product-catalog:staging:"
	fieldItems     = "items"
	fieldDeadline  = "expires_at"
	maxTxAttempts  = 5
)

// RedisKey returns the redis key holding the named batch.
func RedisKey(name string) string {
	return redisKeyPrefix + name
}

// NewRedisClient creates a redis client from the configuration.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisStore is a Store shared through redis. The batch is a hash with the JSON
// encoded items and the absolute deadline in unix milliseconds; the key TTL carries
// the sliding window.
type RedisStore[T any] struct {
	rdb    redis.UniversalClient
	key    string
	keyFn  KeyFunc[T]
	policy Policy
	now    func() time.Time
}

// NewRedisStore creates a store for the named batch.
func NewRedisStore[T any](rdb redis.UniversalClient, name string, key KeyFunc[T], policy Policy) *RedisStore[T] {
	return &RedisStore[T]{
		rdb:    rdb,
		key:    RedisKey(name),
		keyFn:  key,
		policy: policy.normalized(),
		now:    time.Now,
	}
}

// Get returns the current batch and refreshes the sliding window. The read and the
// TTL update run under WATCH so a concurrent merge is never shortened.
func (s *RedisStore[T]) Get(ctx context.Context) ([]T, error) {
	var items []T

	txf := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, s.key).Result()
		if err != nil {
			return err
		}

		now := s.now()
		stored, deadline, ok, err := s.decode(fields)
		if err != nil {
			return err
		}
		if !ok {
			items = []T{}
			return nil
		}

		ttl := s.policy.ttl(now, deadline)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if ttl == 0 {
				pipe.Del(ctx, s.key)
			} else {
				pipe.Expire(ctx, s.key, ttl)
			}
			return nil
		})
		if err != nil {
			return err
		}

		if ttl == 0 {
			items = []T{}
		} else {
			items = stored
		}
		return nil
	}

	if err := s.watch(ctx, txf); err != nil {
		return nil, fmt.Errorf("failed to read staging batch: %w", err)
	}
	return items, nil
}

// Merge folds batch into the stored batch inside an optimistic transaction.
func (s *RedisStore[T]) Merge(ctx context.Context, batch []T) ([]T, error) {
	var merged []T

	txf := func(tx *redis.Tx) error {
		fields, err := tx.HGetAll(ctx, s.key).Result()
		if err != nil {
			return err
		}

		now := s.now()
		existing, deadline, ok, err := s.decode(fields)
		if err != nil {
			return err
		}
		if !ok || s.policy.ttl(now, deadline) == 0 {
			existing = nil
		}

		merged = MergeBatch(existing, batch, s.keyFn)
		data, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("failed to encode staging batch: %w", err)
		}

		newDeadline := now.Add(s.policy.Absolute)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, s.key, fieldItems, data, fieldDeadline, newDeadline.UnixMilli())
			pipe.Expire(ctx, s.key, s.policy.ttl(now, newDeadline))
			return nil
		})
		return err
	}

	if err := s.watch(ctx, txf); err != nil {
		return nil, fmt.Errorf("failed to merge staging batch: %w", err)
	}
	return merged, nil
}

// watch runs txf under WATCH on the batch key, retrying when a concurrent writer
// invalidates the transaction.
func (s *RedisStore[T]) watch(ctx context.Context, txf func(tx *redis.Tx) error) error {
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.rdb.Watch(ctx, txf, s.key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}

// Clear drops the stored batch.
func (s *RedisStore[T]) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear staging batch: %w", err)
	}
	return nil
}

func (s *RedisStore[T]) decode(fields map[string]string) ([]T, time.Time, bool, error) {
	raw, ok := fields[fieldItems]
	if !ok {
		return nil, time.Time{}, false, nil
	}

	ms, err := strconv.ParseInt(fields[fieldDeadline], 10, 64)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("invalid staging deadline %q", fields[fieldDeadline])
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("failed to decode staging batch: %w", err)
	}
	return items, time.UnixMilli(ms), true, nil
}
