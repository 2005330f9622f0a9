package staging

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store guarded by a mutex.
type MemoryStore[T any] struct {
	mu     sync.Mutex
	key    KeyFunc[T]
	policy Policy
	now    func() time.Time

	items     []T
	present   bool
	deadline  time.Time // absolute expiry
	expiresAt time.Time // sliding expiry, never after deadline
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[T any](key KeyFunc[T], policy Policy) *MemoryStore[T] {
	return &MemoryStore[T]{key: key, policy: policy.normalized(), now: time.Now}
}

// Get returns a copy of the current batch and refreshes the sliding window.
func (s *MemoryStore[T]) Get(_ context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if !s.liveLocked(now) {
		return []T{}, nil
	}
	s.expiresAt = now.Add(s.policy.ttl(now, s.deadline))
	return append([]T(nil), s.items...), nil
}

// Merge folds batch into the current batch and restarts both expiration windows.
func (s *MemoryStore[T]) Merge(_ context.Context, batch []T) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var existing []T
	if s.liveLocked(now) {
		existing = s.items
	}

	s.items = MergeBatch(existing, batch, s.key)
	s.present = true
	s.deadline = now.Add(s.policy.Absolute)
	s.expiresAt = now.Add(s.policy.ttl(now, s.deadline))

	return append([]T(nil), s.items...), nil
}

// Clear drops the current batch.
func (s *MemoryStore[T]) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.present = false
	return nil
}

func (s *MemoryStore[T]) liveLocked(now time.Time) bool {
	if !s.present {
		return false
	}
	if !now.Before(s.expiresAt) {
		s.items = nil
		s.present = false
		return false
	}
	return true
}
