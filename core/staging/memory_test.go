package staging

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(p Policy) (*MemoryStore[item], *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(itemKey, p)
	s.now = c.now
	return s, c
}

func TestMemoryStore_Merge(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(DefaultPolicy)

	_, err := s.Merge(ctx, []item{{"A", 10}})
	require.NoError(t, err)

	merged, err := s.Merge(ctx, []item{{"A", 12}, {"B", 5}})
	require.NoError(t, err)
	assert.Equal(t, []item{{"A", 12}, {"B", 5}}, merged)

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, merged, got)
}

func TestMemoryStore_GetEmpty(t *testing.T) {
	s, _ := newTestStore(DefaultPolicy)

	got, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMemoryStore_Expiration(t *testing.T) {
	ctx := context.Background()
	p := Policy{Sliding: time.Hour, Absolute: 3 * time.Hour}

	t.Run("expires after sliding window without reads", func(t *testing.T) {
		s, c := newTestStore(p)
		_, err := s.Merge(ctx, []item{{"A", 1}})
		require.NoError(t, err)

		c.advance(time.Hour)
		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("reads extend the sliding window", func(t *testing.T) {
		s, c := newTestStore(p)
		_, err := s.Merge(ctx, []item{{"A", 1}})
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			c.advance(50 * time.Minute)
			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		}
	})

	t.Run("absolute window caps sliding refresh", func(t *testing.T) {
		s, c := newTestStore(p)
		_, err := s.Merge(ctx, []item{{"A", 1}})
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			c.advance(55 * time.Minute)
			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 1)
		}

		c.advance(20 * time.Minute)
		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("merge after expiry starts fresh", func(t *testing.T) {
		s, c := newTestStore(p)
		_, err := s.Merge(ctx, []item{{"A", 1}})
		require.NoError(t, err)

		c.advance(2 * time.Hour)
		merged, err := s.Merge(ctx, []item{{"B", 2}})
		require.NoError(t, err)
		assert.Equal(t, []item{{"B", 2}}, merged)
	})

	t.Run("merge restarts both windows", func(t *testing.T) {
		s, c := newTestStore(p)
		_, err := s.Merge(ctx, []item{{"A", 1}})
		require.NoError(t, err)

		c.advance(50 * time.Minute)
		_, err = s.Merge(ctx, []item{{"B", 2}})
		require.NoError(t, err)

		c.advance(50 * time.Minute)
		got, err := s.Get(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(DefaultPolicy)

	_, err := s.Merge(ctx, []item{{"A", 1}})
	require.NoError(t, err)
	require.NoError(t, s.Clear(ctx))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Clear(ctx))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(DefaultPolicy)

	merged, err := s.Merge(ctx, []item{{"A", 1}})
	require.NoError(t, err)
	merged[0].Price = 99

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].Price)
}

func TestMemoryStore_ConcurrentMerges(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(itemKey, DefaultPolicy)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Merge(ctx, []item{{fmt.Sprintf("S%02d", i), i}, {"shared", i}})
		}(i)
	}
	wg.Wait()

	got, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 51)
}
