package limiter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBucket(capacity int, rate float64) (*TokenBucket, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1700000000, 0)}
	tb := NewTokenBucket(&LimiterConfig{Capacity: capacity, Rate: rate, IdleTTL: time.Hour})
	tb.now = clock.Now
	return tb, clock
}

func TestTokenBucket_Capacity(t *testing.T) {
	tb, _ := newTestBucket(5, 1)
	defer tb.Stop()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := tb.Allow(ctx, "user-1")
		require.NoError(t, err)
		require.True(t, ok, "第 %d 次請求應該被允許", i+1)
	}
	ok, _ := tb.Allow(ctx, "user-1")
	require.False(t, ok)

	// 不同key互不影響
	ok, _ = tb.Allow(ctx, "user-2")
	require.True(t, ok)
}

func TestTokenBucket_Refill(t *testing.T) {
	tb, clock := newTestBucket(2, 2)
	defer tb.Stop()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _ := tb.Allow(ctx, "k")
		require.True(t, ok)
	}
	ok, _ := tb.Allow(ctx, "k")
	require.False(t, ok)

	clock.Advance(500 * time.Millisecond)
	ok, _ = tb.Allow(ctx, "k")
	require.True(t, ok)

	// 補充不超過容量
	clock.Advance(time.Hour)
	for i := 0; i < 2; i++ {
		ok, _ := tb.Allow(ctx, "k")
		require.True(t, ok)
	}
	ok, _ = tb.Allow(ctx, "k")
	require.False(t, ok)
}

func TestTokenBucket_EvictIdle(t *testing.T) {
	tb, clock := newTestBucket(1, 1)
	defer tb.Stop()

	_, _ = tb.Allow(context.Background(), "idle")
	clock.Advance(2 * time.Hour)
	tb.evictIdle()

	tb.mu.Lock()
	defer tb.mu.Unlock()
	require.Empty(t, tb.buckets)
}

func TestTokenBucket_StopTwice(t *testing.T) {
	tb := NewTokenBucket(nil)
	tb.Stop()
	tb.Stop()
}

type fakeRedis struct {
	keys   []string
	result int64
	err    error
}

func (f *fakeRedis) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	f.keys = keys
	cmd := redis.NewCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	cmd.SetVal(f.result)
	return cmd
}

func TestRsTokenBucket_Allow(t *testing.T) {
	client := &fakeRedis{result: 1}
	rb := NewRsTokenBucket(client, "shop:rate_limit", &LimiterConfig{Capacity: 3, Rate: 1})

	ok, err := rb.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"shop:rate_limit:10.0.0.1"}, client.keys)

	client.result = 0
	ok, err = rb.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRsTokenBucket_Error(t *testing.T) {
	rb := NewRsTokenBucket(&fakeRedis{err: errors.New("connection refused")}, "p", nil)
	ok, err := rb.Allow(context.Background(), "k")
	require.Error(t, err)
	require.False(t, ok)
}
