package limiter

import (
	"context"
	"math"
	"sync"
	"time"
)

var _ ILimiter = (*TokenBucket)(nil)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

/*
單機版token bucket，沒有redis時使用
每個key一個bucket，取用時才補充token
請使用 defer 呼叫 Stop()
*/
type TokenBucket struct {
	LimiterConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
	cancel  chan struct{}
	once    sync.Once
}

func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	cf := GetDefaultLimiterConfig()
	if config != nil {
		cf = config.normalize()
	}
	t := &TokenBucket{
		LimiterConfig: cf,
		buckets:       make(map[string]*bucket),
		now:           time.Now,
		cancel:        make(chan struct{}),
	}
	go t.background()
	return t
}

func (t *TokenBucket) Allow(_ context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.Capacity), lastRefill: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed > 0 {
		b.tokens = math.Min(float64(t.Capacity), b.tokens+elapsed*t.Rate)
		b.lastRefill = now
	}

	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// 清掉閒置的bucket，避免key無限成長
func (t *TokenBucket) background() {
	ticker := time.NewTicker(t.IdleTTL)
	defer ticker.Stop()

	for {
		select {
		case <-t.cancel:
			return
		case <-ticker.C:
			t.evictIdle()
		}
	}
}

func (t *TokenBucket) evictIdle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for key, b := range t.buckets {
		if now.Sub(b.lastRefill) > t.IdleTTL {
			delete(t.buckets, key)
		}
	}
}

func (t *TokenBucket) Stop() {
	t.once.Do(func() {
		close(t.cancel)
	})
}
