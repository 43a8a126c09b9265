package limiter

import (
	"context"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ ILimiter = (*RsTokenBucket)(nil)

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// 多個instance共用同一個bucket
const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1])
local lastRefill = tonumber(bucket[2])

if tokens == nil then
	tokens = capacity
	lastRefill = now
end

local elapsed = math.max(0, now - lastRefill) / 1000000000
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill', now)
redis.call('EXPIRE', key, ttl)
return allowed
`

type RsTokenBucket struct {
	LimiterConfig
	client RedisClient
	prefix string
}

func NewRsTokenBucket(client RedisClient, prefix string, config *LimiterConfig) *RsTokenBucket {
	cf := GetDefaultLimiterConfig()
	if config != nil {
		cf = config.normalize()
	}
	return &RsTokenBucket{
		LimiterConfig: cf,
		client:        client,
		prefix:        prefix,
	}
}

func (r *RsTokenBucket) Allow(ctx context.Context, key string) (bool, error) {
	ttl := int64(math.Ceil(r.IdleTTL.Seconds()))
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{r.prefix + ":" + key},
		r.Capacity,
		r.Rate,
		time.Now().UnixNano(),
		ttl,
	).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

// Stop redis client由外部管理
func (r *RsTokenBucket) Stop() {}
