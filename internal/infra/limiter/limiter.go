package limiter

import "context"

// ILimiter 以key為單位限流，key通常是user id或client ip
type ILimiter interface {
	// Allow 回傳error時代表後端無法判斷，由呼叫端決定放行與否
	Allow(ctx context.Context, key string) (bool, error)
	Stop()
}
