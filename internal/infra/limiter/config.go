package limiter

import "time"

type LimiterConfig struct {
	Capacity int     // bucket最大token數
	Rate     float64 // 每秒補充token數
	// IdleTTL 閒置超過此時間的bucket會被回收
	IdleTTL time.Duration
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Capacity: 100,
		Rate:     20,
		IdleTTL:  time.Minute,
	}
}

// normalize 非法數值改用預設值
func (c LimiterConfig) normalize() LimiterConfig {
	def := GetDefaultLimiterConfig()
	if c.Capacity <= 0 {
		c.Capacity = def.Capacity
	}
	if c.Rate <= 0 {
		c.Rate = def.Rate
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = def.IdleTTL
	}
	return c
}
