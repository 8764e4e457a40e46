// Package limiter 内存版令牌桶实现（无Redis部署时使用）
package limiter

import (
	"context"
	"math"
	"sync"
	"time"
)

// MemoryBucketLimiter 单进程内存令牌桶，按 key 独立计桶。
type MemoryBucketLimiter struct {
	mu      sync.Mutex
	config  *Config
	buckets map[string]*memoryBucket
	now     func() time.Time // 可注入时钟，便于测试
}

type memoryBucket struct {
	tokens     float64
	lastRefill time.Time
}

// NewMemoryBucketLimiter 创建内存令牌桶限流器
func NewMemoryBucketLimiter(config *Config) *MemoryBucketLimiter {
	return &MemoryBucketLimiter{
		config:  config,
		buckets: make(map[string]*memoryBucket),
		now:     time.Now,
	}
}

// Allow 检查是否允许请求通过
func (m *MemoryBucketLimiter) Allow(ctx context.Context, key string) (*LimitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	b, ok := m.buckets[key]
	if !ok {
		b = &memoryBucket{tokens: float64(m.config.Burst), lastRefill: now}
		m.buckets[key] = b
	}

	// 按经过时间补充令牌
	elapsed := now.Sub(b.lastRefill)
	if elapsed > 0 {
		refill := elapsed.Seconds() * float64(m.config.Rate) / m.config.Window.Seconds()
		b.tokens = math.Min(float64(m.config.Burst), b.tokens+refill)
		b.lastRefill = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return &LimitResult{
			Allowed:   true,
			Remaining: int64(b.tokens),
		}, nil
	}

	needed := 1 - b.tokens
	retry := time.Duration(math.Ceil(needed*m.config.Window.Seconds()/float64(m.config.Rate))) * time.Second
	return &LimitResult{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: retry,
	}, nil
}
