// Package limiter 提供令牌桶限流实现，用于保护目录刷新接口。
package limiter

import (
	"context"
	"time"
)

// LimitResult 限流判定结果
type LimitResult struct {
	Allowed    bool          `json:"allowed"`     // 是否允许通过
	Remaining  int64         `json:"remaining"`   // 剩余令牌
	RetryAfter time.Duration `json:"retry_after"` // 建议重试时间
}

// Limiter 限流器接口
type Limiter interface {
	// Allow 检查 key 对应的一次请求是否允许通过
	Allow(ctx context.Context, key string) (*LimitResult, error)
}

// Config 令牌桶配置
type Config struct {
	Rate      int64         // 每个窗口补充的令牌数
	Burst     int64         // 桶容量
	Window    time.Duration // 补充窗口
	KeyPrefix string        // Redis key 前缀
}
