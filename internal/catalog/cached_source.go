// Package catalog 提供带缓存的目录数据源实现
package catalog

import (
	"context"
	"time"

	"github.com/MorseWayne/storefront/internal/cache"
	"github.com/MorseWayne/storefront/internal/domain"
)

// productsCacheKey 为上游商品集合的缓存键。
const productsCacheKey = "catalog:products"

// CachedSource 带缓存的目录数据源：命中时跳过上游请求，
// 未命中时回源并按 TTL 写入。
type CachedSource struct {
	source Source
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedSource 创建带缓存的目录数据源。
func NewCachedSource(source Source, c cache.Cache, ttl time.Duration) Source {
	return &CachedSource{
		source: source,
		cache:  c,
		ttl:    ttl,
	}
}

// Fetch 优先读取缓存，未命中时回源上游。
// 上游失败必须原样上抛（错误文本是状态机的失败载荷），不能被缓存吞掉。
func (s *CachedSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.cache.Get(ctx, productsCacheKey, &products); err == nil {
		return products, nil
	}

	products, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	// 缓存写入失败不影响本次结果
	_ = s.cache.Set(ctx, productsCacheKey, products, s.ttl)

	return products, nil
}

// Invalidate 清除缓存的商品集合，强制下次抓取回源。
func (s *CachedSource) Invalidate(ctx context.Context) {
	_ = s.cache.Del(ctx, productsCacheKey)
}
