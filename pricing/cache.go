// Package pricing 实现活动价格的旁路缓存解析
//
// 单个标识的解析流程：
//  1. 读缓存，后端错误视为未命中并记录告警；
//  2. 命中直接返回；
//  3. 未命中时调用外部价格服务，失败即该标识解析失败；
//  4. 成功后按 TTL 写回缓存，写回失败只记录告警。
//
// 一页中的多个标识并发解析，任一失败时整页失败（见 Resolver.ResolveAll）。
package pricing

import (
	"context"
	"time"

	"ticketing/cache"
)

// IPriceCache 价格缓存，值为十进制字符串
type IPriceCache interface {
	// Get 读取缓存，未命中时 found 为 false 且 err 为 nil
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set 写入并设置有效期
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// MemoryPriceCache 进程内价格缓存
type MemoryPriceCache struct {
	store *cache.Cache[string, string]
}

// NewMemoryPriceCache 创建进程内缓存，maxSize 为 0 表示不限制
func NewMemoryPriceCache(maxSize int) *MemoryPriceCache {
	return &MemoryPriceCache{store: cache.New[string, string](cache.Config{
		Name:    "event_price",
		MaxSize: maxSize,
	})}
}

func (c *MemoryPriceCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := c.store.Get(key)
	return v, ok, nil
}

func (c *MemoryPriceCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.store.SetWithTTL(key, value, ttl)
	return nil
}

// Stats 返回底层缓存统计
func (c *MemoryPriceCache) Stats() cache.Stats { return c.store.Stats() }

var _ IPriceCache = (*MemoryPriceCache)(nil)
