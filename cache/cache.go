// Package cache 提供进程内的泛型 LRU 缓存
//
// 过期采用固定窗口：条目在写入时确定过期时间，读取不会延长有效期。
// 价格等外部数据写回缓存后必须在 TTL 到期时重新获取，不能因频繁读取而一直有效。
package cache

import (
	"container/list"
	"fmt"
	"sync"
	"time"
)

// Cache 并发安全的泛型 LRU 缓存
//
// 使用示例：
//
//	prices := cache.New[string, string](cache.Config{
//	    Name:    "event_price",
//	    MaxSize: 10000,
//	    TTL:     time.Hour,
//	})
//	prices.Set("event-price-1", "42.5")
//	if v, ok := prices.Get("event-price-1"); ok {
//	    // ...
//	}
type Cache[K comparable, V any] struct {
	name   string
	config Config
	now    func() time.Time

	items   map[K]*entry[K, V]
	lruList *list.List // 最近使用的在前

	mu    sync.Mutex
	stats Stats
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time // 零值表示永不过期
	element   *list.Element
}

// Config 缓存配置
type Config struct {
	// Name 缓存名称，用于日志与 String()
	Name string

	// MaxSize 最大条目数，0 表示不限制
	MaxSize int

	// TTL 默认有效期，从写入时刻起算；0 表示永不过期
	TTL time.Duration

	// OnEvict 条目被驱逐、过期或删除时回调（持锁调用，不要在回调中访问缓存）
	OnEvict func(key, value any)

	// Now 时钟，测试时可替换
	Now func() time.Time
}

// Stats 缓存统计
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64 // 容量驱逐
	Expires   int64 // 过期删除
	Size      int
}

// New 创建缓存
func New[K comparable, V any](config Config) *Cache[K, V] {
	if config.Name == "" {
		config.Name = "unnamed"
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Cache[K, V]{
		name:    config.Name,
		config:  config,
		now:     now,
		items:   make(map[K]*entry[K, V]),
		lruList: list.New(),
	}
}

// Get 读取未过期的值，命中时只刷新 LRU 位置，不延长有效期
func (c *Cache[K, V]) Get(key K) (value V, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return value, false
	}
	if c.expired(e) {
		c.remove(e)
		c.stats.Misses++
		c.stats.Expires++
		return value, false
	}

	c.lruList.MoveToFront(e.element)
	c.stats.Hits++
	return e.value, true
}

// Set 使用默认 TTL 写入
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetWithTTL(key, value, c.config.TTL)
}

// SetWithTTL 写入并从当前时刻重新计算过期时间，ttl <= 0 表示永不过期
func (c *Cache[K, V]) SetWithTTL(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.lruList.MoveToFront(e.element)
		return
	}

	if c.config.MaxSize > 0 && len(c.items) >= c.config.MaxSize {
		c.evictOldest()
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	e.element = c.lruList.PushFront(e)
	c.items[key] = e
	c.stats.Size = len(c.items)
}

// Delete 删除条目，返回是否存在
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.remove(e)
	return true
}

// Clear 清空缓存
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.OnEvict != nil {
		for _, e := range c.items {
			c.config.OnEvict(e.key, e.value)
		}
	}
	c.items = make(map[K]*entry[K, V])
	c.lruList = list.New()
	c.stats.Size = 0
}

// CleanExpired 删除全部过期条目，返回删除数量
func (c *Cache[K, V]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	for _, e := range c.items {
		if c.expired(e) {
			c.remove(e)
			cleaned++
		}
	}
	c.stats.Expires += int64(cleaned)
	return cleaned
}

// Stats 返回统计副本
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = len(c.items)
	return s
}

// Size 当前条目数（含尚未清理的过期条目）
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// HitRate 命中率
func (c *Cache[K, V]) HitRate() float64 {
	s := c.Stats()
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

func (c *Cache[K, V]) expired(e *entry[K, V]) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

func (c *Cache[K, V]) evictOldest() {
	oldest := c.lruList.Back()
	if oldest == nil {
		return
	}
	c.remove(oldest.Value.(*entry[K, V]))
	c.stats.Evictions++
}

func (c *Cache[K, V]) remove(e *entry[K, V]) {
	if c.config.OnEvict != nil {
		c.config.OnEvict(e.key, e.value)
	}
	c.lruList.Remove(e.element)
	delete(c.items, e.key)
	c.stats.Size = len(c.items)
}

func (c *Cache[K, V]) String() string {
	s := c.Stats()
	return fmt.Sprintf("Cache[%s]: size=%d/%d, hits=%d, misses=%d, hit_rate=%.2f%%, evictions=%d, expires=%d",
		c.name, s.Size, c.config.MaxSize, s.Hits, s.Misses, c.HitRate()*100, s.Evictions, s.Expires)
}
