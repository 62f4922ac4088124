package pricing

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketing/logging"
)

// stubSource 按 id 返回固定价格或错误，并统计调用次数
type stubSource struct {
	mu     sync.Mutex
	prices map[string]float64
	errs   map[string]error
	delays map[string]time.Duration
	calls  map[string]int

	inflight    atomic.Int32
	maxInflight atomic.Int32
}

func newStubSource(prices map[string]float64) *stubSource {
	return &stubSource{
		prices: prices,
		errs:   map[string]error{},
		delays: map[string]time.Duration{},
		calls:  map[string]int{},
	}
}

func (s *stubSource) GetPrice(ctx context.Context, id string) (float64, error) {
	n := s.inflight.Add(1)
	defer s.inflight.Add(-1)
	for {
		cur := s.maxInflight.Load()
		if n <= cur || s.maxInflight.CompareAndSwap(cur, n) {
			break
		}
	}

	s.mu.Lock()
	s.calls[id]++
	delay := s.delays[id]
	err := s.errs[id]
	price := s.prices[id]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if err != nil {
		return 0, err
	}
	return price, nil
}

func (s *stubSource) callsFor(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

// faultyCache 读写均失败的缓存
type faultyCache struct{}

func (faultyCache) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("cache down")
}

func (faultyCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return errors.New("cache down")
}

func newTestResolver(t *testing.T, c IPriceCache, s IPriceSource) *Resolver {
	t.Helper()
	r, err := NewResolver(ResolverConfig{Cache: c, Source: s, Logger: logging.NewNoopLogger()})
	require.NoError(t, err)
	return r
}

func TestResolver_Resolve_缓存旁路(t *testing.T) {
	ctx := context.Background()
	source := newStubSource(map[string]float64{"e1": 25.5})
	c := NewMemoryPriceCache(0)
	r := newTestResolver(t, c, source)

	first, err := r.Resolve(ctx, "e1")
	require.NoError(t, err)
	second, err := r.Resolve(ctx, "e1")
	require.NoError(t, err)

	assert.Equal(t, 25.5, first)
	assert.Equal(t, 25.5, second)
	assert.Equal(t, 1, source.callsFor("e1"), "冷缓存下两次解析只应调用一次价格服务")

	cached, found, err := c.Get(ctx, "event-price-e1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "25.5", cached)
}

func TestResolver_写回使用配置的TTL与前缀(t *testing.T) {
	fake := newFakeRedis()
	cache := &RedisPriceCache{client: fake}
	r, err := NewResolver(ResolverConfig{
		Cache:     cache,
		Source:    newStubSource(map[string]float64{"e1": 10}),
		KeyPrefix: "p:",
		TTL:       30 * time.Minute,
		Logger:    logging.NewNoopLogger(),
	})
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, "10", fake.data["p:e1"])
	assert.Equal(t, 30*time.Minute, fake.ttls["p:e1"])
}

func TestResolver_默认配置(t *testing.T) {
	r, err := NewResolver(ResolverConfig{Source: newStubSource(map[string]float64{"abc": 3})})
	require.NoError(t, err)
	assert.Equal(t, DefaultTTL, r.ttl)
	assert.Equal(t, "event-price-abc", r.Key("abc"))
	assert.NotNil(t, r.logger)
	assert.IsType(t, &MemoryPriceCache{}, r.cache)

	price, err := r.Resolve(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 3.0, price)
}

func TestResolver_缺少价格服务(t *testing.T) {
	r, err := NewResolver(ResolverConfig{Cache: NewMemoryPriceCache(0)})
	assert.ErrorIs(t, err, ErrSourceRequired)
	assert.Nil(t, r)
}

func TestResolver_缓存故障不影响结果(t *testing.T) {
	source := newStubSource(map[string]float64{"e1": 7})
	r := newTestResolver(t, faultyCache{}, source)

	price, err := r.Resolve(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, float64(7), price)
	assert.Equal(t, 1, source.callsFor("e1"))
}

func TestResolver_缓存值损坏时回源(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPriceCache(0)
	require.NoError(t, c.Set(ctx, "event-price-e1", "not-a-number", time.Hour))
	source := newStubSource(map[string]float64{"e1": 3})
	r := newTestResolver(t, c, source)

	price, err := r.Resolve(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, float64(3), price)

	v, _, _ := c.Get(ctx, "event-price-e1")
	assert.Equal(t, "3", v, "回源后应覆盖损坏的缓存值")
}

func TestResolver_回源失败(t *testing.T) {
	source := newStubSource(nil)
	cause := errors.New("503 service unavailable")
	source.errs["e1"] = cause
	c := NewMemoryPriceCache(0)
	r := newTestResolver(t, c, source)

	_, err := r.Resolve(context.Background(), "e1")
	require.Error(t, err)

	var pre *PriceResolutionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, "e1", pre.EntityID)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodePriceResolution, pre.Code())

	_, found, _ := c.Get(context.Background(), "event-price-e1")
	assert.False(t, found, "失败时不应写入缓存")
}

func TestResolver_价格不合法(t *testing.T) {
	source := newStubSource(map[string]float64{"e1": -5})
	c := NewMemoryPriceCache(0)
	r := newTestResolver(t, c, source)

	_, err := r.Resolve(context.Background(), "e1")

	var pre *PriceResolutionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, "e1", pre.EntityID)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, found, _ := c.Get(context.Background(), "event-price-e1")
	assert.False(t, found, "不合法的价格不应写入缓存")
}

func TestResolver_缓存中的负数价格视为未命中(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryPriceCache(0)
	require.NoError(t, c.Set(ctx, "event-price-e1", "-3", time.Hour))
	source := newStubSource(map[string]float64{"e1": 4})
	r := newTestResolver(t, c, source)

	price, err := r.Resolve(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, float64(4), price)
	assert.Equal(t, 1, source.callsFor("e1"))
}

func TestValidPrice(t *testing.T) {
	assert.True(t, ValidPrice(0))
	assert.True(t, ValidPrice(12.5))
	assert.False(t, ValidPrice(-0.01))
	assert.False(t, ValidPrice(math.NaN()))
	assert.False(t, ValidPrice(math.Inf(1)))
}

func TestResolver_ResolveAll保持顺序(t *testing.T) {
	source := newStubSource(map[string]float64{"a": 1, "b": 2, "c": 3})
	source.delays["a"] = 30 * time.Millisecond
	source.delays["b"] = 10 * time.Millisecond
	r := newTestResolver(t, NewMemoryPriceCache(0), source)

	prices, err := r.ResolveAll(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, prices)
}

func TestResolver_ResolveAll空输入(t *testing.T) {
	r := newTestResolver(t, NewMemoryPriceCache(0), newStubSource(nil))
	prices, err := r.ResolveAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestResolver_ResolveAll单项失败整页失败(t *testing.T) {
	source := newStubSource(map[string]float64{"e1": 10, "e3": 30})
	source.errs["e2"] = errors.New("price service down")
	r := newTestResolver(t, NewMemoryPriceCache(0), source)

	prices, err := r.ResolveAll(context.Background(), []string{"e1", "e2", "e3"})
	require.Error(t, err)
	assert.Nil(t, prices, "整页失败时不返回部分结果")

	var pre *PriceResolutionError
	require.ErrorAs(t, err, &pre)
	assert.Equal(t, "e2", pre.EntityID)
}

func TestResolver_ResolveAll调用方超时(t *testing.T) {
	source := newStubSource(map[string]float64{"slow": 1})
	source.delays["slow"] = time.Second
	r := newTestResolver(t, NewMemoryPriceCache(0), source)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := r.ResolveAll(ctx, []string{"slow"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolver_ResolveAll并发上限(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	source := newStubSource(map[string]float64{})
	for _, id := range ids {
		source.prices[id] = 1
		source.delays[id] = 10 * time.Millisecond
	}
	r, err := NewResolver(ResolverConfig{
		Cache:          NewMemoryPriceCache(0),
		Source:         source,
		MaxConcurrency: 2,
		Logger:         logging.NewNoopLogger(),
	})
	require.NoError(t, err)

	_, err = r.ResolveAll(context.Background(), ids)
	require.NoError(t, err)
	assert.LessOrEqual(t, source.maxInflight.Load(), int32(2))
}
