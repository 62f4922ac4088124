package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ticketing/logging"
)

const (
	// DefaultTTL 价格缓存有效期
	DefaultTTL = time.Hour
	// DefaultKeyPrefix 缓存键前缀，完整键为 {prefix}{entityID}
	DefaultKeyPrefix = "event-price-"
)

var (
	// ErrSourceRequired 未配置价格服务
	ErrSourceRequired = errors.New("pricing: price source is required")

	// ErrInvalidPrice 价格为负数或非有限值
	ErrInvalidPrice = errors.New("invalid price")
)

// ValidPrice 价格须为非负有限值
func ValidPrice(p float64) bool {
	return p >= 0 && !math.IsInf(p, 1)
}

// ResolverConfig 解析器配置
type ResolverConfig struct {
	// Cache 为空时使用不限容量的进程内缓存
	Cache IPriceCache

	Source IPriceSource

	TTL       time.Duration
	KeyPrefix string

	// MaxConcurrency 同时进行的解析数上限，0 表示不限制
	MaxConcurrency int

	Logger logging.Logger
}

// Resolver 旁路缓存价格解析器
type Resolver struct {
	cache          IPriceCache
	source         IPriceSource
	ttl            time.Duration
	keyPrefix      string
	maxConcurrency int
	logger         logging.Logger
}

// NewResolver 创建解析器，Source 必填
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Source == nil {
		return nil, ErrSourceRequired
	}
	if cfg.Cache == nil {
		cfg.Cache = NewMemoryPriceCache(0)
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.GetLogger().WithFields(logging.String("component", "pricing.resolver"))
	}
	return &Resolver{
		cache:          cfg.Cache,
		source:         cfg.Source,
		ttl:            cfg.TTL,
		keyPrefix:      cfg.KeyPrefix,
		maxConcurrency: cfg.MaxConcurrency,
		logger:         cfg.Logger,
	}, nil
}

// Key 返回实体的缓存键
func (r *Resolver) Key(entityID string) string {
	return r.keyPrefix + entityID
}

// Resolve 解析单个实体的价格
//
// 缓存读写失败不影响结果；外部服务失败或返回负数价格时返回 PriceResolutionError，且不写入缓存。
func (r *Resolver) Resolve(ctx context.Context, entityID string) (float64, error) {
	key := r.Key(entityID)

	if price, ok := r.lookup(ctx, key); ok {
		return price, nil
	}

	r.logger.Info(ctx, "price cache miss, fetching from price service", logging.String("entity_id", entityID))
	price, err := r.source.GetPrice(ctx, entityID)
	if err != nil {
		r.logger.Error(ctx, "price service failed",
			logging.String("entity_id", entityID),
			logging.Error(err))
		return 0, &PriceResolutionError{EntityID: entityID, Cause: err}
	}
	if !ValidPrice(price) {
		r.logger.Error(ctx, "price service returned invalid price",
			logging.String("entity_id", entityID),
			logging.Float64("price", price))
		return 0, &PriceResolutionError{EntityID: entityID, Cause: fmt.Errorf("%w: %v", ErrInvalidPrice, price)}
	}

	value := strconv.FormatFloat(price, 'f', -1, 64)
	if err := r.cache.Set(ctx, key, value, r.ttl); err != nil {
		r.logger.Warn(ctx, "price cache write failed",
			logging.String("key", key),
			logging.Error(err))
	}
	return price, nil
}

func (r *Resolver) lookup(ctx context.Context, key string) (float64, bool) {
	value, found, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn(ctx, "price cache read failed, treating as miss",
			logging.String("key", key),
			logging.Error(err))
		return 0, false
	}
	if !found {
		return 0, false
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil || !ValidPrice(price) {
		r.logger.Warn(ctx, "malformed cached price, treating as miss",
			logging.String("key", key),
			logging.String("value", value))
		return 0, false
	}
	r.logger.Debug(ctx, "price cache hit", logging.String("key", key))
	return price, true
}

// ResolveAll 并发解析一页实体的价格，结果顺序与 entityIDs 一致
//
// 任一实体失败时取消其余解析并返回该错误，不返回部分结果。
func (r *Resolver) ResolveAll(ctx context.Context, entityIDs []string) ([]float64, error) {
	prices := make([]float64, len(entityIDs))
	if len(entityIDs) == 0 {
		return prices, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if r.maxConcurrency > 0 {
		g.SetLimit(r.maxConcurrency)
	}
	for i, id := range entityIDs {
		g.Go(func() error {
			price, err := r.Resolve(gctx, id)
			if err != nil {
				return err
			}
			prices[i] = price
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prices, nil
}
