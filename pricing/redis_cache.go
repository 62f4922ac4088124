package pricing

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient 依赖的 go-redis 命令子集，便于测试替换
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	// Client 已有客户端，设置后忽略连接参数，且 Close 不会关闭它
	Client   redis.UniversalClient
	Addr     string
	Password string
	DB       int
}

// RedisPriceCache 基于 Redis 的价格缓存
type RedisPriceCache struct {
	client    redisClient
	ownClient bool
}

// NewRedisPriceCache 创建 Redis 缓存，不主动连接；连通性检查见 Ping
func NewRedisPriceCache(cfg RedisConfig) (*RedisPriceCache, error) {
	if cfg.Client != nil {
		return &RedisPriceCache{client: cfg.Client}, nil
	}
	if cfg.Addr == "" {
		return nil, errors.New("redis address not configured")
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	return &RedisPriceCache{client: client, ownClient: true}, nil
}

func (c *RedisPriceCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisPriceCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Ping 检查 Redis 连通性
func (c *RedisPriceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭自行创建的客户端
func (c *RedisPriceCache) Close() error {
	if !c.ownClient {
		return nil
	}
	return c.client.Close()
}

var _ IPriceCache = (*RedisPriceCache)(nil)
