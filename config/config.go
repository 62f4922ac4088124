// Package config 从环境变量加载运行配置
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"ticketing/data/db"
	"ticketing/domain/repository"
	"ticketing/logging"
)

// Config 运行配置
type Config struct {
	DatabaseDriver       string `env:"DATABASE_DRIVER"         envDefault:"sqlite"`
	DatabaseDSN          string `env:"DATABASE_DSN"            envDefault:"file::memory:?cache=shared"`
	DatabaseMaxOpenConns int    `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"1"`

	// RedisAddr 为空时使用进程内价格缓存
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"       envDefault:"0"`

	PriceCacheTTL       time.Duration `env:"PRICE_CACHE_TTL"       envDefault:"1h"`
	PriceCachePrefix    string        `env:"PRICE_CACHE_PREFIX"    envDefault:"event-price-"`
	PriceAPIBaseURL     string        `env:"PRICE_API_BASE_URL"    envDefault:"http://localhost:8081"`
	PriceAPITimeout     time.Duration `env:"PRICE_API_TIMEOUT"     envDefault:"5s"`
	PriceMaxConcurrency int           `env:"PRICE_MAX_CONCURRENCY" envDefault:"0"`

	ListTimeout time.Duration `env:"LIST_TIMEOUT" envDefault:"10s"`
	MaxPerPage  int           `env:"MAX_PER_PAGE" envDefault:"100"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load 从进程环境变量加载配置
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom 从给定键值加载配置，不读取进程环境
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验取值范围
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.MaxPerPage < 1 || c.MaxPerPage > repository.MaxPerPage {
		return fmt.Errorf("MAX_PER_PAGE must be between 1 and %d, got %d", repository.MaxPerPage, c.MaxPerPage)
	}
	if c.PriceCacheTTL <= 0 {
		return fmt.Errorf("PRICE_CACHE_TTL must be positive, got %s", c.PriceCacheTTL)
	}
	if c.ListTimeout <= 0 {
		return fmt.Errorf("LIST_TIMEOUT must be positive, got %s", c.ListTimeout)
	}
	if c.PriceMaxConcurrency < 0 {
		return fmt.Errorf("PRICE_MAX_CONCURRENCY must not be negative, got %d", c.PriceMaxConcurrency)
	}
	return nil
}

// DBConfig 转换为数据库连接配置
func (c *Config) DBConfig() db.DBConfig {
	return db.DBConfig{
		Driver:       c.DatabaseDriver,
		Database:     c.DatabaseDSN,
		MaxOpenConns: c.DatabaseMaxOpenConns,
		MaxIdleConns: c.DatabaseMaxOpenConns,
	}
}

// Level 返回解析后的日志级别
func (c *Config) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
