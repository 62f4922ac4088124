// Package retry 提供有界指数退避重试
//
// 仅用于启动阶段的连通性探测（数据库、Redis）；请求路径上的写入与价格解析不重试。
package retry

import (
	"context"
	"errors"
	"math"
	"time"

	"ticketing/logging"
)

// Operation 可重试的操作，attempt 从 1 开始
type Operation func(ctx context.Context, attempt int) error

// Config 重试配置
type Config struct {
	MaxAttempts   int           // 最大尝试次数（包括首次）
	InitialDelay  time.Duration // 初始退避延迟
	BackoffFactor float64       // 退避倍数
	MaxDelay      time.Duration // 单次延迟上限

	Logger logging.Logger
}

// DefaultConfig 启动探测的默认配置：5 次，200ms 起，倍数 2，上限 2s
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   5,
		InitialDelay:  200 * time.Millisecond,
		BackoffFactor: 2,
		MaxDelay:      2 * time.Second,
	}
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent 标记不应重试的错误，Do 会立即返回其内部错误
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Backoff 返回第 attempt 次失败后的等待时长
func (c Config) Backoff(attempt int) time.Duration {
	factor := c.BackoffFactor
	if factor < 1 {
		factor = 1
	}
	delay := time.Duration(float64(c.InitialDelay) * math.Pow(factor, float64(attempt-1)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// Do 执行 op 直到成功、达到最大次数、遇到 Permanent 错误或 ctx 结束
//
// 返回最后一次失败的错误；ctx 结束时返回 ctx.Err()。
func Do(ctx context.Context, name string, op Operation, cfg Config) error {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetLogger().WithFields(logging.String("component", "retry"))
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}
		delay := cfg.Backoff(attempt)
		logger.Warn(ctx, "attempt failed, retrying",
			logging.String("operation", name),
			logging.Int("attempt", attempt),
			logging.Duration("delay", delay),
			logging.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return lastErr
}
