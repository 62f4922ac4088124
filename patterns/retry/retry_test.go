package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ticketing/logging"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		BackoffFactor: 2,
		MaxDelay:      5 * time.Millisecond,
		Logger:        logging.NewNoopLogger(),
	}
}

func TestDo(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name         string
		failUntil    int
		attempts     int
		wantErr      error
		wantAttempts int
	}{
		{"首次成功", 0, 3, nil, 1},
		{"重试后成功", 2, 3, nil, 3},
		{"全部失败返回最后错误", 10, 3, boom, 3},
		{"次数为0按1次处理", 10, 0, boom, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Do(context.Background(), "probe", func(ctx context.Context, attempt int) error {
				calls++
				assert.Equal(t, calls, attempt)
				if attempt <= tt.failUntil {
					return boom
				}
				return nil
			}, fastConfig(tt.attempts))

			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.wantAttempts, calls)
		})
	}
}

func TestDo_Permanent(t *testing.T) {
	fatal := errors.New("bad credentials")
	calls := 0
	err := Do(context.Background(), "probe", func(ctx context.Context, attempt int) error {
		calls++
		return Permanent(fatal)
	}, fastConfig(5))

	assert.Same(t, fatal, err)
	assert.Equal(t, 1, calls)
	assert.Nil(t, Permanent(nil))
}

func TestDo_上下文取消(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(5)
	cfg.InitialDelay = time.Second
	cfg.MaxDelay = time.Second

	calls := 0
	err := Do(ctx, "probe", func(ctx context.Context, attempt int) error {
		calls++
		cancel()
		return errors.New("down")
	}, cfg)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestConfig_Backoff(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, BackoffFactor: 2, MaxDelay: 500 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, cfg.Backoff(1))
	assert.Equal(t, 200*time.Millisecond, cfg.Backoff(2))
	assert.Equal(t, 400*time.Millisecond, cfg.Backoff(3))
	assert.Equal(t, 500*time.Millisecond, cfg.Backoff(4), "超过上限时截断")

	flat := Config{InitialDelay: 10 * time.Millisecond, BackoffFactor: 0}
	assert.Equal(t, 10*time.Millisecond, flat.Backoff(3), "倍数小于1时不增长")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, 2*time.Second, cfg.MaxDelay)
}
