// Package retry 提供发布流程使用的重试机制
package retry

import (
	"context"
	"math"
	"time"
)

// Strategy 重试延迟策略
type Strategy string

const (
	// ExponentialBackoff 指数退避策略
	ExponentialBackoff Strategy = "exponential_backoff"
	// FixedInterval 固定间隔策略
	FixedInterval Strategy = "fixed_interval"
)

// Condition 重试条件函数，返回 false 表示该错误不可恢复
type Condition func(error) bool

// Callback 每次重试前回调
type Callback func(attempt int, delay time.Duration, err error)

// Config 重试配置
// MaxAttempts 为总尝试次数：持续失败的操作恰好执行 MaxAttempts 次，
// 返回的错误为最后一次尝试产生的错误
type Config struct {
	MaxAttempts   int           // 总尝试次数
	InitialDelay  time.Duration // 初始延迟
	MaxDelay      time.Duration // 延迟上限
	BackoffFactor float64       // 退避因子（指数退避时生效）
	Strategy      Strategy
	Condition     Condition // 为 nil 时所有错误均可重试
	OnRetry       Callback
}

// DefaultConfig 默认重试配置
// 预算刻意较小：主要失败模式是页面渲染慢而非永久故障
func DefaultConfig() *Config {
	return &Config{
		MaxAttempts:   3,
		InitialDelay:  2 * time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		Strategy:      ExponentialBackoff,
	}
}

// Do 执行带重试的操作
func Do(ctx context.Context, config *Config, operation func() error) error {
	if config == nil {
		config = DefaultConfig()
	}

	var lastErr error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := calculateDelay(config, attempt)
			if config.OnRetry != nil {
				config.OnRetry(attempt, delay, lastErr)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if config.Condition != nil && !config.Condition(err) {
			break
		}
	}

	return lastErr
}

// DoWithResult 执行带重试的操作并返回结果
func DoWithResult[T any](ctx context.Context, config *Config, operation func() (T, error)) (T, error) {
	var result T
	err := Do(ctx, config, func() error {
		var err error
		result, err = operation()
		return err
	})
	return result, err
}

// calculateDelay 计算第 attempt 次尝试前的延迟
func calculateDelay(config *Config, attempt int) time.Duration {
	var delay time.Duration

	switch config.Strategy {
	case ExponentialBackoff:
		delay = time.Duration(float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt-2)))
	case FixedInterval:
		delay = config.InitialDelay
	default:
		delay = config.InitialDelay
	}

	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}
	return delay
}
