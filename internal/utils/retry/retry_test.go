package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastConfig(maxAttempts int) *Config {
	return &Config{
		MaxAttempts:   maxAttempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
		Strategy:      ExponentialBackoff,
	}
}

func TestDo(t *testing.T) {
	// 测试1: 持续失败的操作恰好执行 MaxAttempts 次
	t.Run("permanent_failure_exact_attempts", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(3), func() error {
			calls++
			return fmt.Errorf("第%d次失败", calls)
		})
		if calls != 3 {
			t.Errorf("期望执行3次，实际执行%d次", calls)
		}
		// 返回的错误必须是最后一次尝试的错误
		if err == nil || err.Error() != "第3次失败" {
			t.Errorf("期望返回最后一次错误，实际: %v", err)
		}
	})

	// 测试2: 成功后不再重试
	t.Run("stop_on_success", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fastConfig(5), func() error {
			calls++
			if calls < 2 {
				return errors.New("临时失败")
			}
			return nil
		})
		if err != nil {
			t.Errorf("期望成功，实际: %v", err)
		}
		if calls != 2 {
			t.Errorf("期望执行2次，实际执行%d次", calls)
		}
	})

	// 测试3: 不可恢复错误立即终止
	t.Run("unrecoverable_stops_immediately", func(t *testing.T) {
		fatal := errors.New("不可恢复")
		cfg := fastConfig(5)
		cfg.Condition = func(err error) bool { return !errors.Is(err, fatal) }

		calls := 0
		err := Do(context.Background(), cfg, func() error {
			calls++
			return fatal
		})
		if calls != 1 {
			t.Errorf("不可恢复错误不应重试，实际执行%d次", calls)
		}
		if !errors.Is(err, fatal) {
			t.Errorf("期望返回原始错误，实际: %v", err)
		}
	})

	// 测试4: context 取消后不再继续
	t.Run("context_cancel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := Do(ctx, fastConfig(10), func() error {
			calls++
			cancel()
			return errors.New("失败")
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("期望 context.Canceled，实际: %v", err)
		}
		if calls != 1 {
			t.Errorf("取消后不应继续，实际执行%d次", calls)
		}
	})
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	result, err := DoWithResult(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("未就绪")
		}
		return "完成", nil
	})
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if result != "完成" {
		t.Errorf("结果不匹配: %s", result)
	}
}

func TestCalculateDelay(t *testing.T) {
	cfg := &Config{
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		Strategy:      ExponentialBackoff,
	}

	// 第2次尝试前延迟为初始值，之后按因子倍增
	if d := calculateDelay(cfg, 2); d != time.Second {
		t.Errorf("第2次尝试延迟期望1s，实际%v", d)
	}
	if d := calculateDelay(cfg, 3); d != 2*time.Second {
		t.Errorf("第3次尝试延迟期望2s，实际%v", d)
	}
	// 超过上限时截断
	if d := calculateDelay(cfg, 10); d != 10*time.Second {
		t.Errorf("延迟应截断到上限，实际%v", d)
	}
}
