package publisher

import (
	"strings"
	"testing"

	"github.com/jogholy/xhs-publisher/internal/types"
)

const composerURL = "https://creator.xiaohongshu.com/publish/publish"

func TestDecideOutcome(t *testing.T) {
	// 测试1: URL 离开发布页即成功
	t.Run("url_changed_success", func(t *testing.T) {
		outcome := decideOutcome(
			"https://creator.xiaohongshu.com/publish/success?id=1",
			composerURL, false, "")
		if outcome.Status != types.OutcomeSuccess {
			t.Errorf("URL变化应判定成功，实际: %s", outcome.Status)
		}
	})

	// 测试2: URL 未变但出现成功文案
	t.Run("success_marker", func(t *testing.T) {
		outcome := decideOutcome(composerURL, composerURL, true, "")
		if outcome.Status != types.OutcomeSuccess {
			t.Errorf("成功文案应判定成功，实际: %s", outcome.Status)
		}
	})

	// 测试3: 失败文案优先于无信号，原因为匹配文本
	t.Run("failure_marker", func(t *testing.T) {
		outcome := decideOutcome(composerURL, composerURL, false, "内容违规")
		if outcome.Status != types.OutcomeFailure {
			t.Errorf("失败文案应判定失败，实际: %s", outcome.Status)
		}
		if outcome.Reason != "内容违规" {
			t.Errorf("原因应为匹配文本，实际: %s", outcome.Reason)
		}
	})

	// 测试4: 无任何信号时为无法判定，不得当作成功或失败
	t.Run("no_signal_indeterminate", func(t *testing.T) {
		outcome := decideOutcome(composerURL, composerURL, false, "")
		if outcome.Status != types.OutcomeIndeterminate {
			t.Errorf("无信号应判定 indeterminate，实际: %s", outcome.Status)
		}
	})

	// 测试5: 同样输入判定结果幂等
	t.Run("idempotent", func(t *testing.T) {
		first := decideOutcome(composerURL, composerURL, false, "")
		second := decideOutcome(composerURL, composerURL, false, "")
		if first.Status != second.Status {
			t.Errorf("同输入两次判定不一致: %s vs %s", first.Status, second.Status)
		}
	})

	// 测试6: 超长失败文案截断
	t.Run("reason_truncated", func(t *testing.T) {
		long := strings.Repeat("违规", 100)
		outcome := decideOutcome(composerURL, composerURL, false, long)
		if len([]rune(outcome.Reason)) > reasonMaxRunes {
			t.Errorf("失败原因应截断到%d字，实际%d字", reasonMaxRunes, len([]rune(outcome.Reason)))
		}
	})
}

func TestTruncateRunes(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"短标题", 20, "短标题"},
		{"一二三四五六七八九十一二三四五六七八九十超出", 20, "一二三四五六七八九十一二三四五六七八九十"},
		{"", 20, ""},
		{"abc", 2, "ab"},
	}
	for _, c := range cases {
		if got := truncateRunes(c.in, c.max); got != c.want {
			t.Errorf("truncateRunes(%q, %d) = %q，期望 %q", c.in, c.max, got, c.want)
		}
	}
}

func TestDefaultMarkersAreData(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.SuccessMarkers) == 0 || len(cfg.FailureMarkers) == 0 {
		t.Fatal("标记列表不能为空")
	}
	// 自定义标记不触碰状态机
	cfg.FailureMarkers = []string{"自定义失败文案"}
	outcome := decideOutcome(composerURL, composerURL, false, "自定义失败文案")
	if outcome.Status != types.OutcomeFailure {
		t.Errorf("自定义标记应同样生效，实际: %s", outcome.Status)
	}
}
