package browser

import (
	"strings"
	"testing"
)

func TestGenerateFingerprint(t *testing.T) {
	// 测试1: 生成的指纹字段完整且自洽
	t.Run("fields_consistent", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			fp := GenerateFingerprint()

			if !strings.HasPrefix(fp.UserAgent, "Mozilla/5.0 (") {
				t.Fatalf("UA 格式异常: %s", fp.UserAgent)
			}
			if !strings.Contains(fp.UserAgent, "Chrome/") {
				t.Fatalf("UA 缺少 Chrome 版本: %s", fp.UserAgent)
			}
			// 池内只有桌面平台，不允许出现移动端 UA
			if strings.Contains(fp.UserAgent, "Mobile") || strings.Contains(fp.UserAgent, "Android") {
				t.Fatalf("出现移动端 UA: %s", fp.UserAgent)
			}
			if fp.Locale != "zh-CN" || fp.TimezoneID != "Asia/Shanghai" {
				t.Fatalf("地区/时区不固定: %s %s", fp.Locale, fp.TimezoneID)
			}
		}
	})

	// 测试2: 视口在池值基础上微调，不超出抖动范围
	t.Run("viewport_jitter_bounds", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			fp := GenerateFingerprint()

			matched := false
			for _, vp := range viewports {
				dw := fp.ViewportWidth - vp[0]
				dh := fp.ViewportHeight - vp[1]
				if dw >= -10 && dw <= 10 && dh >= -5 && dh <= 5 {
					matched = true
					break
				}
			}
			if !matched {
				t.Fatalf("视口超出抖动范围: %dx%d", fp.ViewportWidth, fp.ViewportHeight)
			}
		}
	})

	// 测试3: 指纹存在随机变化
	t.Run("varies_between_calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			fp := GenerateFingerprint()
			key := fp.UserAgent
			seen[key] = true
		}
		if len(seen) < 2 {
			t.Errorf("50次生成应产生多种 UA，实际只有%d种", len(seen))
		}
	})
}
