package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// 导航与交互原语
// 上层只通过这里触碰页面：UI 没有稳定契约，每次交互都假定可能失败
// 重试预算刻意较小，永久故障上浮而不是被掩盖

// PageHealth 页面健康状态，按需重算，不做存储
type PageHealth struct {
	OK  bool
	URL string
	Err string
}

// SafeNavigate 带重试的页面跳转
// 失败时等待后尝试刷新再重试；重试耗尽则保存错误现场截图并返回导航错误
func SafeNavigate(page playwright.Page, url string, timeout time.Duration, retries int) error {
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		})
		if err == nil {
			return nil
		}
		lastErr = err
		utils.Warn(fmt.Sprintf("导航失败 (第%d次): %s - %v", attempt, url, err))

		if attempt < retries {
			time.Sleep(3 * time.Second)
			if _, err := page.Reload(playwright.PageReloadOptions{
				Timeout: playwright.Float(float64(timeout.Milliseconds())),
			}); err != nil {
				utils.Debug(fmt.Sprintf("刷新失败: %v", err))
			}
		}
	}

	shot := SaveErrorSnapshot(page, "nav_fail")
	return types.NewNavigationError(fmt.Sprintf("导航到 %s", url), shot, lastErr)
}

// SafeClick 带重试的元素点击
// 重试耗尽返回 false（非致命，元素缺席是否可接受由调用方决定）
func SafeClick(page playwright.Page, selector string, timeout time.Duration, retries int) bool {
	for attempt := 1; attempt <= retries; attempt++ {
		el := page.Locator(selector).First()
		err := el.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(float64(timeout.Milliseconds())),
		})
		if err == nil {
			if err = el.Click(); err == nil {
				return true
			}
		}

		if attempt < retries {
			utils.Warn(fmt.Sprintf("点击 %s 失败 (第%d次): %v，重试...", selector, attempt, err))
			time.Sleep(2 * time.Second)
		} else {
			utils.Warn(fmt.Sprintf("点击 %s 失败: %v", selector, err))
		}
	}
	return false
}

// SafeFill 带重试的文本填写
func SafeFill(page playwright.Page, selector, text string, timeout time.Duration, retries int) bool {
	for attempt := 1; attempt <= retries; attempt++ {
		el := page.Locator(selector).First()
		err := el.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(float64(timeout.Milliseconds())),
		})
		if err == nil {
			if err = el.Click(); err == nil {
				if err = el.Fill(text); err == nil {
					return true
				}
			}
		}

		if attempt < retries {
			utils.Warn(fmt.Sprintf("填写 %s 失败 (第%d次): %v，重试...", selector, attempt, err))
			time.Sleep(2 * time.Second)
		} else {
			utils.Warn(fmt.Sprintf("填写 %s 失败: %v", selector, err))
		}
	}
	return false
}

// CheckPageHealth 检查页面健康状态
func CheckPageHealth(page playwright.Page) PageHealth {
	url := page.URL()
	if urlLooksBroken(url) {
		return PageHealth{OK: false, URL: url, Err: "页面异常"}
	}

	// 页面是否可交互
	if _, err := page.Evaluate("() => document.readyState"); err != nil {
		return PageHealth{OK: false, URL: url, Err: err.Error()}
	}
	return PageHealth{OK: true, URL: url}
}

// urlLooksBroken 按 URL 判断页面是否处于错误状态
func urlLooksBroken(url string) bool {
	if url == "" {
		return true
	}
	return strings.Contains(url, "about:blank") || strings.Contains(url, "chrome-error://") || strings.Contains(url, "/error")
}

// RecoverPage 尝试把页面恢复到目标 URL
// 健康且已在目标页时不做任何导航
func RecoverPage(page playwright.Page, targetURL string) bool {
	health := CheckPageHealth(page)
	if health.OK && strings.Contains(health.URL, targetURL) {
		return true
	}

	utils.Info(fmt.Sprintf("页面需要恢复，当前: %s，目标: %s", health.URL, targetURL))
	if err := SafeNavigate(page, targetURL, 15*time.Second, 3); err != nil {
		utils.Error(fmt.Sprintf("页面恢复失败: %v", err))
		return false
	}
	time.Sleep(3 * time.Second)
	return true
}

// SaveErrorSnapshot 保存错误现场截图，返回路径（失败返回空串）
func SaveErrorSnapshot(page playwright.Page, label string) string {
	path, err := utils.Screenshot(page, label)
	if err != nil {
		return ""
	}
	return path
}
