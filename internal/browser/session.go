package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	// CreatorURL 创作者平台首页（登录态落点）
	CreatorURL = "https://creator.xiaohongshu.com"
	// LoginURL 创作者平台登录页
	LoginURL = "https://creator.xiaohongshu.com/login"
)

// Session 一个绑定持久化会话目录的浏览器自动化会话
// 单会话单页面，严格串行；会话目录的锁在会话生命周期内独占
type Session struct {
	pw          *playwright.Playwright
	context     playwright.BrowserContext
	page        playwright.Page
	fingerprint Fingerprint
	dataDir     string
	platform    string
}

// NewSession 创建持久化浏览器会话
// 绑定 dataDir 会话目录（Cookie/localStorage 由引擎自行读写），
// 应用新生成的指纹和反检测配置
// 启动失败视为致命错误，本层不重试
func NewSession(dataDir string, headless bool) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, types.NewSetupError("启动Playwright", err)
	}

	fp := GenerateFingerprint()

	context, err := pw.Chromium.LaunchPersistentContext(dataDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless:   playwright.Bool(headless),
		UserAgent:  playwright.String(fp.UserAgent),
		Locale:     playwright.String(fp.Locale),
		TimezoneId: playwright.String(fp.TimezoneID),
		Viewport: &playwright.Size{
			Width:  fp.ViewportWidth,
			Height: fp.ViewportHeight,
		},
		Args:              stealthLaunchArgs(),
		IgnoreDefaultArgs: stealthIgnoreArgs(),
		ColorScheme:       playwright.ColorSchemeLight,
		ExtraHttpHeaders:  fp.ExtraHeaders(),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, types.NewSetupError("启动浏览器", err)
	}

	// 注入反检测脚本，每个新页面创建时自动执行
	if err := context.AddInitScript(playwright.Script{Content: playwright.String(stealthJS)}); err != nil {
		_ = context.Close()
		_ = pw.Stop()
		return nil, types.NewSetupError("注入反检测脚本", err)
	}

	s := &Session{
		pw:          pw,
		context:     context,
		fingerprint: fp,
		dataDir:     dataDir,
		platform:    "xiaohongshu",
	}

	if _, err := s.Page(); err != nil {
		_ = s.Close()
		return nil, types.NewSetupError("创建页面", err)
	}

	utils.InfoWithPlatform(s.platform, fmt.Sprintf("会话已创建 - 视口 %dx%d", fp.ViewportWidth, fp.ViewportHeight))
	return s, nil
}

// Page 获取会话的交互页面（复用持久化上下文已有页面）
func (s *Session) Page() (playwright.Page, error) {
	if s.page != nil {
		return s.page, nil
	}

	pages := s.context.Pages()
	if len(pages) > 0 {
		s.page = pages[0]
	} else {
		page, err := s.context.NewPage()
		if err != nil {
			return nil, err
		}
		s.page = page
	}

	s.page.SetDefaultTimeout(30000)
	s.page.SetDefaultNavigationTimeout(30000)
	return s.page, nil
}

// Fingerprint 返回本次会话的指纹
func (s *Session) Fingerprint() Fingerprint {
	return s.fingerprint
}

// CheckLogin 检查登录态
// 打开创作者平台首页：跳转到登录页说明未登录；
// 标记元素短超时内未出现时退化为按 URL 推断
func (s *Session) CheckLogin() bool {
	page, err := s.Page()
	if err != nil {
		utils.WarnWithPlatform(s.platform, fmt.Sprintf("检查登录状态 - 获取页面失败: %v", err))
		return false
	}

	if _, err := page.Goto(CreatorURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(15000),
	}); err != nil {
		utils.WarnWithPlatform(s.platform, fmt.Sprintf("检查登录状态 - 打开页面失败: %v", err))
		return false
	}
	time.Sleep(2 * time.Second)

	if strings.Contains(page.URL(), "/login") {
		return false
	}

	// 尝试检测页面上的用户信息元素
	marker := page.Locator(".user, .creator-header, .sidebar").First()
	if err := marker.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(5000),
	}); err == nil {
		return true
	}

	// 没跳转到登录页，也可能已登录
	return !strings.Contains(page.URL(), "/login")
}

// Close 关闭会话
// 唯一的硬停止手段，任意步骤之后调用均安全；
// 引擎在关闭时将会话状态写回会话目录
func (s *Session) Close() error {
	var firstErr error

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			utils.WarnWithPlatform(s.platform, fmt.Sprintf("关闭上下文失败: %v", err))
			firstErr = err
		}
		s.context = nil
		s.page = nil
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.pw = nil
	}

	return firstErr
}
