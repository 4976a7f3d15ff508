package browser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	// 登录页默认显示短信登录，需要点击二维码小图标切换
	qrIconSelector  = "img.css-wemwzq"
	qrImageSelector = "img.css-1lhmg90"
	loginBoxImages  = ".login-box-container img"
)

// Login 执行扫码登录
// 切换到扫码模式后截取二维码，用户用 APP 扫码；
// 轮询 URL 直到离开登录页或超时
// 返回二维码截图路径
func (s *Session) Login(timeout time.Duration) (string, error) {
	page, err := s.Page()
	if err != nil {
		return "", err
	}

	utils.InfoWithPlatform(s.platform, "开始登录流程...")
	if err := SafeNavigate(page, LoginURL, 15*time.Second, 3); err != nil {
		return "", err
	}
	time.Sleep(5 * time.Second)

	s.switchToQRMode(page)

	qrShot := s.captureQRCode(page)
	utils.InfoWithPlatform(s.platform, fmt.Sprintf("请用小红书 APP 扫描二维码登录（%s超时）...", timeout))

	start := time.Now()
	for time.Since(start) < timeout {
		time.Sleep(3 * time.Second)
		if !strings.Contains(page.URL(), "/login") {
			utils.SuccessWithPlatform(s.platform, "登录成功")
			_, _ = utils.Screenshot(page, "login_success")
			return qrShot, nil
		}
	}

	return qrShot, types.NewTimeoutError("扫码登录", fmt.Errorf("登录超时（%s），请重试", timeout))
}

// switchToQRMode 点击二维码小图标切换到扫码登录
// 图标缺席时尝试点击任何小尺寸图片作为备用
func (s *Session) switchToQRMode(page playwright.Page) {
	icon := page.Locator(qrIconSelector).First()
	if visible, _ := icon.IsVisible(); visible {
		if err := icon.Click(); err == nil {
			utils.InfoWithPlatform(s.platform, "已切换到扫码登录模式")
			time.Sleep(3 * time.Second)
			return
		}
	}

	utils.WarnWithPlatform(s.platform, "未找到二维码图标，尝试备用方式")
	images := page.Locator(loginBoxImages)
	count, err := images.Count()
	if err != nil {
		return
	}
	for i := 0; i < count; i++ {
		img := images.Nth(i)
		box, err := img.BoundingBox()
		if err != nil || box == nil {
			continue
		}
		if box.Width < 100 && box.Height < 100 {
			if err := img.Click(); err == nil {
				utils.InfoWithPlatform(s.platform, "已点击备用二维码图标")
				time.Sleep(3 * time.Second)
			}
			return
		}
	}
}

// captureQRCode 截取二维码，优先元素截图，退化为全页截图
func (s *Session) captureQRCode(page playwright.Page) string {
	path := filepath.Join(
		config.Config.ScreenshotPath,
		fmt.Sprintf("qrcode_%s.png", time.Now().Format("20060102_150405")),
	)

	qr := page.Locator(qrImageSelector).First()
	if visible, _ := qr.IsVisible(); visible {
		if _, err := qr.Screenshot(playwright.LocatorScreenshotOptions{
			Path: playwright.String(path),
		}); err == nil {
			utils.InfoWithPlatform(s.platform, fmt.Sprintf("二维码截图已保存（元素截图）: %s", path))
			return path
		}
	}

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		utils.WarnWithPlatform(s.platform, fmt.Sprintf("二维码截图失败: %v", err))
		return ""
	}
	utils.InfoWithPlatform(s.platform, fmt.Sprintf("二维码截图已保存（全页截图）: %s", path))
	return path
}
