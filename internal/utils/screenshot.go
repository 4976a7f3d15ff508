package utils

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"

	"github.com/playwright-community/playwright-go"
)

// Screenshot 截取全页截图保存到截图目录，返回文件路径
func Screenshot(page playwright.Page, label string) (string, error) {
	path := filepath.Join(
		config.Config.ScreenshotPath,
		fmt.Sprintf("%s_%s.png", label, time.Now().Format("20060102_150405")),
	)
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		Error(fmt.Sprintf("截图失败: %v", err))
		return "", err
	}
	Info(fmt.Sprintf("截图已保存: %s", path))
	return path, nil
}
