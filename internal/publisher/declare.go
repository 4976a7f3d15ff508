package publisher

import (
	"time"

	"github.com/jogholy/xhs-publisher/internal/browser"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// AI 内容声明的两步展开：先打开声明菜单，再选中 AI 生成选项
const (
	declareMenuSelector   = `text=添加声明`
	declareOptionSelector = `text=内容含AI生成`
)

// declareAIGenerated 声明笔记包含 AI 生成内容
// 合规尽力而为：控件缺席或点击失败不阻塞提交
func (p *Publisher) declareAIGenerated(page playwright.Page) {
	if !browser.SafeClick(page, declareMenuSelector, p.cfg.ElementWaitTimeout, 2) {
		utils.WarnWithPlatform(p.platform, "失败: 声明AI内容 - 未找到声明入口")
		return
	}
	time.Sleep(1 * time.Second)

	if !browser.SafeClick(page, declareOptionSelector, p.cfg.ElementWaitTimeout, 2) {
		utils.WarnWithPlatform(p.platform, "失败: 声明AI内容 - 未找到AI生成选项")
		return
	}
	time.Sleep(1 * time.Second)

	utils.InfoWithPlatform(p.platform, "已声明内容含AI生成")
}
