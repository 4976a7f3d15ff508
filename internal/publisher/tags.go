package publisher

import (
	"fmt"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// 标签联想弹层的候选定位
var tagSuggestionSelectors = []string{
	`[class*="suggest"] li`,
	`[class*="topic-list"] div`,
	`[class*="hash-tag"] div`,
}

// attachTags 在正文编辑器里逐个输入 #标签 触发联想
// 联想命中则点选，未命中时接受已输入的字面文本；
// 单个标签失败只记录并跳过，不中断工作流
func (p *Publisher) attachTags(page playwright.Page, tags []string) {
	added := 0

	for _, tag := range tags {
		if added >= p.cfg.MaxTags {
			break
		}
		cleanTag := strings.TrimSpace(strings.ReplaceAll(tag, "#", ""))
		if cleanTag == "" {
			continue
		}

		if p.attachTag(page, cleanTag) {
			added++
		}
	}

	utils.InfoWithPlatform(p.platform, fmt.Sprintf("已添加 %d 个标签", added))
}

func (p *Publisher) attachTag(page playwright.Page, tag string) bool {
	editor := page.Locator(bodySelector).First()
	if visible, _ := editor.IsVisible(); !visible {
		editor = page.Locator(bodyFallback).First()
	}

	if err := editor.Click(); err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("添加标签 %q 失败: %v", tag, err))
		return false
	}

	if err := page.Keyboard().Type(" #"+tag, playwright.KeyboardTypeOptions{
		Delay: playwright.Float(80),
	}); err != nil {
		utils.WarnWithPlatform(p.platform, fmt.Sprintf("添加标签 %q 失败: %v", tag, err))
		return false
	}
	time.Sleep(1500 * time.Millisecond)

	// 优先从联想列表中点选精确匹配
	suggestion := page.Locator(fmt.Sprintf(`[class*="topic"] >> text="%s"`, tag)).First()
	if visible, _ := suggestion.IsVisible(); visible {
		if err := suggestion.Click(); err == nil {
			time.Sleep(500 * time.Millisecond)
			return true
		}
	}

	// 备用：点击任何弹出的联想项
	for _, sel := range tagSuggestionSelectors {
		item := page.Locator(sel).First()
		if visible, _ := item.IsVisible(); visible {
			if err := item.Click(); err == nil {
				time.Sleep(500 * time.Millisecond)
				return true
			}
		}
	}

	// 联想没匹配到，标签文本已输入，按字面文本计入
	return true
}
