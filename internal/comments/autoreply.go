package comments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

// Detail 单条评论的处理明细
type Detail struct {
	Author  string `json:"author,omitempty"`
	Comment string `json:"comment"`
	Reply   string `json:"reply,omitempty"`
	Status  string `json:"status"` // sent / dry_run / ai_failed / send_failed
}

// Results 一轮自动回复的汇总
type Results struct {
	Total   int      `json:"total"`
	Replied int      `json:"replied"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Details []Detail `json:"details"`
}

// AutoReply 抓取未回复评论并逐条生成、发送回复
// 试运行只生成不发送；已回复过的评论按账本跳过
func AutoReply(ctx context.Context, page playwright.Page, r Replier, store *Store, limit int, style string, dryRun bool) (*Results, error) {
	fetched, err := Fetch(page, limit)
	if err != nil {
		return nil, err
	}
	if err := store.addFetched(len(fetched)); err != nil {
		utils.Warn(fmt.Sprintf("评论账本更新失败: %v", err))
	}

	return processComments(ctx, page, fetched, r, store, style, dryRun), nil
}

// processComments 自动回复的决策循环，页面只在实际发送时触碰
func processComments(ctx context.Context, page playwright.Page, fetched []Comment, r Replier, store *Store, style string, dryRun bool) *Results {
	results := &Results{Total: len(fetched), Details: []Detail{}}

	for _, c := range fetched {
		if store.alreadyReplied(c.ID) {
			results.Skipped++
			continue
		}

		reply, err := GenerateReply(ctx, r, c, style)
		if err != nil {
			utils.Warn(fmt.Sprintf("AI 生成回复失败: %v", err))
			results.Failed++
			results.Details = append(results.Details, Detail{
				Comment: truncateRunes(c.Content, 50),
				Status:  "ai_failed",
			})
			continue
		}

		detail := Detail{
			Author:  c.Author,
			Comment: truncateRunes(c.Content, 80),
			Reply:   reply,
		}

		switch {
		case dryRun:
			results.Replied++
			detail.Status = "dry_run"
		case sendReply(page, c.ItemIndex, reply):
			if err := store.markReplied(c.ID); err != nil {
				utils.Warn(fmt.Sprintf("评论账本更新失败: %v", err))
			}
			results.Replied++
			detail.Status = "sent"
			// 间隔发送，避免触发频率限制
			time.Sleep(3 * time.Second)
		default:
			results.Failed++
			detail.Status = "send_failed"
		}
		results.Details = append(results.Details, detail)
	}

	return results
}

// sendReply 在页面上回复指定位置的评论
func sendReply(page playwright.Page, index int, text string) bool {
	items := listItems(page)
	if index >= len(items) {
		utils.Error(fmt.Sprintf("评论索引 %d 超出范围（共 %d 条）", index, len(items)))
		return false
	}
	item := items[index]

	// 回复按钮可能要 hover 才出现
	btn := item.Locator(`text=回复`).First()
	if err := btn.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(3000),
	}); err != nil {
		_ = item.Hover()
		time.Sleep(500 * time.Millisecond)
		btn = item.Locator(`text=回复`).First()
	}
	if err := btn.Click(playwright.LocatorClickOptions{Timeout: playwright.Float(3000)}); err != nil {
		utils.Error(fmt.Sprintf("回复评论 #%d 失败: %v", index+1, err))
		return false
	}
	time.Sleep(500 * time.Millisecond)

	input := page.Locator(`[contenteditable="true"], textarea[placeholder*="回复"], input[placeholder*="回复"]`).Last()
	if err := input.Click(); err != nil {
		utils.Error(fmt.Sprintf("回复评论 #%d 失败: 点击输入框 - %v", index+1, err))
		return false
	}

	// 逐字输入，避免触发反作弊
	if err := page.Keyboard().Type(text, playwright.KeyboardTypeOptions{
		Delay: playwright.Float(50),
	}); err != nil {
		utils.Error(fmt.Sprintf("回复评论 #%d 失败: 输入文本 - %v", index+1, err))
		return false
	}
	time.Sleep(500 * time.Millisecond)

	send := page.Locator(`text=发送`).Last()
	if err := send.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(2000),
	}); err == nil {
		if err := send.Click(); err != nil {
			utils.Error(fmt.Sprintf("回复评论 #%d 失败: 点击发送 - %v", index+1, err))
			return false
		}
	} else if err := page.Keyboard().Press("Enter"); err != nil {
		utils.Error(fmt.Sprintf("回复评论 #%d 失败: 回车发送 - %v", index+1, err))
		return false
	}

	time.Sleep(1 * time.Second)
	utils.Info(fmt.Sprintf("已回复评论 #%d", index+1))
	return true
}

// FormatResults 格式化回复结果为可读文本
func FormatResults(r *Results) string {
	icons := map[string]string{
		"sent":        "✅",
		"dry_run":     "👀",
		"ai_failed":   "⚠️",
		"send_failed": "❌",
	}

	var b strings.Builder
	b.WriteString("💬 评论互动结果\n\n")
	b.WriteString(fmt.Sprintf("总计: %d 条 | 已回复: %d | 跳过: %d | 失败: %d\n\n",
		r.Total, r.Replied, r.Skipped, r.Failed))

	for _, d := range r.Details {
		icon, ok := icons[d.Status]
		if !ok {
			icon = "?"
		}
		author := d.Author
		if author == "" {
			author = "匿名"
		}
		b.WriteString(fmt.Sprintf("%s [%s] %s\n", icon, author, truncateRunes(d.Comment, 40)))
		if d.Reply != "" {
			b.WriteString(fmt.Sprintf("   ↳ %s\n", d.Reply))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// truncateRunes 按字符截断
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
