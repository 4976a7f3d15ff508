// Package comments 抓取创作者中心的评论并用 AI 生成回复。
package comments

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	// CommentsURL 创作者中心评论管理页
	CommentsURL = "https://creator.xiaohongshu.com/comment"

	// 评论列表项选择器，页面结构没有稳定契约，宽松匹配加备用
	itemSelector         = `.comment-item, [class*="comment-item"], [class*="CommentItem"]`
	itemFallbackSelector = `.comment-container > div, .comment-list > div`
	contentSelector      = `[class*="content"], .comment-content, .note-comment`
	authorSelector       = `[class*="author"], [class*="nickname"], [class*="user-name"]`
	noteTitleSelector    = `[class*="note-title"], [class*="title"]`
	timeSelector         = `[class*="time"], time, [class*="date"]`
)

// Comment 一条待处理评论
// ID 由内容哈希生成，页面不暴露稳定的评论标识
type Comment struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	NoteTitle string `json:"note_title"`
	Time      string `json:"time"`
	ItemIndex int    `json:"-"` // 评论在页面列表中的位置，回复时定位用
}

// Fetch 从评论管理页抓取评论，优先切到「未回复」列表
func Fetch(page playwright.Page, limit int) ([]Comment, error) {
	utils.Info(fmt.Sprintf("正在抓取评论（最多 %d 条）...", limit))

	if _, err := page.Goto(CommentsURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(15000),
	}); err != nil {
		return nil, fmt.Errorf("失败: 打开评论管理页 - %w", err)
	}
	time.Sleep(3 * time.Second)

	// 有「未回复」筛选就用，没有就用默认列表
	tab := page.Locator(`text=未回复`).First()
	if err := tab.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(3000),
	}); err == nil {
		if err := tab.Click(); err == nil {
			time.Sleep(2 * time.Second)
			utils.Info("已切换到「未回复」评论列表")
		}
	} else {
		utils.Info("未找到「未回复」筛选，使用默认列表")
	}

	var comments []Comment
	seen := map[string]bool{}

	maxScrolls := limit/5 + 1
	if maxScrolls > 10 {
		maxScrolls = 10
	}
	for scroll := 0; scroll < maxScrolls && len(comments) < limit; scroll++ {
		for _, item := range listItems(page) {
			content := textOf(item.Locator(contentSelector).First(), 2000)
			if content == "" {
				continue
			}

			id := commentID(content)
			if seen[id] {
				continue
			}
			seen[id] = true

			comments = append(comments, Comment{
				ID:        id,
				Author:    textOf(item.Locator(authorSelector).First(), 1000),
				Content:   content,
				NoteTitle: textOf(item.Locator(noteTitleSelector).First(), 1000),
				Time:      textOf(item.Locator(timeSelector).First(), 1000),
				ItemIndex: len(comments),
			})
			if len(comments) >= limit {
				break
			}
		}

		if len(comments) < limit {
			_, _ = page.Evaluate("window.scrollBy(0, 800)")
			time.Sleep(1500 * time.Millisecond)
		}
	}

	utils.Info(fmt.Sprintf("共抓取到 %d 条评论", len(comments)))
	return comments, nil
}

// listItems 取当前可见的评论项，主选择器落空时换备用
func listItems(page playwright.Page) []playwright.Locator {
	items, err := page.Locator(itemSelector).All()
	if err == nil && len(items) > 0 {
		return items
	}
	items, err = page.Locator(itemFallbackSelector).All()
	if err != nil {
		return nil
	}
	return items
}

// textOf 读取元素文本，缺席或超时返回空串
func textOf(l playwright.Locator, timeoutMs float64) string {
	text, err := l.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// commentID 基于内容哈希的评论标识，同一条评论跨次抓取保持稳定
func commentID(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])[:12]
}
