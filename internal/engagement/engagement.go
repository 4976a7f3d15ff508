// Package engagement 抓取创作者中心的笔记互动数据（阅读、点赞、收藏、评论、分享）。
package engagement

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/playwright-community/playwright-go"
)

const (
	// ManageURL 创作者中心内容管理页
	ManageURL = "https://creator.xiaohongshu.com/publish/manage"

	// 笔记列表项选择器，页面随版本漂移，宽松匹配加备用
	rowSelector = `.note-item, [class*="note-item"], [class*="NoteItem"], ` +
		`table tbody tr, .content-item, [class*="content-item"], ` +
		`[class*="ManageNote"], .manage-note-item`
	rowFallbackSelector = `.ant-table-row, [class*="table"] tr`
)

var titleSelectors = []string{`[class*="title"]`, `.note-title`, `a`, `[class*="name"]`}

// 行内数字，带「万」「w」单位
var numberRe = regexp.MustCompile(`[\d.]+[万w]?`)

var statusKeywords = []string{"审核中", "未通过", "已隐藏", "草稿", "已发布", "公开"}

// Note 一篇笔记的互动数据
type Note struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Views    int    `json:"views"`
	Likes    int    `json:"likes"`
	Collects int    `json:"collects"`
	Comments int    `json:"comments"`
	Shares   int    `json:"shares"`
}

// Fetch 从内容管理页抓取笔记互动数据并写入快照库
func Fetch(page playwright.Page, store *Store, limit int) ([]Note, error) {
	utils.Info(fmt.Sprintf("正在抓取笔记互动数据（最多 %d 条）...", limit))

	if _, err := page.Goto(ManageURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(15000),
	}); err != nil {
		return nil, fmt.Errorf("失败: 打开内容管理页 - %w", err)
	}
	time.Sleep(3 * time.Second)

	var notes []Note
	seen := map[string]bool{}

	maxScrolls := limit/5 + 2
	if maxScrolls > 15 {
		maxScrolls = 15
	}
	for scroll := 0; scroll < maxScrolls && len(notes) < limit; scroll++ {
		for _, row := range listRows(page) {
			title := rowTitle(row)
			if title == "" || seen[title] {
				continue
			}
			seen[title] = true

			rowText, err := row.InnerText(playwright.LocatorInnerTextOptions{
				Timeout: playwright.Float(2000),
			})
			if err != nil {
				continue
			}

			notes = append(notes, parseRow(title, rowText))
			if len(notes) >= limit {
				break
			}
		}

		if len(notes) < limit {
			_, _ = page.Evaluate("window.scrollBy(0, 600)")
			time.Sleep(1500 * time.Millisecond)
		}
	}

	utils.Info(fmt.Sprintf("共抓取到 %d 条笔记数据", len(notes)))

	if store != nil {
		if err := store.Record(notes); err != nil {
			utils.Warn(fmt.Sprintf("互动数据快照保存失败: %v", err))
		}
	}
	return notes, nil
}

func listRows(page playwright.Page) []playwright.Locator {
	rows, err := page.Locator(rowSelector).All()
	if err == nil && len(rows) > 0 {
		return rows
	}
	rows, err = page.Locator(rowFallbackSelector).All()
	if err != nil {
		return nil
	}
	return rows
}

// rowTitle 按备选选择器提取笔记标题，超长截到50字
func rowTitle(row playwright.Locator) string {
	for _, sel := range titleSelectors {
		text, err := row.Locator(sel).First().InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(1000),
		})
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if len([]rune(text)) > 2 {
			runes := []rune(text)
			if len(runes) > 50 {
				text = string(runes[:50])
			}
			return text
		}
	}
	return ""
}

// parseRow 从行文本解析互动数据
// 创作者中心列顺序通常是：标题 | 状态 | 阅读 | 点赞 | 收藏 | 评论 | 分享，
// 按位置把行内数字依次落到各字段
func parseRow(title, rowText string) Note {
	note := Note{Title: title, Status: "已发布"}

	for _, kw := range statusKeywords {
		if strings.Contains(rowText, kw) {
			note.Status = kw
			break
		}
	}

	var numbers []int
	for _, raw := range numberRe.FindAllString(rowText, -1) {
		numbers = append(numbers, parseCount(raw))
	}
	if len(numbers) >= 3 {
		fields := []*int{&note.Views, &note.Likes, &note.Collects, &note.Comments, &note.Shares}
		for i, n := range numbers {
			if i >= len(fields) {
				break
			}
			*fields[i] = n
		}
	}
	return note
}

// parseCount 解析计数文本，支持「1.2万」「1.2w」
func parseCount(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	wan := false
	for _, unit := range []string{"万", "w"} {
		if strings.HasSuffix(text, unit) {
			text = strings.TrimSpace(strings.TrimSuffix(text, unit))
			wan = true
			break
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	if wan {
		return int(value * 10000)
	}
	return int(value)
}
