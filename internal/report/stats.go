package report

import (
	"fmt"
	"sort"
	"strings"
)

// TagCount 标签及出现次数
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// RecentEntry 最近发布条目
type RecentEntry struct {
	Time    string `json:"time"`
	Title   string `json:"title"`
	Success bool   `json:"success"`
}

// ErrorEntry 失败记录条目
type ErrorEntry struct {
	Time  string `json:"time"`
	Title string `json:"title"`
	Error string `json:"error"`
}

// Stats 发布历史统计摘要
type Stats struct {
	Total            int            `json:"total"`
	Success          int            `json:"success"`
	Failed           int            `json:"failed"`
	SuccessRate      string         `json:"success_rate"`
	AvgContentLength int            `json:"avg_content_length"`
	TopTags          []TagCount     `json:"top_tags"`
	DailyCount       map[string]int `json:"daily_count"`
	Recent           []RecentEntry  `json:"recent"`
	Errors           []ErrorEntry   `json:"errors,omitempty"`
}

// Summarize 汇总报告列表
func Summarize(reports []Report) *Stats {
	stats := &Stats{DailyCount: map[string]int{}}
	stats.Total = len(reports)
	if stats.Total == 0 {
		return stats
	}

	tagCounts := map[string]int{}
	totalLength := 0
	for _, r := range reports {
		if r.Result.Success {
			stats.Success++
		} else {
			stats.Failed++
			if r.Result.Error != "" {
				stats.Errors = append(stats.Errors, ErrorEntry{
					Time: r.Time, Title: r.Title, Error: r.Result.Error,
				})
			}
		}
		totalLength += r.ContentLength
		for _, tag := range r.Tags {
			tagCounts[tag]++
		}
		if t := r.parseTime(); !t.IsZero() {
			stats.DailyCount[t.Format("2006-01-02")]++
		}
	}

	stats.SuccessRate = fmt.Sprintf("%.1f%%", float64(stats.Success)/float64(stats.Total)*100)
	stats.AvgContentLength = totalLength / stats.Total
	stats.TopTags = topTags(tagCounts, 10)
	stats.Recent = recentEntries(reports, 5)
	return stats
}

// topTags 按出现次数取前 n 个标签，次数相同按标签名排序保证稳定
func topTags(counts map[string]int, n int) []TagCount {
	tags := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		tags = append(tags, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})
	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}

// recentEntries 按时间倒序取最近 n 条
func recentEntries(reports []Report, n int) []RecentEntry {
	sorted := make([]Report, len(reports))
	copy(sorted, reports)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].parseTime().After(sorted[j].parseTime())
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	entries := make([]RecentEntry, 0, len(sorted))
	for _, r := range sorted {
		entries = append(entries, RecentEntry{Time: r.Time, Title: r.Title, Success: r.Result.Success})
	}
	return entries
}

// FormatText 渲染为可读文本
func (s *Stats) FormatText() string {
	if s.Total == 0 {
		return "📊 暂无发布记录"
	}

	var b strings.Builder
	b.WriteString("📊 发布数据统计\n\n")
	fmt.Fprintf(&b, "总计: %d 篇 | 成功: %d | 失败: %d | 成功率: %s\n",
		s.Total, s.Success, s.Failed, s.SuccessRate)
	fmt.Fprintf(&b, "平均正文长度: %d 字\n\n", s.AvgContentLength)

	if len(s.DailyCount) > 0 {
		b.WriteString("📅 每日发布:\n")
		days := make([]string, 0, len(s.DailyCount))
		for day := range s.DailyCount {
			days = append(days, day)
		}
		sort.Strings(days)
		for _, day := range days {
			fmt.Fprintf(&b, "  %s: %d 篇\n", day, s.DailyCount[day])
		}
		b.WriteString("\n")
	}

	if len(s.TopTags) > 0 {
		b.WriteString("🏷️ 热门标签 Top 10:\n")
		for _, t := range s.TopTags {
			fmt.Fprintf(&b, "  #%s (%d次)\n", t.Tag, t.Count)
		}
		b.WriteString("\n")
	}

	if len(s.Recent) > 0 {
		b.WriteString("📝 最近发布:\n")
		for _, r := range s.Recent {
			status := "✅"
			if !r.Success {
				status = "❌"
			}
			fmt.Fprintf(&b, "  %s [%s] %s\n", status, shortTime(r.Time), r.Title)
		}
		b.WriteString("\n")
	}

	if len(s.Errors) > 0 {
		b.WriteString("⚠️ 失败记录:\n")
		for _, e := range s.Errors {
			fmt.Fprintf(&b, "  ❌ [%s] %s: %s\n", shortTime(e.Time), e.Title, e.Error)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func shortTime(t string) string {
	if len(t) >= 16 {
		return strings.Replace(t[:16], "T", " ", 1)
	}
	if t == "" {
		return "?"
	}
	return t
}
