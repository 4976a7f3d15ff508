package engagement

import (
	"fmt"
	"strings"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/report"

	"github.com/playwright-community/playwright-go"
)

// BestNote 表现最好的笔记（点赞加收藏最高）
type BestNote struct {
	Title    string `json:"title"`
	Likes    int    `json:"likes"`
	Collects int    `json:"collects"`
	Comments int    `json:"comments"`
}

// Totals 互动数据汇总
type Totals struct {
	NotesCount    int       `json:"notes_count"`
	TotalViews    int       `json:"total_views"`
	TotalLikes    int       `json:"total_likes"`
	TotalCollects int       `json:"total_collects"`
	TotalComments int       `json:"total_comments"`
	TotalShares   int       `json:"total_shares"`
	BestNote      *BestNote `json:"best_note"`
	NotesDetail   []Note    `json:"notes_detail,omitempty"`
	Cached        bool      `json:"cached,omitempty"`
	SnapshotTime  string    `json:"snapshot_time,omitempty"`
}

// PeriodStats 一段时间内的发布计数
type PeriodStats struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// AllTimeStats 累计发布统计
type AllTimeStats struct {
	Total       int    `json:"total"`
	Success     int    `json:"success"`
	SuccessRate string `json:"success_rate"`
}

// PublishStats 日报中的发布部分
type PublishStats struct {
	Today   PeriodStats       `json:"today"`
	AllTime AllTimeStats      `json:"all_time"`
	TopTags []report.TagCount `json:"top_tags"`
}

// DailyReport 每日数据报告：发布统计加互动数据
type DailyReport struct {
	GeneratedAt  string       `json:"generated_at"`
	PublishStats PublishStats `json:"publish_stats"`
	Engagement   *Totals      `json:"engagement"`
}

// BuildDailyReport 生成每日数据报告
// page 非空时现场抓取互动数据，否则退化为最近一次快照；两者都没有时互动部分为空
func BuildDailyReport(page playwright.Page, store *Store, limit int) (*DailyReport, error) {
	reports, err := report.Load(config.Config.LogPath)
	if err != nil {
		return nil, fmt.Errorf("失败: 加载发布报告 - %w", err)
	}
	all := report.Summarize(reports)
	today := report.Summarize(report.FilterDays(reports, 1))

	topTags := all.TopTags
	if len(topTags) > 5 {
		topTags = topTags[:5]
	}

	daily := &DailyReport{
		GeneratedAt: time.Now().Format(time.RFC3339),
		PublishStats: PublishStats{
			Today:   PeriodStats{Total: today.Total, Success: today.Success, Failed: today.Failed},
			AllTime: AllTimeStats{Total: all.Total, Success: all.Success, SuccessRate: all.SuccessRate},
			TopTags: topTags,
		},
	}

	if page != nil {
		notes, err := Fetch(page, store, limit)
		if err != nil {
			return nil, err
		}
		daily.Engagement = summarizeNotes(notes)
	} else if snapshot, ok := store.Latest(); ok {
		daily.Engagement = summarizeNotes(snapshot.Notes)
		daily.Engagement.Cached = true
		daily.Engagement.SnapshotTime = snapshot.Time
		daily.Engagement.NotesDetail = nil
	}

	return daily, nil
}

// summarizeNotes 汇总互动数据并挑出最佳笔记
func summarizeNotes(notes []Note) *Totals {
	totals := &Totals{NotesCount: len(notes)}

	var best *Note
	for i := range notes {
		n := &notes[i]
		totals.TotalViews += n.Views
		totals.TotalLikes += n.Likes
		totals.TotalCollects += n.Collects
		totals.TotalComments += n.Comments
		totals.TotalShares += n.Shares
		if best == nil || n.Likes+n.Collects > best.Likes+best.Collects {
			best = n
		}
	}

	if best != nil {
		totals.BestNote = &BestNote{
			Title:    best.Title,
			Likes:    best.Likes,
			Collects: best.Collects,
			Comments: best.Comments,
		}
	}
	if len(notes) > 10 {
		notes = notes[:10]
	}
	totals.NotesDetail = notes
	return totals
}

// FormatDailyReport 格式化日报为可读文本
func FormatDailyReport(r *DailyReport) string {
	var b strings.Builder
	b.WriteString("📊 小红书每日数据报告\n")
	date := r.GeneratedAt
	if len(date) >= 10 {
		date = date[:10]
	}
	b.WriteString(fmt.Sprintf("📅 %s\n\n", date))

	b.WriteString("📝 发布统计\n")
	b.WriteString(fmt.Sprintf("  今日发布: %d 篇（成功 %d，失败 %d）\n",
		r.PublishStats.Today.Total, r.PublishStats.Today.Success, r.PublishStats.Today.Failed))
	b.WriteString(fmt.Sprintf("  累计发布: %d 篇（成功率 %s）\n",
		r.PublishStats.AllTime.Total, r.PublishStats.AllTime.SuccessRate))

	if len(r.PublishStats.TopTags) > 0 {
		var tags []string
		for _, t := range r.PublishStats.TopTags {
			tags = append(tags, "#"+t.Tag)
		}
		b.WriteString(fmt.Sprintf("  热门标签: %s\n", strings.Join(tags, " ")))
	}

	eng := r.Engagement
	if eng == nil {
		b.WriteString("\n💬 互动数据: 暂无（需要先抓取）\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("\n💬 互动数据（%d 篇笔记）\n", eng.NotesCount))
	b.WriteString(fmt.Sprintf("  👀 阅读: %d\n", eng.TotalViews))
	b.WriteString(fmt.Sprintf("  ❤️ 点赞: %d\n", eng.TotalLikes))
	b.WriteString(fmt.Sprintf("  ⭐ 收藏: %d\n", eng.TotalCollects))
	b.WriteString(fmt.Sprintf("  💬 评论: %d\n", eng.TotalComments))
	b.WriteString(fmt.Sprintf("  🔗 分享: %d\n", eng.TotalShares))

	if best := eng.BestNote; best != nil {
		b.WriteString(fmt.Sprintf("\n🏆 最佳笔记: %s\n", best.Title))
		b.WriteString(fmt.Sprintf("   ❤️%d ⭐%d 💬%d\n", best.Likes, best.Collects, best.Comments))
	}
	if eng.Cached {
		snapTime := eng.SnapshotTime
		if len(snapTime) > 16 {
			snapTime = snapTime[:16]
		}
		b.WriteString(fmt.Sprintf("\n  ⚠️ 互动数据来自缓存（%s）\n", snapTime))
	}
	return b.String()
}
