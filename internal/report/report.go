// Package report 记录每次发布的结果并汇总历史数据。
// 报告是一次一文件的 JSON，统计时整目录扫描，不引入数据库。
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"
)

// Result 单次发布的结果
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Report 一次发布的完整记录
type Report struct {
	Time          string   `json:"time"`
	Title         string   `json:"title"`
	ContentLength int      `json:"content_length"`
	Tags          []string `json:"tags"`
	Result        Result   `json:"result"`

	// 文件名，加载时填充
	File string `json:"-"`
}

// Save 把一次发布结果写入报告文件
func Save(task *types.NoteTask, result *types.PublishResult) (string, error) {
	res := Result{Success: result.Success()}
	if !res.Success {
		res.Error = result.Outcome.Reason
		if res.Error == "" && result.Outcome.Status == types.OutcomeIndeterminate {
			res.Error = "无法判定发布结果，请人工核实"
		}
	}

	r := Report{
		Time:          time.Now().Format(time.RFC3339),
		Title:         task.Title,
		ContentLength: len([]rune(task.Content)),
		Tags:          task.Tags,
		Result:        res,
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(
		config.Config.LogPath,
		fmt.Sprintf("report_%s.json", time.Now().Format("20060102_150405")),
	)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("失败: 保存发布报告 - %w", err)
	}
	utils.Info(fmt.Sprintf("发布报告: %s", path))
	return path, nil
}

// Load 读取目录下全部发布报告，坏文件跳过
func Load(dir string) ([]Report, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "report_*.json"))
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var r Report
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		r.File = filepath.Base(path)
		reports = append(reports, r)
	}
	return reports, nil
}

// parseTime 解析报告时间，解析失败返回零值
func (r Report) parseTime() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, r.Time); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FilterDays 保留最近 days 天内的报告，days <= 0 时原样返回
func FilterDays(reports []Report, days int) []Report {
	if days <= 0 {
		return reports
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	filtered := make([]Report, 0, len(reports))
	for _, r := range reports {
		if r.parseTime().After(cutoff) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterDate 保留指定日期（YYYY-MM-DD）的报告
func FilterDate(reports []Report, date string) ([]Report, error) {
	target, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("日期格式应为 YYYY-MM-DD: %w", err)
	}
	filtered := make([]Report, 0, len(reports))
	for _, r := range reports {
		t := r.parseTime()
		if t.Year() == target.Year() && t.YearDay() == target.YearDay() {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
