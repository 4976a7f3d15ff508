package cli

import (
	"fmt"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/report"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var (
		days     int
		date     string
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "汇总发布历史数据",
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := report.Load(config.Config.LogPath)
			if err != nil {
				return fmt.Errorf("失败: 加载发布报告 - %w", err)
			}

			if date != "" {
				if reports, err = report.FilterDate(reports, date); err != nil {
					return err
				}
			} else {
				reports = report.FilterDays(reports, days)
			}

			stats := report.Summarize(reports)
			if jsonMode {
				return printJSON(stats)
			}
			fmt.Println(stats.FormatText())
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "只统计最近 N 天")
	cmd.Flags().StringVar(&date, "date", "", "只统计指定日期 (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "输出 JSON 格式")
	return cmd
}
