package cli

import (
	"fmt"

	"github.com/jogholy/xhs-publisher/internal/engagement"

	"github.com/spf13/cobra"
)

func newEngagementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "engagement",
		Short: "笔记互动数据：阅读、点赞、收藏、评论",
	}
	cmd.AddCommand(newEngagementFetchCmd(), newEngagementReportCmd(), newEngagementCachedCmd())
	return cmd
}

func newEngagementFetchCmd() *cobra.Command {
	var (
		limit    int
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "抓取笔记互动数据",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := authedSession(cmd, headless)
			if err != nil {
				return err
			}
			defer session.Close()

			page, err := session.Page()
			if err != nil {
				return err
			}
			notes, err := engagement.Fetch(page, engagement.NewStore(), limit)
			if err != nil {
				return err
			}
			return printJSON(notes)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "最多抓取条数")
	cmd.Flags().BoolVar(&headless, "headless", false, "无头模式运行")
	return cmd
}

func newEngagementReportCmd() *cobra.Command {
	var (
		noEngagement bool
		jsonMode     bool
		headless     bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "生成每日数据报告",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := engagement.NewStore()

			var daily *engagement.DailyReport
			if noEngagement {
				// 不开浏览器，互动部分退化为缓存快照
				report, err := engagement.BuildDailyReport(nil, store, 0)
				if err != nil {
					return err
				}
				daily = report
			} else {
				session, err := authedSession(cmd, headless)
				if err != nil {
					return err
				}
				defer session.Close()

				page, err := session.Page()
				if err != nil {
					return err
				}
				report, err := engagement.BuildDailyReport(page, store, 20)
				if err != nil {
					return err
				}
				daily = report
			}

			if jsonMode {
				return printJSON(daily)
			}
			fmt.Println(engagement.FormatDailyReport(daily))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noEngagement, "no-engagement", false, "不抓取互动数据，只用缓存")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "输出 JSON 格式")
	cmd.Flags().BoolVar(&headless, "headless", false, "无头模式运行")
	return cmd
}

func newEngagementCachedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cached",
		Short: "查看缓存的互动数据快照",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, ok := engagement.NewStore().Latest()
			if !ok {
				return printJSON(map[string]any{"message": "暂无缓存数据"})
			}
			return printJSON(snapshot)
		},
	}
}
