package cli

import (
	"fmt"

	"github.com/jogholy/xhs-publisher/internal/trending"

	"github.com/spf13/cobra"
)

func newTrendingCmd() *cobra.Command {
	var (
		sources  []string
		limit    int
		noCache  bool
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "采集各平台热榜",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := trending.NewClient()

			var boards []trending.Board
			if noCache || len(sources) > 0 {
				boards = client.Fetch(sources, limit)
			} else {
				boards = client.FetchAll(limit)
			}

			if jsonMode {
				return printJSON(boards)
			}
			fmt.Println(trending.FormatText(boards, limit))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&sources, "source", "s", nil, "数据源（可多次指定）: baidu/toutiao/bilibili")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "每源返回条数")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "跳过缓存")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "输出 JSON 格式")

	cmd.AddCommand(newTopicsCmd(), newSourcesCmd())
	return cmd
}

func newTopicsCmd() *cobra.Command {
	var (
		limit    int
		jsonMode bool
	)

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "提取去重后的热门话题（创作选题用）",
		RunE: func(cmd *cobra.Command, args []string) error {
			topics := trending.NewClient().TopTopics(limit)
			if jsonMode {
				return printJSON(topics)
			}
			fmt.Printf("🔥 热门话题 Top %d:\n\n", len(topics))
			for i, t := range topics {
				fmt.Printf("  %d. %s  (%s)\n", i+1, t.Title, t.Source)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "返回条数")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "输出 JSON 格式")
	return cmd
}

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "列出支持的数据源",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range trending.Sources() {
				fmt.Printf("  %s — %s\n", key, trending.SourceName(key))
			}
			return nil
		},
	}
}
