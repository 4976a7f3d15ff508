package cli

import (
	"fmt"
	"strings"

	"github.com/jogholy/xhs-publisher/internal/browser"
	"github.com/jogholy/xhs-publisher/internal/comments"
	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/content"

	"github.com/spf13/cobra"
)

func newCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "评论互动：抓取评论并用 AI 自动回复",
	}
	cmd.AddCommand(newCommentsFetchCmd(), newCommentsReplyCmd(), newCommentsStatsCmd())
	return cmd
}

// authedSession 打开已登录的浏览器会话，未登录直接报错
func authedSession(cmd *cobra.Command, headless bool) (*browser.Session, error) {
	session, err := browser.NewSession(config.Config.BrowserDataPath, resolveHeadless(cmd, headless))
	if err != nil {
		return nil, err
	}
	if !session.CheckLogin() {
		_ = session.Close()
		_ = printJSON(map[string]any{"success": false, "error": "未登录，请先执行 login 命令"})
		return nil, fmt.Errorf("未登录")
	}
	return session, nil
}

func newCommentsFetchCmd() *cobra.Command {
	var (
		limit    int
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "抓取评论列表",
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
			fetched, err := comments.Fetch(page, limit)
			if err != nil {
				return err
			}
			return printJSON(fetched)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "最多抓取条数")
	cmd.Flags().BoolVar(&headless, "headless", false, "无头模式运行")
	return cmd
}

func newCommentsReplyCmd() *cobra.Command {
	var (
		limit    int
		style    string
		dryRun   bool
		headless bool
	)

	cmd := &cobra.Command{
		Use:   "reply",
		Short: "自动回复未回复的评论",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := content.NewGenerator()
			if err != nil {
				return err
			}

			session, err := authedSession(cmd, headless)
			if err != nil {
				return err
			}
			defer session.Close()

			page, err := session.Page()
			if err != nil {
				return err
			}
			results, err := comments.AutoReply(cmd.Context(), page, gen, comments.NewStore(), limit, style, dryRun)
			if err != nil {
				return err
			}

			fmt.Println(comments.FormatResults(results))
			return printJSON(results)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "最多处理条数")
	cmd.Flags().StringVarP(&style, "style", "s", "friendly",
		fmt.Sprintf("回复风格 (%s)", strings.Join(comments.ReplyStyles(), "/")))
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "只生成回复不实际发送")
	cmd.Flags().BoolVar(&headless, "headless", false, "无头模式运行")
	return cmd
}

func newCommentsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "回复统计",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(comments.NewStore().Summary())
		},
	}
}
