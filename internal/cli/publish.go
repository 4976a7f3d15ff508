package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jogholy/xhs-publisher/internal/browser"
	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/media"
	"github.com/jogholy/xhs-publisher/internal/publisher"
	"github.com/jogholy/xhs-publisher/internal/report"
	"github.com/jogholy/xhs-publisher/internal/types"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/spf13/cobra"
)

func newPublishCmd() *cobra.Command {
	var (
		title       string
		content     string
		tags        string
		images      string
		file        string
		dryRun      bool
		headless    bool
		noAutoImage bool
		maxImages   int
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "发布图文笔记",
		RunE: func(cmd *cobra.Command, args []string) error {
			note := &types.NoteTask{
				Title:   title,
				Content: content,
				Tags:    splitComma(tags),
				Images:  splitComma(images),
			}
			if file != "" {
				if err := fillFromFile(note, file); err != nil {
					return err
				}
			}
			if note.Title == "" || note.Content == "" {
				_ = printJSON(map[string]any{"success": false, "error": "必须提供标题和正文"})
				return fmt.Errorf("必须提供标题和正文")
			}

			session, err := browser.NewSession(config.Config.BrowserDataPath, resolveHeadless(cmd, headless))
			if err != nil {
				return err
			}
			defer session.Close()

			if !session.CheckLogin() {
				_ = printJSON(map[string]any{"success": false, "error": "未登录，请先执行 login 命令"})
				return fmt.Errorf("未登录")
			}

			pub := publisher.New(session, media.NewStudio())
			result := pub.Publish(cmd.Context(), note, publisher.Options{
				DryRun:    dryRun,
				AutoImage: !noAutoImage,
				MaxImages: maxImages,
			})

			if _, err := report.Save(note, result); err != nil {
				utils.Warn(fmt.Sprintf("发布报告保存失败: %v", err))
			}
			if err := printJSON(result); err != nil {
				return err
			}
			if !result.Success() {
				return fmt.Errorf("发布未确认成功: %s", result.Outcome.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "笔记标题")
	cmd.Flags().StringVar(&content, "content", "", "笔记正文")
	cmd.Flags().StringVar(&tags, "tags", "", "标签，逗号分隔")
	cmd.Flags().StringVar(&images, "images", "", "图片路径，逗号分隔")
	cmd.Flags().StringVar(&file, "file", "", "从 JSON 文件读取内容（generate 命令的输出）")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "试运行，填写但不提交")
	cmd.Flags().BoolVar(&headless, "headless", false, "无头模式运行")
	cmd.Flags().BoolVar(&noAutoImage, "no-auto-image", false, "禁用自动 AI 配图")
	cmd.Flags().IntVar(&maxImages, "max-images", 0, "图片数量上限（0 为平台默认）")
	return cmd
}

// fillFromFile 从 JSON 文件补齐命令行没给的字段
func fillFromFile(note *types.NoteTask, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("失败: 读取内容文件 - %w", err)
	}
	var fromFile types.NoteTask
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("失败: 解析内容文件 - %w", err)
	}

	if note.Title == "" {
		note.Title = fromFile.Title
	}
	if note.Content == "" {
		note.Content = fromFile.Content
	}
	if len(note.Tags) == 0 {
		note.Tags = fromFile.Tags
	}
	if len(note.Images) == 0 {
		note.Images = fromFile.Images
	}
	if note.OverflowText == "" {
		note.OverflowText = fromFile.OverflowText
	}
	return nil
}

// splitComma 拆分逗号分隔的参数，去掉空项
func splitComma(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
