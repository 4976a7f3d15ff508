package cli

import (
	"github.com/jogholy/xhs-publisher/internal/content"
	"github.com/jogholy/xhs-publisher/internal/cover"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		style string
		extra string
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "generate <主题>",
		Short: "AI 生成一篇小红书笔记",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := content.NewGenerator()
			if err != nil {
				return err
			}

			note, err := gen.Generate(cmd.Context(), args[0], style, extra)
			if err != nil {
				return err
			}

			output := struct {
				*content.GeneratedNote
				SavedTo string `json:"saved_to,omitempty"`
			}{GeneratedNote: note}

			if save {
				path, err := note.Save()
				if err != nil {
					return err
				}
				output.SavedTo = path
			}
			return printJSON(output)
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "default", "文案风格（styles 命令查看可选项）")
	cmd.Flags().StringVarP(&extra, "extra", "e", "", "额外指令")
	cmd.Flags().BoolVar(&save, "save", false, "保存到内容目录")
	return cmd
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "列出可用的文案风格与封面模板",
		RunE: func(cmd *cobra.Command, args []string) error {
			type entry struct {
				ID          string `json:"id"`
				Name        string `json:"name"`
				Description string `json:"description,omitempty"`
			}

			var styles []entry
			for _, t := range content.ListTemplates() {
				styles = append(styles, entry{ID: t.ID, Name: t.Name, Description: t.Description})
			}
			var covers []entry
			for _, t := range cover.ListCoverTemplates() {
				covers = append(covers, entry{ID: t.ID, Name: t.Name})
			}
			return printJSON(map[string]any{
				"content_styles":  styles,
				"cover_templates": covers,
			})
		},
	}
}

func newCoverCmd() *cobra.Command {
	var (
		subtitle string
		template string
	)

	cmd := &cobra.Command{
		Use:   "cover <标题>",
		Short: "本地渲染一张封面图",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cover.GenerateCover(args[0], subtitle, template)
			if err != nil {
				return err
			}
			return printJSON(map[string]any{
				"success":  true,
				"path":     path,
				"template": template,
			})
		},
	}

	cmd.Flags().StringVar(&subtitle, "subtitle", "", "副标题")
	cmd.Flags().StringVarP(&template, "template", "t", "random", "封面模板（random 为随机）")
	return cmd
}
