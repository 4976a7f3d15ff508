// Package cli 实现 xhsauto 命令行入口。
// 结果统一以 JSON 打到标准输出，日志走标准错误，方便脚本串联。
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/spf13/cobra"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:           "xhsauto",
	Short:         "小红书图文笔记自动发布工具",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(); err != nil {
			return fmt.Errorf("失败: 初始化配置 - %w", err)
		}
		if debugFlag {
			config.Config.DebugMode = true
		}
		if err := utils.InitLogger(); err != nil {
			return fmt.Errorf("失败: 初始化日志 - %w", err)
		}
		return nil
	},
}

// Execute 注册子命令并执行
func Execute(ctx context.Context) error {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "输出调试日志")

	rootCmd.AddCommand(
		newLoginCmd(),
		newStatusCmd(),
		newPublishCmd(),
		newGenerateCmd(),
		newStylesCmd(),
		newCoverCmd(),
		newTrendingCmd(),
		newStatsCmd(),
		newCommentsCmd(),
		newEngagementCmd(),
		newKeysCmd(),
	)
	return rootCmd.ExecuteContext(ctx)
}

// resolveHeadless 取无头模式的最终值
// 命令行显式给了 --headless 用命令行的，否则回退到配置（config.yaml / XHS_HEADLESS）
func resolveHeadless(cmd *cobra.Command, flagValue bool) bool {
	if cmd.Flags().Changed("headless") {
		return flagValue
	}
	return config.Config.Headless
}

// printJSON 把结果输出到标准输出，中文不转义
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
