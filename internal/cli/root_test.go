package cli

import (
	"testing"

	"github.com/jogholy/xhs-publisher/internal/config"

	"github.com/spf13/cobra"
)

func headlessTestCmd(t *testing.T, args ...string) (*cobra.Command, *bool) {
	t.Helper()
	var headless bool
	cmd := &cobra.Command{Use: "publish"}
	cmd.Flags().BoolVar(&headless, "headless", false, "")
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("解析参数失败: %v", err)
	}
	return cmd, &headless
}

func TestResolveHeadless(t *testing.T) {
	orig := config.Config
	defer func() { config.Config = orig }()

	t.Run("未给参数时回退到配置", func(t *testing.T) {
		config.Config = &config.AppConfig{Headless: true}
		cmd, flag := headlessTestCmd(t)
		if !resolveHeadless(cmd, *flag) {
			t.Error("配置 headless=true 时应无头运行")
		}

		config.Config = &config.AppConfig{Headless: false}
		if resolveHeadless(cmd, *flag) {
			t.Error("配置 headless=false 时应有头运行")
		}
	})

	t.Run("命令行参数优先于配置", func(t *testing.T) {
		config.Config = &config.AppConfig{Headless: false}
		cmd, flag := headlessTestCmd(t, "--headless")
		if !resolveHeadless(cmd, *flag) {
			t.Error("显式 --headless 应覆盖配置")
		}

		config.Config = &config.AppConfig{Headless: true}
		cmd, flag = headlessTestCmd(t, "--headless=false")
		if resolveHeadless(cmd, *flag) {
			t.Error("显式 --headless=false 应覆盖配置")
		}
	})
}
