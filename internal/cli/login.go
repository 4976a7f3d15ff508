package cli

import (
	"os"
	"time"

	"github.com/jogholy/xhs-publisher/internal/browser"
	"github.com/jogholy/xhs-publisher/internal/config"
	"github.com/jogholy/xhs-publisher/internal/utils"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var timeoutSec int

	cmd := &cobra.Command{
		Use:   "login",
		Short: "扫码登录小红书",
		RunE: func(cmd *cobra.Command, args []string) error {
			// 登录需要看到二维码，强制有头模式
			session, err := browser.NewSession(config.Config.BrowserDataPath, false)
			if err != nil {
				return err
			}
			defer session.Close()

			if session.CheckLogin() {
				utils.Info("已经登录，无需重复登录")
				shot := ""
				if page, err := session.Page(); err == nil {
					shot, _ = utils.Screenshot(page, "already_logged")
				}
				return printJSON(map[string]any{
					"success":    true,
					"status":     "already_logged_in",
					"screenshot": shot,
				})
			}

			qrShot, err := session.Login(time.Duration(timeoutSec) * time.Second)
			if err != nil {
				_ = printJSON(map[string]any{
					"success":       false,
					"error":         err.Error(),
					"qr_screenshot": qrShot,
				})
				return err
			}
			return printJSON(map[string]any{
				"success":       true,
				"status":        "logged_in",
				"qr_screenshot": qrShot,
			})
		},
	}

	cmd.Flags().IntVar(&timeoutSec, "timeout", 300, "登录超时秒数")
	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "检查登录状态",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := browser.NewSession(config.Config.BrowserDataPath, true)
			if err != nil {
				return err
			}
			defer session.Close()

			return printJSON(map[string]any{
				"logged_in":           session.CheckLogin(),
				"browser_data_exists": browserDataExists(),
				"checked_at":          time.Now().Format(time.RFC3339),
			})
		},
	}
}

// browserDataExists 浏览器会话目录存在且非空
func browserDataExists() bool {
	entries, err := os.ReadDir(config.Config.BrowserDataPath)
	return err == nil && len(entries) > 0
}
