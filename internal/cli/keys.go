package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jogholy/xhs-publisher/internal/keystore"

	"github.com/spf13/cobra"
)

// 解密密码从环境变量取，避免出现在 shell 历史里
const passwordEnv = "XHS_KEY_PASSWORD"

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "管理加密存储的 API Key",
	}
	cmd.AddCommand(newKeysSetCmd(), newKeysGetCmd(), newKeysListCmd(), newKeysStatusCmd())
	return cmd
}

func openStore() *keystore.Store {
	return keystore.New(os.Getenv(passwordEnv))
}

func newKeysSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <名称> [值]",
		Short: "设置或更新一个 Key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var value string
			if len(args) == 2 {
				value = args[1]
			} else {
				fmt.Fprintf(os.Stderr, "输入 %s 的值: ", name)
				input, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return fmt.Errorf("失败: 读取输入 - %w", err)
				}
				value = strings.TrimSpace(input)
			}
			if value == "" {
				return fmt.Errorf("Key 值不能为空")
			}

			store := openStore()
			if err := store.Set(name, value); err != nil {
				return err
			}
			return printJSON(map[string]any{
				"success": true,
				"key":     name,
				"file":    store.Path(),
			})
		},
	}
}

func newKeysGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <名称>",
		Short: "读取一个 Key（打码显示）",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := openStore().Get(args[0])
			if err != nil {
				_ = printJSON(map[string]any{"key": args[0], "error": err.Error()})
				return err
			}
			return printJSON(map[string]any{
				"key":   args[0],
				"value": keystore.MaskValue(value),
			})
		},
	}
}

func newKeysListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出已存储的 Key 名称",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			if !store.Exists() {
				return printJSON(map[string]any{"keys": []string{}, "message": "尚未创建加密存储"})
			}
			keys, err := store.List()
			if err != nil {
				return err
			}
			masked := make(map[string]string, len(keys))
			for name, value := range keys {
				masked[name] = keystore.MaskValue(value)
			}
			return printJSON(map[string]any{"keys": masked})
		},
	}
}

func newKeysStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "检查加密存储状态",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := openStore()
			return printJSON(map[string]any{
				"encrypted_file_exists": store.Exists(),
				"encrypted_file":        store.Path(),
			})
		},
	}
}
