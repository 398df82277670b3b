package cli

import (
	"fmt"
	"io"
	"os"

	"posterbot/internal/config"

	"github.com/spf13/cobra"
)

// InitOptions init 命令选项
type InitOptions struct {
	Force bool
	Path  string
}

// NewInitCmd 创建 init 命令
func NewInitCmd() *cobra.Command {
	opts := &InitOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter configuration file with every setting at its default.
The three messenger secrets are left empty; fill them in or provide them
through POSTERBOT_MESSENGER_* environment variables.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cliCtx := GetCLIContext(cmd); cliCtx != nil {
				opts.Path = cliCtx.ConfigPath
			}
			return RunInit(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite existing configuration")

	return cmd
}

// RunInit 执行初始化
func RunInit(w io.Writer, opts *InitOptions) error {
	configPath := opts.Path
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
	}

	// 检查是否已存在
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
	}

	if err := config.SaveTo(config.Default(), configPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(w, "Initialized posterbot config at %s\n", configPath)
	fmt.Fprintln(w, "  Set messenger.app_secret, messenger.verify_token and messenger.page_access_token before serving.")

	return nil
}
