package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"posterbot/internal/config"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration",
		Long: `Validate the effective configuration.

This command checks:
- Configuration file presence
- Required messenger secrets
- Responder mode, timeouts and port
- Analytics setup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := requireCLIContext(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd.OutOrStdout(), cliCtx)
		},
	}
}

type checkResult struct {
	name    string
	status  string // ok, warning, error
	message string
}

func runCheck(w io.Writer, cliCtx *CLIContext) error {
	cfg := cliCtx.Config

	results := []checkResult{
		checkConfigFile(cliCtx.ConfigPath),
		checkSecrets(cfg),
		checkValues(cfg),
		checkSignaturePolicy(cfg),
		checkAnalytics(cfg),
	}

	hasErrors := false
	for _, r := range results {
		icon := "✓"
		switch r.status {
		case "warning":
			icon = "!"
		case "error":
			icon = "✗"
			hasErrors = true
		}
		fmt.Fprintf(w, "%s %s: %s\n", icon, r.name, r.message)
	}

	fmt.Fprintln(w)
	if hasErrors {
		fmt.Fprintln(w, "Some checks failed. Please address the issues above.")
		return cfg.Validate()
	}
	fmt.Fprintln(w, "All checks passed. posterbot is ready to serve.")
	return nil
}

func checkConfigFile(path string) checkResult {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return checkResult{
			name:    "Config File",
			status:  "warning",
			message: fmt.Sprintf("Not found: %s (using defaults and environment)", path),
		}
	}
	return checkResult{name: "Config File", status: "ok", message: fmt.Sprintf("Found: %s", path)}
}

func checkSecrets(cfg *config.Config) checkResult {
	if missing := cfg.Missing(); len(missing) > 0 {
		return checkResult{
			name:    "Secrets",
			status:  "error",
			message: fmt.Sprintf("Missing %v", missing),
		}
	}
	return checkResult{name: "Secrets", status: "ok", message: "app secret, verify token and page token configured"}
}

func checkValues(cfg *config.Config) checkResult {
	// 只看非密钥部分，密钥已由 checkSecrets 报告
	probe := *cfg
	probe.Messenger.AppSecret = "x"
	probe.Messenger.VerifyToken = "x"
	probe.Messenger.PageAccessToken = "x"
	if err := probe.Validate(); err != nil {
		return checkResult{name: "Settings", status: "error", message: err.Error()}
	}
	return checkResult{
		name:   "Settings",
		status: "ok",
		message: fmt.Sprintf("listen %s, mode %s, send timeout %s",
			cfg.Gateway.Addr(), cfg.Responder.Mode, cfg.Messenger.SendTimeout),
	}
}

func checkSignaturePolicy(cfg *config.Config) checkResult {
	if !cfg.Messenger.RequireSignature {
		return checkResult{
			name:    "Signatures",
			status:  "warning",
			message: "unsigned requests are accepted (set messenger.require_signature in production)",
		}
	}
	return checkResult{name: "Signatures", status: "ok", message: "unsigned requests are rejected"}
}

func checkAnalytics(cfg *config.Config) checkResult {
	if !cfg.Analytics.Enabled() {
		return checkResult{name: "Analytics", status: "ok", message: "disabled"}
	}
	return checkResult{name: "Analytics", status: "ok", message: "PostHog capture enabled"}
}
