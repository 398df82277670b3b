package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"posterbot/internal/config"
	"posterbot/internal/sender"
)

// NewSendCmd creates the send command.
func NewSendCmd() *cobra.Command {
	var (
		postback bool
		mode     string
	)

	cmd := &cobra.Command{
		Use:   "send <psid> <keyword|payload>",
		Short: "Send the selected reply to a user",
		Long: `Send the reply that the given keyword or payload selects to a
page-scoped user id, synchronously. Requires messenger.page_access_token.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := requireCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config

			if cfg.Messenger.PageAccessToken == "" {
				return fmt.Errorf("%w: messenger.page_access_token", config.ErrConfigMissing)
			}

			sel, err := newSelector(cfg, mode)
			if err != nil {
				return err
			}

			psid, trigger := args[0], args[1]
			msg := sel.ForText(psid, trigger)
			if postback {
				msg = sel.ForPayload(psid, trigger)
			}

			timeout := cfg.Messenger.SendTimeout
			if timeout <= 0 {
				timeout = sender.DefaultTimeout
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := newSender(cfg).Send(ctx, msg); err != nil {
				return fmt.Errorf("send to %s: %w", psid, err)
			}

			cliCtx.Log().Info().Str("recipient_id", psid).Str("kind", msg.Kind()).Msg("reply sent")
			fmt.Fprintf(cmd.OutOrStdout(), "Sent %s reply to %s\n", msg.Kind(), psid)
			return nil
		},
	}

	cmd.Flags().BoolVar(&postback, "postback", false, "treat the second argument as a postback payload")
	cmd.Flags().StringVar(&mode, "mode", "", "responder mode (generic or images, overrides config)")

	return cmd
}
