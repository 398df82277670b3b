package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"posterbot/internal/responder"
)

// PreviewRecipient is the placeholder recipient id used by preview.
const PreviewRecipient = "PREVIEW_PSID"

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	var (
		postback bool
		mode     string
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "preview [keyword|payload]",
		Short: "Print the Send API request a message would produce",
		Example: `  # Reply to a typed keyword
  posterbot preview help

  # Reply to a postback payload in the walk-through mode
  posterbot preview --postback --mode images QR_ROTATION_3

  # List every known payload
  posterbot preview --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := requireCLIContext(cmd)
			if err != nil {
				return err
			}

			sel, err := newSelector(cliCtx.Config, mode)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if list {
				for _, p := range responder.Payloads() {
					if p == responder.PayloadNone {
						continue
					}
					fmt.Fprintln(out, p)
				}
				return nil
			}

			msg := sel.ForText(PreviewRecipient, args[0])
			if postback {
				msg = sel.ForPayload(PreviewRecipient, args[0])
			}

			data, err := json.MarshalIndent(msg.Request(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal message: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		},
	}

	cmd.Flags().BoolVar(&postback, "postback", false, "treat the argument as a postback payload")
	cmd.Flags().StringVar(&mode, "mode", "", "responder mode (generic or images, overrides config)")
	cmd.Flags().BoolVar(&list, "list", false, "list known postback payloads")

	return cmd
}
