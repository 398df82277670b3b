package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"posterbot/internal/gateway"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		Long: `Start the webhook server.

This command starts the HTTP server that provides:
- GET  /webhook   subscription handshake
- POST /webhook   signed event intake
- GET  /health    liveness probe

The server will listen on the configured host and port (default: 0.0.0.0:5000).
Startup fails if messenger.app_secret, messenger.verify_token or
messenger.page_access_token is not configured.`,
		Example: `  # Start server with default configuration
  posterbot serve

  # Start server with custom port
  posterbot serve --port 8080

  # Secrets from the environment
  POSTERBOT_MESSENGER_APP_SECRET=... posterbot serve`,
		RunE: runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "port to listen on (overrides config)")
	cmd.Flags().String("host", "", "host to bind to (overrides config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cliCtx, err := requireCLIContext(cmd)
	if err != nil {
		return err
	}

	// 复制一份，flag 覆盖不影响已加载的配置
	cfg := *cliCtx.Config
	log := cliCtx.Log()

	// Override config with flags if provided
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Gateway.Port = port
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.Gateway.Host = host
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	reporter, err := newReporter(&cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := reporter.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to flush analytics")
		}
	}()

	d, err := newDispatcher(&cfg, reporter)
	if err != nil {
		return err
	}
	srv := gateway.NewServer(&cfg, d, Version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("address", fmt.Sprintf("http://%s", cfg.Gateway.Addr())).
		Str("mode", cfg.Responder.Mode).
		Bool("analytics", cfg.Analytics.Enabled()).
		Bool("require_signature", cfg.Messenger.RequireSignature).
		Msg("Starting posterbot server...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server error")
		return err
	}

	log.Info().Msg("Server stopped")
	return nil
}
