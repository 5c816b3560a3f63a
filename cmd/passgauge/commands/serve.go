package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MEKXH/passgauge/internal/gateway"
	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve password feedback over HTTP",
		Long: `Serve password feedback over HTTP for form front-ends.

The endpoint is advisory only. Services that store passwords must enforce
their own policy.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	addPolicyFlags(cmd)
	cmd.Flags().String("host", "", "Override gateway.host")
	cmd.Flags().Int("port", 0, "Override gateway.port")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, ev, err := resolvePolicy(cmd)
	if err != nil {
		return err
	}

	gwCfg := cfg.Gateway
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		gwCfg.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		if port < 1 || port > 65535 {
			return fmt.Errorf("--port must be between 1 and 65535, got %d", port)
		}
		gwCfg.Port = port
	}

	server := gateway.New(gwCfg, ev)
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("gateway server failed: %w", err)
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "passgauge gateway running at http://%s\nPress Ctrl+C to stop.\n", server.Addr())

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		slog.Error("gateway failed", "error", runErr)
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	slog.Info("shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("gateway shutdown failed", "error", err)
	}

	return runErr
}
