package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"annwatch/internal/api"
)

// newServeCmd creates the 'serve' subcommand exposing the status HTTP
// endpoint: /healthz, /state (the persisted document) and /metrics.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serves the status and metrics HTTP endpoint",

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			log := appInstance.logger

			server := &http.Server{
				Addr:              fmt.Sprintf(":%d", appInstance.cfg.ServerPort),
				Handler:           api.NewServer(appInstance.store, log).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("Status server listening", zap.String("addr", server.Addr))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return fmt.Errorf("status server: %w", err)
			case sig := <-sigCh:
				log.Info("Shutting down", zap.String("signal", sig.String()))
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
