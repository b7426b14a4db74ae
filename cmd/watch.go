package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newWatchCmd creates the 'watch' subcommand, which keeps the process alive
// and runs cycles on a cron schedule. Cycles never overlap: the scheduler
// skips a tick while the previous cycle is still running.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Runs monitoring cycles on a schedule until interrupted",
		Long: `Runs the monitoring cycle repeatedly according to WATCH_SCHEDULE (a cron
expression or @every interval). Useful for long-lived deployments where no
external scheduler is available.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			log := appInstance.logger

			scheduler := cron.New(cron.WithChain(
				cron.SkipIfStillRunning(cron.DiscardLogger),
			))
			_, err = scheduler.AddFunc(appInstance.cfg.WatchSchedule, func() {
				if err := appInstance.controller.Run(cmd.Context()); err != nil {
					log.Error("Scheduled cycle failed to persist", zap.Error(err))
				}
			})
			if err != nil {
				return fmt.Errorf("invalid watch schedule %q: %w", appInstance.cfg.WatchSchedule, err)
			}

			log.Info("Watch mode started", zap.String("schedule", appInstance.cfg.WatchSchedule))
			scheduler.Start()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				log.Info("Shutting down", zap.String("signal", sig.String()))
			case <-cmd.Context().Done():
				log.Info("Context canceled, shutting down")
			}

			// Wait for an in-flight cycle to finish so state is persisted.
			<-scheduler.Stop().Done()
			return nil
		},
	}
}
