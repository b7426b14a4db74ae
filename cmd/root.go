// Package cmd defines and implements the CLI commands for the annwatch executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"annwatch/internal/clock/system"
	"annwatch/internal/config"
	"annwatch/internal/logging"
	"annwatch/internal/monitor"
	"annwatch/internal/notify"
	"annwatch/internal/state"
)

var cfgFile string

// appKeyType is the key for storing the app in the command context.
type appKeyType string

const appKey appKeyType = "app"

// app holds the wired services shared by all subcommands.
type app struct {
	cfg        config.Config
	logger     *zap.Logger
	store      *state.FileStore
	controller *monitor.Controller
}

// newApp is the application factory. It's a variable so tests can replace it
// with a mock factory.
var newApp = buildApp

func buildApp(_ context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogDevelopment)
	if err != nil {
		return nil, err
	}

	store := state.NewFileStore(cfg.StateFile, logger)

	fetcher, err := monitor.NewCollyFetcher(monitor.FetcherConfig{
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.HTTPTimeout(),
		TLSInsecure: cfg.TLSInsecure,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}

	notifier, err := notify.NewClient(notify.ClientConfig{
		BotToken: cfg.TelegramBotToken,
		Timeout:  cfg.HTTPTimeout(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("init telegram client: %w", err)
	}

	controller := monitor.NewController(
		monitor.Config{
			TargetURL:         cfg.TargetURL,
			Keywords:          cfg.Keywords(),
			Threshold:         cfg.SimilarityThreshold,
			ErrorThrottle:     cfg.ErrorThrottle(),
			ChannelID:         cfg.TelegramChannelID,
			OwnerChatID:       cfg.TelegramOwnerChatID,
			MonitoringEnabled: cfg.MonitoringEnabled,
		},
		fetcher,
		monitor.NewHTMLExtractor(logger),
		store,
		notifier,
		system.New(),
		logger,
	)

	return &app{cfg: cfg, logger: logger, store: store, controller: controller}, nil
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annwatch",
		Short: "Monitors a web page for new announcements and notifies Telegram.",
		Long: `annwatch periodically checks a single web page for announcements that
fuzzy-match a configured keyword set, deduplicates against a persisted JSON
state document, and notifies a Telegram channel exactly once per new
announcement. Run status is written to the state document for consumption
by a static status page.`,

		// Build and inject the application before any subcommand runs.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, appInstance))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(*app); ok && appInstance != nil {
				_ = appInstance.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (optional; env vars always apply)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

func resolveApp(ctx context.Context) (*app, error) {
	appInstance, ok := ctx.Value(appKey).(*app)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
