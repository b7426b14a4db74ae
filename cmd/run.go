package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRunCmd creates the 'run' subcommand: one monitoring cycle, then exit.
// The process exits 0 whenever the cycle completes, including cycles that
// record a failure in the state document; the external scheduler should not
// treat a monitored-site outage as a job failure.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Executes exactly one monitoring cycle",
		Long: `Fetches the target page once, matches extracted announcements against the
configured keywords, notifies on anything new, and persists the updated state
document. Intended to be invoked by an external scheduler such as cron or a
CI workflow.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := appInstance.controller.Run(cmd.Context()); err != nil {
				return fmt.Errorf("run cycle: %w", err)
			}
			return nil
		},
	}
}
