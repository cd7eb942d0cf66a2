package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/fngate/internal/config"
	"github.com/harrison/fngate/internal/history"
)

// NewHistoryCommand creates the history command group for browsing
// recorded runs.
func NewHistoryCommand() *cobra.Command {
	var configPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded gate runs",
		Long: `List runs recorded in the history database. Recording happens during
'fngate check' when history.enabled is set in the config file.

Examples:
  fngate history
  fngate history --limit 5
  fngate history show 4f7c2a31-...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, configPath, limit)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "path to config file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list")

	cmd.AddCommand(newHistoryShowCommand(&configPath))

	return cmd
}

// newHistoryShowCommand creates the 'history show' subcommand.
func newHistoryShowCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the violations recorded for one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, *configPath, args[0])
		},
		SilenceUsage: true,
	}
}

// openHistoryStore opens the store configured in the config file.
func openHistoryStore(configPath string) (*history.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.History.DBPath)
}

// runHistoryList prints recent runs, most recent first.
func runHistoryList(cmd *cobra.Command, configPath string, limit int) error {
	store, err := openHistoryStore(configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
		return nil
	}

	for _, run := range runs {
		outcome := "PASS"
		if !run.Passed {
			outcome = "FAIL"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  threshold=%d files=%d functions=%d violations=%d\n",
			run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), outcome,
			run.Threshold, run.FilesScanned, run.FunctionsFound, run.ViolationCount)
	}
	return nil
}

// runHistoryShow prints one run's violations in the gate's report format.
func runHistoryShow(cmd *cobra.Command, configPath, runID string) error {
	store, err := openHistoryStore(configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	violations, err := store.RunViolations(runID)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No violations recorded for this run.")
		return nil
	}

	for _, v := range violations {
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	}
	return nil
}
