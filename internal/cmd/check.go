package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/fngate/internal/config"
	"github.com/harrison/fngate/internal/gate"
	"github.com/harrison/fngate/internal/history"
	"github.com/harrison/fngate/internal/logger"
	"github.com/harrison/fngate/internal/report"
)

// checkFlags holds the flag values for the check command.
type checkFlags struct {
	configPath string
	ext        string
	threshold  int
	allowlist  []string
	workers    int
	verbose    bool
	quiet      bool
}

// NewCheckCommand creates the check command, the gate itself.
func NewCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [root]...",
		Short: "Scan roots and fail when functions exceed the line threshold",
		Long: `Scan one or more root directories for function definitions and fail
when any function's physical line extent exceeds the threshold.

Roots, threshold, extension and the allowlist can come from the config
file (.fngate.yaml by default); CLI flags and arguments override it.
Allowlist entries have the form 'path:function' with the path relative
to its scan root.

Exit code: 0 when no unsuppressed violation exists, 1 otherwise.

Examples:
  # Scan src/ with defaults (.rs files, 100-line threshold)
  fngate check src

  # Two roots, stricter limit
  fngate check src crates/core/src --threshold 80

  # Exempt a known-long function
  fngate check src --allowlist src/db/mod.rs:rebuild_index

  # Scan Go sources instead
  fngate check . --ext .go

  # Parallel scan, verbose diagnostics
  fngate check src --workers 8 --verbose`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", config.DefaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&flags.ext, "ext", "", "file extension to scan (default from config, .rs)")
	cmd.Flags().IntVarP(&flags.threshold, "threshold", "t", 0, "maximum function length in lines (default from config, 100)")
	cmd.Flags().StringArrayVar(&flags.allowlist, "allowlist", nil, "path:function entry to exempt (repeatable)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "files scanned concurrently (default from config, 1)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug diagnostics")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress diagnostics, print only violations")

	return cmd
}

// runCheck loads configuration, runs the gate, prints the report, records
// history when enabled, and returns an error iff the gate failed.
func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	cfg, err := loadCheckConfig(cmd, args, flags)
	if err != nil {
		return err
	}

	log := newRunLogger(cmd.ErrOrStderr(), cfg.LogLevel, flags)

	rep, stats, err := gate.Run(cmd.Context(), gate.Options{
		Roots:     cfg.Roots,
		Extension: cfg.Extension,
		Threshold: cfg.Threshold,
		Allowlist: cfg.Allowlist,
		Workers:   cfg.Workers,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	colorize := false
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		colorize = report.ShouldColorize(f)
	}
	if err := report.Write(cmd.OutOrStdout(), rep, colorize); err != nil {
		return err
	}

	if cfg.History.Enabled {
		if err := recordHistory(cfg, rep, stats); err != nil {
			// History is best-effort bookkeeping; a recording failure must
			// not mask the gate outcome.
			log.Warnf("failed to record run history: %v", err)
		}
	}

	if !rep.Passed() {
		return fmt.Errorf("found %d function(s) over %d lines", len(rep.Violations), cfg.Threshold)
	}
	return nil
}

// loadCheckConfig merges the config file with CLI flags and validates.
func loadCheckConfig(cmd *cobra.Command, args []string, flags *checkFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	var ext *string
	if cmd.Flags().Changed("ext") {
		ext = &flags.ext
	}
	var threshold *int
	if cmd.Flags().Changed("threshold") {
		threshold = &flags.threshold
	}
	var workers *int
	if cmd.Flags().Changed("workers") {
		workers = &flags.workers
	}

	cfg.MergeWithFlags(args, ext, threshold, flags.allowlist, workers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRunLogger builds the diagnostic logger for one invocation.
func newRunLogger(w io.Writer, level string, flags *checkFlags) *logger.ConsoleLogger {
	switch {
	case flags.quiet:
		return logger.NewConsoleLogger(nil, level)
	case flags.verbose:
		return logger.NewConsoleLogger(w, "debug")
	default:
		return logger.NewConsoleLogger(w, level)
	}
}

// recordHistory persists one completed run into the history database.
func recordHistory(cfg *config.Config, rep report.Report, stats gate.Stats) error {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.RecordRun(history.Run{
		Roots:          cfg.Roots,
		Extension:      cfg.Extension,
		Threshold:      cfg.Threshold,
		FilesScanned:   stats.FilesScanned,
		FunctionsFound: stats.FunctionsFound,
	}, rep.Violations)
	return err
}
