package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/fngate/internal/config"
	"github.com/harrison/fngate/internal/filelock"
	"github.com/harrison/fngate/internal/gate"
)

// NewBaselineCommand creates the baseline command, which freezes the
// current set of over-threshold functions into the config file's
// allowlist so existing debt stops failing the gate.
func NewBaselineCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "baseline [root]...",
		Short: "Write current over-threshold functions to the allowlist",
		Long: `Scan the roots and rewrite the config file with every currently
over-threshold function added to the allowlist. Subsequent check runs
then fail only on new violations.

The config file is written atomically under a file lock, so concurrent
CI jobs sharing a workspace cannot interleave writes.

Examples:
  fngate baseline src
  fngate baseline src --threshold 80 --config ci/.fngate.yaml`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBaseline(cmd, args, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", config.DefaultConfigPath, "path to config file")
	cmd.Flags().StringVar(&flags.ext, "ext", "", "file extension to scan (default from config, .rs)")
	cmd.Flags().IntVarP(&flags.threshold, "threshold", "t", 0, "maximum function length in lines (default from config, 100)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "files scanned concurrently (default from config, 1)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug diagnostics")

	return cmd
}

// runBaseline scans with an empty allowlist and writes every violation
// back into the config file as an allowlist entry.
func runBaseline(cmd *cobra.Command, args []string, flags *checkFlags) error {
	cfg, err := loadCheckConfig(cmd, args, flags)
	if err != nil {
		return err
	}

	log := newRunLogger(cmd.ErrOrStderr(), cfg.LogLevel, flags)

	// Evaluate without the existing allowlist so entries that are no
	// longer over the threshold drop out of the baseline.
	rep, _, err := gate.Run(cmd.Context(), gate.Options{
		Roots:     cfg.Roots,
		Extension: cfg.Extension,
		Threshold: cfg.Threshold,
		Workers:   cfg.Workers,
		Logger:    log,
	})
	if err != nil {
		return err
	}

	entries := make([]string, 0, len(rep.Violations))
	for _, v := range rep.Violations {
		entries = append(entries, v.Key())
	}
	cfg.Allowlist = entries

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := filelock.LockAndWrite(flags.configPath, data); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d allowlist entry(ies) to %s\n", len(entries), flags.configPath)
	return nil
}
