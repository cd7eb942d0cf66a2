package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for fngate
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fngate",
		Short: "CI gate for function length limits",
		Long: `fngate scans source trees for function definitions, measures each
function's physical line extent with a literal-aware brace-depth scan,
and fails the build when a function exceeds the configured line
threshold unless it is allowlisted.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewBaselineCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
