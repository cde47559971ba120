// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/freerank/internal/cmd/constants"
)

// Flags holds global common flags across all commands.
type Flags struct {
	Output   string
	Quiet    bool
	Verbose  bool
	NoColor  bool
	LogLevel string
}

// AddFlags adds common flags to the root command.
func AddFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.PersistentFlags().StringVarP(&flags.Output, "format", "f", "",
		"Output format: "+strings.Join([]string{
			constants.FormatTable, constants.FormatWide, constants.FormatJSON, constants.FormatYAML,
		}, ", "))
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", "", "")
	_ = cmd.PersistentFlags().MarkHidden("output") // Hidden but functional

	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false,
		"Only log errors")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false,
		"Log debug output")
	cmd.PersistentFlags().BoolVar(&flags.NoColor, "no-color", false,
		"Disable colored output")
	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "",
		"Log level: trace, debug, info, warn, error")

	return flags
}

// Parse extracts global flags from the command hierarchy.
// This is useful for subcommands that need to access global flags when
// they weren't passed the flags struct directly.
func Parse(cmd *cobra.Command) (*Flags, error) {
	root := cmd
	for root.Parent() != nil {
		root = root.Parent()
	}

	output, _ := root.PersistentFlags().GetString("format")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")
	logLevel, _ := root.PersistentFlags().GetString("log-level")

	return &Flags{
		Output:   output,
		Quiet:    quiet,
		Verbose:  verbose,
		NoColor:  noColor,
		LogLevel: logLevel,
	}, nil
}
