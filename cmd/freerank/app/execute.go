package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	aliasescmd "github.com/agentstation/freerank/cmd/freerank/cmd/aliases"
	cachecmd "github.com/agentstation/freerank/cmd/freerank/cmd/cache"
	matchcmd "github.com/agentstation/freerank/cmd/freerank/cmd/match"
	normalizecmd "github.com/agentstation/freerank/cmd/freerank/cmd/normalize"
	reportcmd "github.com/agentstation/freerank/cmd/freerank/cmd/report"
	"github.com/agentstation/freerank/internal/cmd/globals"
	"github.com/agentstation/freerank/internal/cmd/output"
	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/logging"
)

// Execute runs the freerank CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "freerank",
		Short:   "Rank OpenRouter's free models by leaderboard metrics",
		Version: a.version,
		Long: `Freerank lists the free models on OpenRouter and joins each one with its
row on the Artificial Analysis leaderboard, so the free models can be
compared by intelligence, speed and benchmark scores.

Models are joined by an explicit alias, then by normalized name, then by
fuzzy name similarity. Fetched data is cached; use --refresh to refetch.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.freerank.yaml)")
	globals.AddFlags(rootCmd)

	rootCmd.SetVersionTemplate("freerank {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	if _, err := output.ParseFormat(flags.Output); err != nil {
		return err
	}

	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfigFile(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor, flags.Output, flags.LogLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)

	if a.config.ConfigFile != "" {
		a.logger.Debug().Str("file", a.config.ConfigFile).Msg("Using config file")
	}
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(reportcmd.NewCommand(a))
	rootCmd.AddCommand(matchcmd.NewCommand(a))
	rootCmd.AddCommand(normalizecmd.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(aliasescmd.NewCommand(a))
	rootCmd.AddCommand(cachecmd.NewCommand(a))

	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("freerank %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		if h := hint(err); h != "" {
			_, _ = os.Stderr.WriteString("Hint: " + h + "\n")
		}
		os.Exit(1)
	}
}

// hint suggests a next step for failures the user can act on.
func hint(err error) string {
	switch {
	case errors.IsRateLimited(err):
		return "OpenRouter is rate limiting requests, set OPENROUTER_API_KEY or retry later"
	case errors.IsSourceUnavailable(err):
		return "the upstream service returned a server error, retry later"
	case errors.IsScrapeError(err):
		return "check that Chromium can start (browser_bin) and retry with --refresh"
	case errors.IsValidationError(err):
		return "check the flag and config values, see --help"
	}
	return ""
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
