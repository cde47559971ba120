// Package match implements the match command.
package match

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/freerank"
	"github.com/agentstation/freerank/cmd/application"
	"github.com/agentstation/freerank/internal/cmd/globals"
	"github.com/agentstation/freerank/internal/cmd/output"
	"github.com/agentstation/freerank/internal/cmd/table"
	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/listings"
)

// Flags holds the match command flags.
type Flags struct {
	Refresh   bool
	Stats     bool
	Unmatched bool
}

// NewCommand creates the match command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "match",
		GroupID: "core",
		Short:   "Show how each free model was matched",
		Long: `Match runs the matching cascade and prints one line per free model: the
leaderboard model it was bound to and how (alias, exact (norm), fuzzy (score)
or unmatched). Nothing is written to disk besides the cache.`,
		Example: `  freerank match                    # Table of matches
  freerank match --format wide      # Add normalized names and scores
  freerank match --unmatched        # Only models without a leaderboard row
  freerank match --stats -f json    # Counts per match kind`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			return Run(ctx, app, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "ignore cached data and fetch again")
	cmd.Flags().BoolVar(&flags.Stats, "stats", false, "print counts per match kind only")
	cmd.Flags().BoolVar(&flags.Unmatched, "unmatched", false, "only show unmatched models")

	return cmd
}

// Run matches and prints the results.
func Run(ctx context.Context, app application.Application, w io.Writer, flags *Flags) error {
	fr, err := app.Freerank(freerank.WithRefresh(flags.Refresh))
	if err != nil {
		return err
	}
	result, err := fr.Reconcile(ctx)
	if err != nil {
		return err
	}

	format := &globals.Flags{Output: app.OutputFormat()}
	if flags.Stats {
		return output.NewFormatter(output.DetectFormat(format.Output)).Format(w, result.Stats)
	}

	matches := result.Matches
	if flags.Unmatched {
		matches = unmatched(matches)
	}
	wide := output.DetectFormat(format.Output) == output.FormatWide
	return output.Write(w, format, table.MatchesToTableData(matches, wide), output.MatchRecords(matches))
}

func unmatched(results []listings.MatchResult) []listings.MatchResult {
	var out []listings.MatchResult
	for _, r := range results {
		if !r.Matched() {
			out = append(out, r)
		}
	}
	return out
}
