// Package aliases implements the aliases command.
package aliases

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/freerank/cmd/application"
	"github.com/agentstation/freerank/internal/cmd/globals"
	"github.com/agentstation/freerank/internal/cmd/output"
	"github.com/agentstation/freerank/internal/cmd/table"
	"github.com/agentstation/freerank/pkg/aliases"
	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
)

// Flags holds the aliases command flags.
type Flags struct {
	Check   bool
	Strict  bool
	Refresh bool
}

// Record is the structured output for one alias.
type Record struct {
	SourceID   string `json:"source_id" yaml:"source_id"`
	TargetName string `json:"target_name" yaml:"target_name"`
	Stale      *bool  `json:"stale,omitempty" yaml:"stale,omitempty"`
}

// NewCommand creates the aliases command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "aliases",
		GroupID: "management",
		Short:   "List the alias table and check it against the leaderboard",
		Long: `Aliases prints the alias file, which maps OpenRouter model ids to
leaderboard model names and always wins over name matching.

With --check the leaderboard is loaded and every alias whose target name
no longer appears on it is reported as stale. A stale alias does not break
a run; the model just falls through to name matching.`,
		Example: `  freerank aliases
  freerank aliases --check
  freerank aliases --check --strict   # exit non-zero on stale entries`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			return Run(ctx, app, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Check, "check", false, "report aliases whose target is not on the leaderboard")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "with --check, fail when any alias is stale")
	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "with --check, ignore the cached leaderboard")

	return cmd
}

// Run prints the alias table.
func Run(ctx context.Context, app application.Application, w io.Writer, flags *Flags) error {
	path := app.Paths().AliasesFile
	tbl, err := aliases.Load(path)
	if err != nil {
		return err
	}

	var stale []aliases.Stale
	if flags.Check {
		fetcher := app.Leaderboard(flags.Refresh)
		if fetcher == nil {
			return errors.NewConfigError("leaderboard", "no leaderboard source configured", nil)
		}
		targets, err := fetcher.FetchTargets(ctx)
		if err != nil {
			return err
		}
		stale = aliases.Validate(tbl, targets)
		if stale == nil {
			stale = []aliases.Stale{}
		}
		for _, s := range stale {
			app.Logger().Warn().
				Str("source_id", s.SourceID).
				Str("target", s.TargetName).
				Msg("Alias target not found on leaderboard")
		}
	}

	flagsOut := &globals.Flags{Output: app.OutputFormat()}
	if err := output.Write(w, flagsOut, table.AliasesToTableData(tbl, stale), records(tbl, stale, flags.Check)); err != nil {
		return err
	}

	if flags.Check && flags.Strict && len(stale) > 0 {
		return errors.NewValidationError("aliases", path, fmt.Sprintf("%d stale alias(es)", len(stale)))
	}
	return nil
}

func records(tbl aliases.Table, stale []aliases.Stale, checked bool) []Record {
	staleIDs := make(map[string]bool, len(stale))
	for _, s := range stale {
		staleIDs[s.SourceID] = true
	}

	out := make([]Record, 0, len(tbl))
	for _, id := range tbl.IDs() {
		rec := Record{SourceID: id, TargetName: tbl[id]}
		if checked {
			isStale := staleIDs[id]
			rec.Stale = &isStale
		}
		out = append(out, rec)
	}
	return out
}
