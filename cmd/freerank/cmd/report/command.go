// Package report implements the report command.
package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/agentstation/freerank"
	"github.com/agentstation/freerank/cmd/application"
	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
)

// Flags holds the report command flags.
type Flags struct {
	Preview      bool
	Refresh      bool
	NoHTML       bool
	MarkdownPath string
	HTMLPath     string
	Title        string
}

// NewCommand creates the report command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "report",
		GroupID: "core",
		Short:   "Build the free models performance report",
		Long: `Report fetches the free OpenRouter models and the Artificial Analysis
leaderboard, joins them and writes a Markdown report plus a sortable HTML
report.

Both sources are cached in the cache directory. Cached data is reused
until it expires (cache_ttl, never by default) or --refresh is given.`,
		Example: `  freerank report                       # Write free_models_report.md and .html
  freerank report --preview             # Also render the report in the terminal
  freerank report --refresh             # Ignore cached data
  freerank report --markdown out/r.md   # Write somewhere else`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			return Run(ctx, app, cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.Preview, "preview", false, "render the Markdown report in the terminal")
	cmd.Flags().BoolVar(&flags.Refresh, "refresh", false, "ignore cached data and fetch again")
	cmd.Flags().BoolVar(&flags.NoHTML, "no-html", false, "skip the HTML report")
	cmd.Flags().StringVar(&flags.MarkdownPath, "markdown", "", "Markdown report path (default from config)")
	cmd.Flags().StringVar(&flags.HTMLPath, "html", "", "HTML report path (default from config)")
	cmd.Flags().StringVar(&flags.Title, "title", "", "report title")

	return cmd
}

// Run builds and writes the report.
func Run(ctx context.Context, app application.Application, w io.Writer, flags *Flags) error {
	paths := app.Paths()
	opts := freerank.PublishOptions{
		MarkdownPath: firstNonEmpty(flags.MarkdownPath, paths.ReportFile),
		HTMLPath:     firstNonEmpty(flags.HTMLPath, paths.HTMLReportFile),
		Title:        flags.Title,
		SkipHTML:     flags.NoHTML,
	}

	fr, err := app.Freerank(freerank.WithRefresh(flags.Refresh))
	if err != nil {
		return err
	}
	result, err := fr.Reconcile(ctx)
	if err != nil {
		return err
	}
	if err := fr.Publish(result, opts); err != nil {
		return err
	}

	if flags.Preview {
		return preview(w, opts.MarkdownPath, app.NoColor())
	}

	fmt.Fprintf(w, "Report written to %s (%d free models, %d matched)\n",
		opts.MarkdownPath, result.Stats.Total, result.Stats.Matched())
	if !opts.SkipHTML {
		fmt.Fprintf(w, "HTML report written to %s\n", opts.HTMLPath)
	}
	return nil
}

// preview renders a Markdown file for the terminal.
func preview(w io.Writer, path string, noColor bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // path is the report just written
	if err != nil {
		return errors.WrapIO("read", path, err)
	}

	style := glamour.WithAutoStyle()
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}
	renderer, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(120))
	if err != nil {
		return errors.WrapResource("create", "renderer", "", err)
	}

	out, err := renderer.Render(string(data))
	if err != nil {
		return errors.WrapResource("render", "report", path, err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
