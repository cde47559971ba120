// Package normalize implements the normalize command.
package normalize

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/freerank/cmd/application"
	"github.com/agentstation/freerank/internal/cmd/globals"
	"github.com/agentstation/freerank/internal/cmd/output"
	"github.com/agentstation/freerank/internal/cmd/table"
	"github.com/agentstation/freerank/pkg/normalize"
)

// Record is the structured output for one name.
type Record struct {
	Name       string `json:"name" yaml:"name"`
	Normalized string `json:"normalized" yaml:"normalized"`
}

// NewCommand creates the normalize command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "normalize NAME...",
		GroupID: "core",
		Short:   "Print the normalized matching key of model names",
		Long: `Normalize prints the key the exact-name step compares: lowercased, provider
prefix dropped, punctuation removed and noise tokens such as "free",
"instruct" or "v3" stripped. Useful when writing aliases.`,
		Example: `  freerank normalize "Meta: Llama 3.3 70B Instruct (free)"
  freerank normalize "Llama 3.3 70B" "DeepSeek V3.1" -f json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.OutOrStdout(), &globals.Flags{Output: app.OutputFormat()}, args)
		},
	}
}

// Run prints the normalized key of every name.
func Run(w io.Writer, flags *globals.Flags, names []string) error {
	records := make([]Record, len(names))
	for i, name := range names {
		records[i] = Record{Name: name, Normalized: normalize.Normalize(name)}
	}
	return output.Write(w, flags, table.NormalizedToTableData(names), records)
}
