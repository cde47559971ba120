package output

import (
	"io"

	"github.com/agentstation/freerank/internal/cmd/globals"
	"github.com/agentstation/freerank/internal/cmd/table"
	"github.com/agentstation/freerank/pkg/listings"
)

// MatchRecord is the JSON and YAML shape of one match result.
type MatchRecord struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
	Kind   string `json:"kind" yaml:"kind"`
	Match  string `json:"match" yaml:"match"`
	Score  int    `json:"score,omitempty" yaml:"score,omitempty"`
}

// MatchRecords converts match results for structured output.
func MatchRecords(results []listings.MatchResult) []MatchRecord {
	records := make([]MatchRecord, len(results))
	for i, r := range results {
		rec := MatchRecord{
			ID:    r.Source.ID,
			Name:  r.Source.Name,
			Kind:  string(r.Kind),
			Match: r.Label(),
		}
		if r.Matched() {
			rec.Target = r.Target.ModelName
		}
		if r.Kind == listings.KindFuzzy {
			rec.Score = r.Score
		}
		records[i] = rec
	}
	return records
}

// Write formats data for the format selected by the global flags. Table
// formats use tabular, structured formats use structured.
func Write(w io.Writer, flags *globals.Flags, tabular table.Data, structured any) error {
	format := DetectFormat(flags.Output)
	if format.IsTable() {
		return NewFormatter(format).Format(w, tabular)
	}
	return NewFormatter(format).Format(w, structured)
}
