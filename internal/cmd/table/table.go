// Package table converts pipeline values into rows for CLI table output.
package table

import (
	"strconv"

	"github.com/agentstation/freerank/pkg/aliases"
	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/normalize"
	"github.com/agentstation/freerank/pkg/report"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// MatchesToTableData converts match results to table format. Wide output
// adds the normalized name and the fuzzy score.
func MatchesToTableData(results []listings.MatchResult, wide bool) Data {
	headers := []string{"ID", "Name", "Leaderboard Model", "Match"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Normalized", "Score")
		align = append(align, AlignLeft, AlignRight)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		target := report.Missing
		if r.Matched() {
			target = r.Target.ModelName
		}
		row := []string{r.Source.ID, r.Source.Name, target, r.Label()}
		if wide {
			score := report.Missing
			if r.Kind == listings.KindFuzzy {
				score = strconv.Itoa(r.Score)
			}
			row = append(row, normalize.Normalize(r.Source.Name), score)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// AliasesToTableData converts an alias table to rows sorted by source id.
// Stale entries are flagged when stale is non-nil.
func AliasesToTableData(t aliases.Table, stale []aliases.Stale) Data {
	headers := []string{"Source ID", "Leaderboard Model"}
	var staleIDs map[string]struct{}
	if stale != nil {
		headers = append(headers, "Status")
		staleIDs = make(map[string]struct{}, len(stale))
		for _, s := range stale {
			staleIDs[s.SourceID] = struct{}{}
		}
	}

	rows := make([][]string, 0, len(t))
	for _, id := range t.IDs() {
		row := []string{id, t[id]}
		if staleIDs != nil {
			status := "ok"
			if _, ok := staleIDs[id]; ok {
				status = "stale"
			}
			row = append(row, status)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}

// NormalizedToTableData pairs each name with its normalized key.
func NormalizedToTableData(names []string) Data {
	rows := make([][]string, len(names))
	for i, name := range names {
		rows[i] = []string{name, normalize.Normalize(name)}
	}
	return Data{Headers: []string{"Name", "Normalized"}, Rows: rows}
}
