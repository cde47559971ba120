// Package merge flattens match results into report rows.
package merge

import "github.com/agentstation/freerank/pkg/listings"

// Row columns carried from the source listing, plus the match status.
const (
	ColumnID            = "id"
	ColumnName          = "name"
	ColumnContextLength = "context_length"
	ColumnDescription   = "description"
	ColumnMatchStatus   = "match_status"
)

// Leaderboard columns that duplicate a source column and are never copied
// from the target side. TargetModelColumn is also the join key.
const (
	TargetModelColumn   = "Model"
	TargetCreatorColumn = "Creator"
	TargetContextColumn = "ContextWindow"
)

// droppedTargetColumns lists target fields the source side already carries.
var droppedTargetColumns = map[string]struct{}{
	TargetModelColumn:   {},
	TargetCreatorColumn: {},
	TargetContextColumn: {},
}

// Merge turns one match result into a report row. Source fields come first;
// a matched row then gets every remaining target field in scrape order; the
// match status always comes last. An unmatched row carries no target field.
func Merge(result listings.MatchResult) *listings.Fields {
	src := result.Source
	size := 5
	if result.Target != nil {
		size += result.Target.Fields.Len()
	}
	row := listings.NewFields(size)

	row.Set(ColumnID, src.ID)
	row.Set(ColumnName, src.Name)
	if src.ContextLength != nil {
		row.Set(ColumnContextLength, *src.ContextLength)
	} else {
		row.Set(ColumnContextLength, nil)
	}
	if src.Description != nil {
		row.Set(ColumnDescription, *src.Description)
	} else {
		row.Set(ColumnDescription, nil)
	}

	if result.Matched() {
		result.Target.Fields.Range(func(key string, value any) bool {
			if _, drop := droppedTargetColumns[key]; !drop {
				row.Set(key, value)
			}
			return true
		})
	}

	row.Set(ColumnMatchStatus, result.Label())
	return row
}

// MergeAll merges every result, preserving order.
func MergeAll(results []listings.MatchResult) []*listings.Fields {
	rows := make([]*listings.Fields, len(results))
	for i, r := range results {
		rows[i] = Merge(r)
	}
	return rows
}
