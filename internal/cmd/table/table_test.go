package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/freerank/pkg/aliases"
	"github.com/agentstation/freerank/pkg/listings"
)

func matches() []listings.MatchResult {
	scout := &listings.Target{ModelName: "Llama 4 Scout", Fields: listings.NewFields(0)}
	return []listings.MatchResult{
		{
			Source: listings.Source{ID: "meta-llama/llama-4-scout:free", Name: "Meta: Llama 4 Scout (free)"},
			Target: scout,
			Kind:   listings.KindExactNormalized,
		},
		{
			Source: listings.Source{ID: "meta-llama/llama-4-scout-instruct:free", Name: "Llama Four Scout"},
			Target: scout,
			Kind:   listings.KindFuzzy,
			Score:  92,
		},
		{
			Source: listings.Source{ID: "acme/x:free", Name: "Acme X"},
			Kind:   listings.KindUnmatched,
		},
	}
}

func TestMatchesToTableData(t *testing.T) {
	data := MatchesToTableData(matches(), false)

	assert.Equal(t, []string{"ID", "Name", "Leaderboard Model", "Match"}, data.Headers)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"meta-llama/llama-4-scout:free", "Meta: Llama 4 Scout (free)", "Llama 4 Scout", "exact (norm)"}, data.Rows[0])
	assert.Equal(t, "fuzzy (92)", data.Rows[1][3])
	assert.Equal(t, []string{"acme/x:free", "Acme X", "-", "unmatched"}, data.Rows[2])
}

func TestMatchesToTableDataWide(t *testing.T) {
	data := MatchesToTableData(matches(), true)

	assert.Len(t, data.Headers, 6)
	assert.Len(t, data.ColumnAlignment, 6)
	assert.Equal(t, []string{"llama 4 scout", "-"}, data.Rows[0][4:])
	assert.Equal(t, "92", data.Rows[1][5])
}

func TestAliasesToTableData(t *testing.T) {
	table := aliases.Table{
		"z/model:free": "Zed",
		"a/model:free": "Ay",
	}

	plain := AliasesToTableData(table, nil)
	assert.Equal(t, []string{"Source ID", "Leaderboard Model"}, plain.Headers)
	assert.Equal(t, [][]string{{"a/model:free", "Ay"}, {"z/model:free", "Zed"}}, plain.Rows)

	checked := AliasesToTableData(table, []aliases.Stale{{SourceID: "z/model:free", TargetName: "Zed"}})
	assert.Equal(t, [][]string{{"a/model:free", "Ay", "ok"}, {"z/model:free", "Zed", "stale"}}, checked.Rows)
}

func TestNormalizedToTableData(t *testing.T) {
	data := NormalizedToTableData([]string{"Google: Gemma 3 27B (free)"})
	assert.Equal(t, [][]string{{"Google: Gemma 3 27B (free)", "gemma 3 27b"}}, data.Rows)
}
