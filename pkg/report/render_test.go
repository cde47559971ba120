package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/freerank/pkg/listings"
)

var generatedAt = time.Date(2025, 7, 14, 9, 30, 0, 0, time.UTC)

func sampleTable() Table {
	return Assemble([]*listings.Fields{
		sourceRow("meta-llama/llama-4-scout:free", "Meta: Llama 4 Scout (free)", int64(128000), "exact (norm)",
			MetricIntelligence, "28",
			"Odd|Column", "a|b",
		),
		sourceRow("x/unknown:free", "Unknown", nil, "unmatched"),
	})
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMarkdown(&buf, sampleTable(), RenderOptions{
		GeneratedAt: generatedAt,
		HTMLLink:    "free_models_report.html",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Free Models Performance Report"))
	assert.Contains(t, out, "Generated on: 2025-07-14 09:30:00")
	assert.Contains(t, out, "[View Sortable HTML Report](free_models_report.html)")
	assert.Contains(t, strings.ToLower(out), "openrouter id")
	assert.Contains(t, out, "meta-llama/llama-4-scout:free")
	assert.Contains(t, out, `a\|b`)
	assert.NotContains(t, out, "a|b")
	assert.Contains(t, out, "Note: Metrics are dynamically discovered from Artificial Analysis leaderboard.")
}

func TestWriteMarkdownWithoutHTMLLink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleTable(), RenderOptions{GeneratedAt: generatedAt, Title: "Custom"}))

	assert.True(t, strings.HasPrefix(buf.String(), "# Custom"))
	assert.NotContains(t, buf.String(), "View Sortable HTML Report")
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleTable(), RenderOptions{GeneratedAt: generatedAt}))

	out := buf.String()
	assert.Contains(t, out, "<title>Free Models Performance Report</title>")
	assert.Contains(t, out, "Generated on: 2025-07-14 09:30:00")
	assert.Contains(t, out, "<th>Intelligence</th>")
	assert.Contains(t, out, "<td>meta-llama/llama-4-scout:free</td>")
	assert.Contains(t, out, `"pageLength":50`)
	assert.Contains(t, out, `"order":[[4,"desc"]]`)
}

func TestWriteHTMLWithoutIntelligence(t *testing.T) {
	table := Assemble([]*listings.Fields{sourceRow("a", "A", nil, "unmatched")})

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, table, RenderOptions{GeneratedAt: generatedAt, PageLength: 10}))

	assert.Contains(t, buf.String(), `"pageLength":10`)
	assert.Contains(t, buf.String(), `"order":[]`)
}

func TestWriteHTMLEscapesCells(t *testing.T) {
	table := Assemble([]*listings.Fields{sourceRow("<script>", "A&B", nil, "unmatched")})

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, table, RenderOptions{GeneratedAt: generatedAt}))

	assert.Contains(t, buf.String(), "&lt;script&gt;")
	assert.Contains(t, buf.String(), "A&amp;B")
}
