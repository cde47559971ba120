// Package report turns merged rows into the column-ordered table the
// Markdown and HTML reports are rendered from.
//
// The leaderboard's metric columns are discovered at scrape time, so the
// column set varies run to run. Assemble keeps a fixed leading block, orders
// known metrics by priority, appends unknown metrics in first-seen order and
// falls back to the raw column name for anything without a display label.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/merge"
)

// Missing is rendered for cells a row does not have.
const Missing = "-"

// LeadingColumns always open the table, in this order.
var LeadingColumns = []string{
	merge.ColumnID,
	merge.ColumnName,
	merge.ColumnContextLength,
	merge.ColumnMatchStatus,
}

// excludedColumns never become metric columns.
var excludedColumns = map[string]struct{}{
	merge.ColumnDescription: {},
}

// Raw leaderboard column names, as the header text is flattened by the scraper.
const (
	MetricIntelligence = "ArtificialAnalysisIntelligence Index"
	MetricTPS          = "MedianTokens/s"
	MetricTTFT         = "LatencyFirst Answer Chunk (s)"
	MetricInputPrice   = "InputPriceUSD/1M Tokens"
	MetricOutputPrice  = "OutputPriceUSD/1M Tokens"
	MetricMMLUPro      = "MMLU-Pro(Reasoning &Knowledge)"
	MetricLiveCode     = "LiveCodeBench(Coding)"
	MetricGPQA         = "GPQA Diamond(ScientificReasoning)"
	MetricLastExam     = "Humanity's LastExam(Reasoning & Knowledge)"
	MetricTerminal     = "Terminal-BenchHard (AgenticCoding & Terminal Use)"
	MetricTauTelecom   = "\U0001D70F²-BenchTelecom(Agentic Tool Use)"
)

// PriorityMetrics is the preferred order of metric columns. Only the ones
// present in a run are used.
var PriorityMetrics = []string{
	MetricIntelligence,
	MetricTPS,
	MetricTTFT,
	MetricInputPrice,
	MetricOutputPrice,
	MetricMMLUPro,
	MetricLiveCode,
	MetricGPQA,
	MetricLastExam,
	MetricTerminal,
	MetricTauTelecom,
}

// DisplayLabels maps raw column names to short headers.
var DisplayLabels = map[string]string{
	merge.ColumnID:            "OpenRouter ID",
	merge.ColumnName:          "Model Name",
	merge.ColumnContextLength: "Context",
	merge.ColumnMatchStatus:   "Match",
	MetricIntelligence:        "Intelligence",
	MetricTPS:                 "TPS",
	MetricTTFT:                "TTFT (s)",
	MetricInputPrice:          "Input Price ($/1M)",
	MetricOutputPrice:         "Output Price ($/1M)",
	MetricMMLUPro:             "MMLU-Pro",
	MetricLiveCode:            "LiveCodeBench",
	MetricGPQA:                "GPQA Diamond",
	MetricLastExam:            "LastExam",
	MetricTerminal:            "Terminal-BenchHard",
	MetricTauTelecom:          "Tau-BenchTelecom",
}

// Table is an assembled report: Keys are raw column names, Headers their
// display labels, and Rows the rendered cells in Keys order.
type Table struct {
	Keys    []string   `json:"keys" yaml:"keys"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Column returns the index of the column with the given display header.
func (t Table) Column(header string) (int, bool) {
	for i, h := range t.Headers {
		if h == header {
			return i, true
		}
	}
	return -1, false
}

// Assemble selects, orders and renames columns for rows.
func Assemble(rows []*listings.Fields) Table {
	keys := append(append([]string{}, LeadingColumns...), MetricColumns(rows)...)

	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = Label(k)
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(keys))
		for j, k := range keys {
			if v, ok := row.Get(k); ok {
				line[j] = FormatValue(v)
			} else {
				line[j] = Missing
			}
		}
		cells[i] = line
	}

	return Table{Keys: keys, Headers: headers, Rows: cells}
}

// MetricColumns returns every non-leading, non-excluded key across rows:
// priority metrics first, then the rest in first-seen order.
func MetricColumns(rows []*listings.Fields) []string {
	skip := make(map[string]struct{}, len(LeadingColumns)+len(excludedColumns))
	for _, k := range LeadingColumns {
		skip[k] = struct{}{}
	}
	for k := range excludedColumns {
		skip[k] = struct{}{}
	}

	var seen []string
	present := make(map[string]struct{})
	for _, row := range rows {
		row.Range(func(key string, _ any) bool {
			if _, s := skip[key]; s {
				return true
			}
			if _, ok := present[key]; !ok {
				present[key] = struct{}{}
				seen = append(seen, key)
			}
			return true
		})
	}

	ordered := make([]string, 0, len(seen))
	prioritized := make(map[string]struct{}, len(PriorityMetrics))
	for _, m := range PriorityMetrics {
		prioritized[m] = struct{}{}
		if _, ok := present[m]; ok {
			ordered = append(ordered, m)
		}
	}
	for _, k := range seen {
		if _, ok := prioritized[k]; !ok {
			ordered = append(ordered, k)
		}
	}
	return ordered
}

// Label returns the display header for a raw column name.
func Label(key string) string {
	if label, ok := DisplayLabels[key]; ok {
		return label
	}
	return key
}

// FormatValue renders a cell value. Absent values render as Missing.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return Missing
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
