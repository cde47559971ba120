package report

import (
	"encoding/json"
	"html/template"
	"io"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/freerank/pkg/constants"
)

// DefaultTitle heads both reports.
const DefaultTitle = "Free Models Performance Report"

// DefaultPageLength is the HTML report's rows per page.
const DefaultPageLength = 50

type dataTableOptions struct {
	PageLength int     `json:"pageLength"`
	Order      [][]any `json:"order"`
}

// DefaultSortHeader is the column the HTML report sorts by, descending.
const DefaultSortHeader = "Intelligence"

// RenderOptions controls report rendering.
type RenderOptions struct {
	Title       string
	GeneratedAt time.Time
	// HTMLLink is the relative link to the HTML report from the Markdown one.
	HTMLLink string
	// PageLength is the number of rows per HTML page.
	PageLength int
}

func (o RenderOptions) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o RenderOptions) timestamp() string {
	at := o.GeneratedAt
	if at.IsZero() {
		at = time.Now()
	}
	return at.UTC().Format(constants.TimeFormatReport)
}

// WriteMarkdown renders table as a Markdown report.
func WriteMarkdown(w io.Writer, table Table, opts RenderOptions) error {
	doc := md.NewMarkdown(w)
	doc.H1(opts.title())
	doc.PlainTextf("Generated on: %s", opts.timestamp())
	doc.LF()
	if opts.HTMLLink != "" {
		doc.PlainText(md.Bold(md.Link("View Sortable HTML Report", opts.HTMLLink)))
		doc.LF()
	}
	doc.Table(md.TableSet{
		Header: escapeCells(table.Headers),
		Rows:   escapeRows(table.Rows),
	})
	doc.LF()
	doc.PlainText(md.Italic("Note: Metrics are dynamically discovered from Artificial Analysis leaderboard."))
	return doc.Build()
}

func escapeRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = escapeCells(r)
	}
	return out
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = cellEscaper.Replace(c)
	}
	return out
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" type="text/css" href="https://cdn.datatables.net/1.13.6/css/jquery.dataTables.min.css">
  <script type="text/javascript" charset="utf8" src="https://code.jquery.com/jquery-3.7.0.js"></script>
  <script type="text/javascript" charset="utf8" src="https://cdn.datatables.net/1.13.6/js/jquery.dataTables.min.js"></script>
  <style>
    body { font-family: sans-serif; margin: 20px; }
    h1 { color: #333; }
    .dataTables_wrapper { margin-top: 20px; }
    table.dataTable thead th { background-color: #f2f2f2; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p>Generated on: {{.GeneratedAt}}</p>
  <table id="reportTable" class="display">
    <thead>
      <tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr>
    </thead>
    <tbody>
{{- range .Rows}}
      <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
    </tbody>
  </table>
  <script>
    $(document).ready(function() {
      $('#reportTable').DataTable({{.Options}});
    });
  </script>
</body>
</html>
`))

// WriteHTML renders table as a sortable HTML page, sorted by the
// Intelligence column when present.
func WriteHTML(w io.Writer, table Table, opts RenderOptions) error {
	settings := dataTableOptions{PageLength: opts.PageLength, Order: [][]any{}}
	if settings.PageLength <= 0 {
		settings.PageLength = DefaultPageLength
	}
	if col, ok := table.Column(DefaultSortHeader); ok {
		settings.Order = append(settings.Order, []any{col, "desc"})
	}
	options, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	return htmlReport.Execute(w, struct {
		Title       string
		GeneratedAt string
		Headers     []string
		Rows        [][]string
		Options     template.JS
	}{
		Title:       opts.title(),
		GeneratedAt: opts.timestamp(),
		Headers:     table.Headers,
		Rows:        table.Rows,
		Options:     template.JS(options), //nolint:gosec // marshaled from ints and a fixed string
	})
}
