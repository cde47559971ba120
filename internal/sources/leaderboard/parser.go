package leaderboard

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/merge"
)

// Parse failures. All of them abort the scrape.
var (
	ErrTableNotFound     = errors.New("leaderboard table not found")
	ErrHeaderMalformed   = errors.New("leaderboard header needs a thead with at least two rows")
	ErrMissingJoinColumn = errors.New("leaderboard has no " + merge.TargetModelColumn + " column")
)

// Table is the leaderboard as scraped: column names from the second header
// row and one string cell per column for every well-formed body row.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	// Skipped counts body rows dropped for having the wrong number of cells.
	Skipped int `json:"skipped"`
}

// ParseTable extracts the first table of an HTML document.
func ParseTable(doc string) (*Table, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, errors.WrapParse("html", "leaderboard", err)
	}

	table := findFirst(root, "table")
	if table == nil {
		return nil, ErrTableNotFound
	}

	thead := findFirst(table, "thead")
	if thead == nil {
		return nil, ErrHeaderMalformed
	}
	headerRows := findAll(thead, "tr")
	if len(headerRows) < 2 {
		return nil, ErrHeaderMalformed
	}

	headerCells := findAll(headerRows[1], "th", "td")
	result := &Table{Headers: make([]string, len(headerCells))}
	for i, cell := range headerCells {
		result.Headers[i] = text(cell)
	}

	tbody := findFirst(table, "tbody")
	if tbody == nil {
		return result, nil
	}
	for _, tr := range findAll(tbody, "tr") {
		cells := findAll(tr, "td")
		if len(cells) != len(result.Headers) {
			result.Skipped++
			continue
		}
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = text(cell)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// Listings converts the table to target listings keyed by the Model column.
// Fields keep column order; a repeated header keeps its first position and
// its last value.
func (t *Table) Listings() ([]listings.Target, error) {
	modelIdx := -1
	for i, h := range t.Headers {
		if h == merge.TargetModelColumn {
			modelIdx = i
			break
		}
	}
	if modelIdx < 0 {
		return nil, ErrMissingJoinColumn
	}

	targets := make([]listings.Target, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			continue
		}
		fields := listings.NewFields(len(t.Headers))
		for i, h := range t.Headers {
			fields.Set(h, row[i])
		}
		name, _ := fields.Get(merge.TargetModelColumn)
		targets = append(targets, listings.Target{ModelName: name.(string), Fields: fields})
	}
	return targets, nil
}

func findFirst(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns every descendant element with one of the tags, in
// document order.
func findAll(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, tag := range tags {
					if c.Data == tag {
						out = append(out, c)
						break
					}
				}
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

// text joins the trimmed text nodes under n with no separator.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(p.Data))
			return
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
