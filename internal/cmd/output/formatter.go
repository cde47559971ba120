// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/freerank/internal/cmd/constants"
	"github.com/agentstation/freerank/internal/cmd/table"
	"github.com/agentstation/freerank/pkg/errors"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = constants.FormatTable
	// FormatJSON represents JSON output format.
	FormatJSON Format = constants.FormatJSON
	// FormatYAML represents YAML output format.
	FormatYAML Format = constants.FormatYAML
	// FormatWide represents a table with extra diagnostic columns.
	FormatWide Format = constants.FormatWide
)

// IsTable reports whether f renders as a table.
func (f Format) IsTable() bool {
	return f == FormatTable || f == FormatWide || f == ""
}

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{Wide: format == FormatWide}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct {
	Wide bool
}

// Format outputs data in table format. Structs and slices of structs are
// laid out by field; anything else falls back to JSON.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case table.Data:
		return f.formatTable(w, v)
	case *table.Data:
		return f.formatTable(w, *v)
	default:
		if tableData, ok := structToTableData(data); ok {
			return f.formatTable(w, tableData)
		}
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

func (f *TableFormatter) formatTable(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			align[i] = twAlign(a)
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		tbl.Header(toAny(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := tbl.Append(toAny(row)...); err != nil {
			return err
		}
	}
	return tbl.Render()
}

func twAlign(a table.Align) tw.Align {
	switch a {
	case table.AlignLeft:
		return tw.AlignLeft
	case table.AlignCenter:
		return tw.AlignCenter
	case table.AlignRight:
		return tw.AlignRight
	default:
		return tw.Skip
	}
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	// Pipes and redirects get JSON.
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", errors.NewValidationError("format", s, "must be one of: table, wide, json, yaml")
	}
}

var titleCaser = cases.Title(language.English)

// headerFor returns the column title for a struct field: its JSON name in
// title case, or the Go name. Fields tagged json:"-" are skipped.
func headerFor(field reflect.StructField) (string, bool) {
	if !field.IsExported() {
		return "", false
	}
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name, true
	}
	return titleCaser.String(strings.ReplaceAll(name, "_", " ")), true
}

// structToTableData lays out a struct as Property/Value rows, or a slice of
// structs as one row per element.
func structToTableData(data any) (table.Data, bool) {
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	}

	switch {
	case v.Kind() == reflect.Struct:
		var rows [][]string
		for i := 0; i < v.NumField(); i++ {
			if header, ok := headerFor(v.Type().Field(i)); ok {
				rows = append(rows, []string{header, fmt.Sprintf("%v", v.Field(i).Interface())})
			}
		}
		return table.Data{Headers: []string{"Property", "Value"}, Rows: rows}, true

	case v.Kind() == reflect.Slice && v.Len() > 0 && v.Index(0).Kind() == reflect.Struct:
		elemType := v.Index(0).Type()
		var (
			headers []string
			fields  []int
		)
		for i := 0; i < elemType.NumField(); i++ {
			if header, ok := headerFor(elemType.Field(i)); ok {
				headers = append(headers, header)
				fields = append(fields, i)
			}
		}
		rows := make([][]string, v.Len())
		for i := range rows {
			elem := v.Index(i)
			row := make([]string, len(fields))
			for j, idx := range fields {
				row[j] = fmt.Sprintf("%v", elem.Field(idx).Interface())
			}
			rows[i] = row
		}
		return table.Data{Headers: headers, Rows: rows}, true
	}
	return table.Data{}, false
}
