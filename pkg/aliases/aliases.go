// Package aliases holds the hand-curated mapping from source model IDs to
// leaderboard model names. An alias always wins over automatic matching and
// is compared verbatim: neither side is normalized.
package aliases

import (
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/listings"
)

// Table maps a source listing ID to a target model name. A Table is loaded
// once per run and treated as read-only afterwards.
type Table map[string]string

// Resolve returns the target name aliased to sourceID.
func (t Table) Resolve(sourceID string) (string, bool) {
	name, ok := t[sourceID]
	return name, ok
}

// IDs returns the aliased source IDs in sorted order.
func (t Table) IDs() []string {
	ids := make([]string, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load reads an alias table from a JSON or YAML file. A missing file is
// equivalent to an empty table.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(path, data)
}

// Parse decodes alias data. JSON is valid YAML, so both formats are accepted.
func Parse(path string, data []byte) (Table, error) {
	table := Table{}
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, errors.NewParseError("yaml", path, "invalid alias mapping", err)
	}
	for id, name := range table {
		if id == "" || name == "" {
			return nil, errors.NewValidationError("aliases", id, "alias entries need a source id and a target name")
		}
	}
	return table, nil
}

// Stale is an alias entry whose target name is absent from the catalog.
type Stale struct {
	SourceID   string `json:"source_id" yaml:"source_id"`
	TargetName string `json:"target_name" yaml:"target_name"`
}

// Validate lists alias entries that point at names missing from targets.
// Such entries are not fatal: matching falls through to the automatic steps.
func Validate(t Table, targets []listings.Target) []Stale {
	names := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		names[target.ModelName] = struct{}{}
	}

	var stale []Stale
	for _, id := range t.IDs() {
		if _, ok := names[t[id]]; !ok {
			stale = append(stale, Stale{SourceID: id, TargetName: t[id]})
		}
	}
	return stale
}
