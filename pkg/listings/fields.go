package listings

import (
	"bytes"
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// Fields is an ordered, open string-keyed mapping. Keys keep the order in
// which they were first set; overwriting a key keeps its original position.
// The leaderboard's column set is only known at scrape time, so metric
// columns are carried here rather than in a fixed struct.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields creates an empty Fields with room for n keys.
func NewFields(n int) *Fields {
	return &Fields{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// Set stores value under key.
func (f *Fields) Set(key string, value any) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	v, ok := f.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Range calls fn for each key in order until fn returns false.
func (f *Fields) Range(fn func(key string, value any) bool) {
	if f == nil {
		return
	}
	for _, k := range f.keys {
		if !fn(k, f.values[k]) {
			return
		}
	}
}

// MarshalJSON encodes the fields as a JSON object in key order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the fields as a YAML mapping in key order.
func (f *Fields) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, f.Len())
	f.Range(func(k string, v any) bool {
		out = append(out, yaml.MapItem{Key: k, Value: v})
		return true
	})
	return out, nil
}
