package diff

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"

	"schema-validator/internal/schema"
)

const (
	MissingInTarget = "missing in target schema"
	MissingInSource = "missing in source schema"
)

// Result maps object names to their discrepancies, in insertion order.
type Result struct {
	names   []string
	entries map[string][]string
}

func NewResult() *Result {
	return &Result{entries: make(map[string][]string)}
}

// Set stores the discrepancies of one object. An existing name keeps its position.
func (r *Result) Set(name string, discrepancies []string) {
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = discrepancies
}

func (r *Result) Get(name string) ([]string, bool) {
	d, ok := r.entries[name]
	return d, ok
}

func (r *Result) Names() []string {
	return r.names
}

func (r *Result) Len() int {
	return len(r.names)
}

// Delete removes name, keeping the order of the remaining entries.
func (r *Result) Delete(name string) {
	if _, ok := r.entries[name]; !ok {
		return
	}
	delete(r.entries, name)
	r.names = slices.DeleteFunc(r.names, func(n string) bool { return n == name })
}

// Merge copies every entry of other into r. Names already present keep their
// position and take other's discrepancies.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	for _, name := range other.names {
		r.Set(name, other.entries[name])
	}
}

func (r *Result) MarshalJSON() ([]byte, error) {
	o := schema.NewOrderedJSON()
	for _, name := range r.names {
		if err := o.Field(name, r.entries[name]); err != nil {
			return nil, err
		}
	}
	return o.Bytes(), nil
}

// Compare diffs two sets of the same category. Source objects come first in the
// result, followed by objects only the target has. Objects without
// discrepancies get no entry.
func Compare(source, target *schema.SchemaSet) *Result {
	res := NewResult()
	for _, name := range source.Names() {
		src, _ := source.Get(name)
		tgt, ok := target.Get(name)
		if !ok {
			res.Set(name, []string{MissingInTarget})
			continue
		}
		if d := compareRecords(src, tgt); len(d) > 0 {
			res.Set(name, d)
		}
	}
	for _, name := range target.Names() {
		if !source.Has(name) {
			res.Set(name, []string{MissingInSource})
		}
	}
	return res
}

// compareRecords walks the source record's fields. Target-only columns are
// not reported; constraint groups are compared as whole sequences.
func compareRecords(src, tgt schema.SchemaRecord) []string {
	var out []string

	if src.Definition != nil {
		switch {
		case tgt.Definition == nil:
			out = append(out, "Definition missing in target schema")
		case *src.Definition != *tgt.Definition:
			out = append(out, fmt.Sprintf("Definition mismatch: %q != %q", *src.Definition, *tgt.Definition))
		}
	}

	for _, col := range src.Columns() {
		s, _ := src.Column(col)
		t, ok := tgt.Column(col)
		if !ok {
			out = append(out, fmt.Sprintf("Column '%s' missing in target schema", col))
			continue
		}
		if !s.Equal(t) {
			out = append(out, fmt.Sprintf("Column '%s' mismatch: %s != %s", col, s, t))
		}
	}

	groups := []struct {
		label    string
		src, tgt any
		empty    bool
	}{
		{"Primary key", src.PrimaryKey, tgt.PrimaryKey, len(src.PrimaryKey) == 0 && len(tgt.PrimaryKey) == 0},
		{"Foreign keys", src.ForeignKeys, tgt.ForeignKeys, len(src.ForeignKeys) == 0 && len(tgt.ForeignKeys) == 0},
		{"Unique constraints", src.UniqueConstraints, tgt.UniqueConstraints, len(src.UniqueConstraints) == 0 && len(tgt.UniqueConstraints) == 0},
		{"Check constraints", src.CheckConstraints, tgt.CheckConstraints, len(src.CheckConstraints) == 0 && len(tgt.CheckConstraints) == 0},
	}
	for _, g := range groups {
		if g.empty || reflect.DeepEqual(g.src, g.tgt) {
			continue
		}
		out = append(out, fmt.Sprintf("%s mismatch: source has %s but target has %s", g.label, render(g.src), render(g.tgt)))
	}
	return out
}

func render(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Slice && rv.Len() == 0 {
		return "[]"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
