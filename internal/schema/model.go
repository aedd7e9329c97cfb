package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the closed set of object kinds that can be compared.
type Kind int

const (
	Table Kind = iota
	View
	Function
	Procedure
	Trigger
)

// Kinds lists every kind in comparison order.
var Kinds = []Kind{Table, View, Function, Procedure, Trigger}

var ErrUnknownCategory = errors.New("unknown comparison category")

var kindNames = [...]string{"TABLE", "VIEW", "FUNCTION", "PROCEDURE", "TRIGGER"}

// categories as they appear in config (comparison.compare) and artifact names
var kindCategories = [...]string{"tables", "views", "functions", "stored_procedures", "triggers"}

func (k Kind) String() string {
	if k < Table || k > Trigger {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Category returns the plural config name, e.g. "stored_procedures".
func (k Kind) Category() string {
	if k < Table || k > Trigger {
		return ""
	}
	return kindCategories[k]
}

// Singular is used in progress lines ("table", "stored_procedure").
func (k Kind) Singular() string {
	return strings.TrimSuffix(k.Category(), "s")
}

// HasDefinition reports whether objects of this kind are compared by source text.
func (k Kind) HasDefinition() bool {
	return k == Function || k == Procedure || k == Trigger
}

// ParseCategory maps a config category name to its Kind.
func ParseCategory(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, c := range kindCategories {
		if c == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// ParseCategories parses a comma separated category list, keeping its order and
// dropping duplicates.
func ParseCategories(list string) ([]Kind, error) {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseCategory(part)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: empty category list", ErrUnknownCategory)
	}
	return kinds, nil
}

// ObjectDescriptor identifies one database object.
type ObjectDescriptor struct {
	Kind   Kind
	Schema string
	Name   string
}

func (d ObjectDescriptor) String() string {
	return fmt.Sprintf("%s - %s.%s", d.Kind, d.Schema, d.Name)
}

// ColumnSpec is the canonical form of one column. Length and Precision/Scale are
// never set together.
type ColumnSpec struct {
	DataType  string  `json:"datatype"`
	Length    *int    `json:"length,omitempty"`
	Precision *int    `json:"precision,omitempty"`
	Scale     *int    `json:"scale,omitempty"`
	Default   *string `json:"default,omitempty"`
	Nullable  *bool   `json:"is_nullable,omitempty"`
}

// Equal compares every optional field by value.
func (c ColumnSpec) Equal(o ColumnSpec) bool {
	return c.DataType == o.DataType &&
		equalPtr(c.Length, o.Length) &&
		equalPtr(c.Precision, o.Precision) &&
		equalPtr(c.Scale, o.Scale) &&
		equalPtr(c.Default, o.Default) &&
		equalPtr(c.Nullable, o.Nullable)
}

func (c ColumnSpec) String() string {
	parts := []string{"datatype: " + c.DataType}
	if c.Length != nil {
		parts = append(parts, "length: "+strconv.Itoa(*c.Length))
	}
	if c.Precision != nil {
		parts = append(parts, "precision: "+strconv.Itoa(*c.Precision))
	}
	if c.Scale != nil {
		parts = append(parts, "scale: "+strconv.Itoa(*c.Scale))
	}
	if c.Default != nil {
		parts = append(parts, "default: "+*c.Default)
	}
	if c.Nullable != nil {
		parts = append(parts, "nullable: "+strconv.FormatBool(*c.Nullable))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type ForeignKey struct {
	Columns           []string `json:"column"`
	ReferencedTable   string   `json:"referenced_table"`
	ReferencedColumns []string `json:"referenced_columns"`
}

// SchemaRecord is the canonical representation of one object. Columns keep the
// order in which they were set (physical column order).
type SchemaRecord struct {
	columnNames []string
	columns     map[string]ColumnSpec

	PrimaryKey        []string
	ForeignKeys       []ForeignKey
	UniqueConstraints [][]string
	CheckConstraints  []string

	// Definition is set for functions, procedures and triggers only.
	Definition *string
}

// SetColumn adds or replaces a column. A replaced column keeps its position.
func (r *SchemaRecord) SetColumn(name string, spec ColumnSpec) {
	if r.columns == nil {
		r.columns = make(map[string]ColumnSpec)
	}
	if _, ok := r.columns[name]; !ok {
		r.columnNames = append(r.columnNames, name)
	}
	r.columns[name] = spec
}

// Columns returns column names in physical order.
func (r SchemaRecord) Columns() []string {
	return r.columnNames
}

func (r SchemaRecord) Column(name string) (ColumnSpec, bool) {
	c, ok := r.columns[name]
	return c, ok
}

// IsEmpty reports whether extraction produced nothing for the object.
func (r SchemaRecord) IsEmpty() bool {
	return len(r.columnNames) == 0 &&
		r.Definition == nil &&
		len(r.PrimaryKey) == 0 &&
		len(r.ForeignKeys) == 0 &&
		len(r.UniqueConstraints) == 0 &&
		len(r.CheckConstraints) == 0
}

// SchemaSet maps object names to records for one side and one category,
// iterating in insertion order.
type SchemaSet struct {
	names   []string
	records map[string]SchemaRecord
}

func NewSchemaSet() *SchemaSet {
	return &SchemaSet{records: make(map[string]SchemaRecord)}
}

// Add stores a record. Re-adding a name replaces the record in place.
func (s *SchemaSet) Add(name string, rec SchemaRecord) {
	if _, ok := s.records[name]; !ok {
		s.names = append(s.names, name)
	}
	s.records[name] = rec
}

func (s *SchemaSet) Get(name string) (SchemaRecord, bool) {
	rec, ok := s.records[name]
	return rec, ok
}

func (s *SchemaSet) Has(name string) bool {
	_, ok := s.records[name]
	return ok
}

func (s *SchemaSet) Names() []string {
	return s.names
}

func (s *SchemaSet) Len() int {
	return len(s.names)
}
