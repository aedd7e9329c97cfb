package schema

import (
	"strconv"
	"strings"
)

// RawColumn is a column as reported by the catalog, before normalization.
type RawColumn struct {
	Name      string
	TypeLabel string // e.g. "VARCHAR(50)", "decimal(10, 2)"
	Nullable  *bool
	Default   *string
}

// RawObject is the driver-level description of one object returned by an Extractor.
type RawObject struct {
	Object ObjectDescriptor

	Columns           []RawColumn
	PrimaryKey        []string
	ForeignKeys       []ForeignKey
	UniqueConstraints [][]string
	CheckConstraints  []string

	Definition *string
}

// Normalize converts a raw description into its canonical record. It never fails;
// anything it cannot parse is left out.
func Normalize(raw RawObject) SchemaRecord {
	var rec SchemaRecord
	if raw.Definition != nil {
		def := *raw.Definition
		rec.Definition = &def
		return rec
	}

	for _, col := range raw.Columns {
		if col.Name == "" {
			continue
		}
		spec := ParseDataType(col.TypeLabel)
		spec.Default = col.Default
		spec.Nullable = col.Nullable
		rec.SetColumn(col.Name, spec)
	}

	rec.PrimaryKey = raw.PrimaryKey
	rec.ForeignKeys = raw.ForeignKeys
	rec.UniqueConstraints = raw.UniqueConstraints
	rec.CheckConstraints = raw.CheckConstraints
	return rec
}

// ParseDataType splits a type label into its lower-cased base name and the
// numbers of its trailing clause: one number is a length, two are precision
// and scale. A clause that does not parse is dropped.
func ParseDataType(label string) ColumnSpec {
	base, clause, hasClause := strings.Cut(label, "(")
	spec := ColumnSpec{DataType: strings.ToLower(strings.TrimSpace(base))}
	if !hasClause {
		return spec
	}

	clause = strings.TrimSuffix(strings.TrimSpace(clause), ")")
	parts := strings.Split(clause, ",")
	switch len(parts) {
	case 1:
		if n, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			spec.Length = &n
		}
	case 2:
		p, errP := strconv.Atoi(strings.TrimSpace(parts[0]))
		s, errS := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errP == nil && errS == nil {
			spec.Precision = &p
			spec.Scale = &s
		}
	}
	return spec
}
