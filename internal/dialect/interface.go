package dialect

// Dialect abstracts database-specific catalog access.
//
// Per-object introspection queries take two positional arguments, schema name and
// object name, in that order. Enumeration queries take the schema name only.
type Dialect interface {
	Name() string

	// Enumeration
	ListTablesQuery() string
	ListViewsQuery() string

	// Introspection. Columns return (name, type label, nullable, default);
	// primary keys return column names in key order; foreign keys return
	// (constraint, column, referenced table, referenced column); unique
	// constraints return (constraint, column).
	ColumnsQuery() string
	PrimaryKeyQuery() string
	ForeignKeysQuery() string
	UniqueConstraintsQuery() string

	// CheckConstraintsQuery returns (constraint, clause) rows, or "" when the
	// dialect has no native check-constraint introspection.
	CheckConstraintsQuery() string

	// CatalogQueries are the default routine and fallback queries, written with
	// :schema_name and :object_name binds. Profiles may override them.
	CatalogQueries() CatalogQueries

	Placeholder(index int) string // Returns ?, $1, @p1, :1
	GetSchemaName(input string) string
}

// CatalogQueries holds the templated lookups for objects that are compared by
// definition text, plus the catalog fallback for check constraints. List
// queries return one name column; definition queries return (name, text).
type CatalogQueries struct {
	FunctionsList       string `mapstructure:"functions_list"`
	FunctionDefinition  string `mapstructure:"function_definition"`
	ProceduresList      string `mapstructure:"procedures_list"`
	ProcedureDefinition string `mapstructure:"procedure_definition"`
	TriggersList        string `mapstructure:"triggers_list"`
	TriggerDefinition   string `mapstructure:"trigger_definition"`
	CheckConstraints    string `mapstructure:"check_constraints"`
}

// Merge returns q with every non-empty field of override applied.
func (q CatalogQueries) Merge(override CatalogQueries) CatalogQueries {
	pick := func(def, o string) string {
		if o != "" {
			return o
		}
		return def
	}
	return CatalogQueries{
		FunctionsList:       pick(q.FunctionsList, override.FunctionsList),
		FunctionDefinition:  pick(q.FunctionDefinition, override.FunctionDefinition),
		ProceduresList:      pick(q.ProceduresList, override.ProceduresList),
		ProcedureDefinition: pick(q.ProcedureDefinition, override.ProcedureDefinition),
		TriggersList:        pick(q.TriggersList, override.TriggersList),
		TriggerDefinition:   pick(q.TriggerDefinition, override.TriggerDefinition),
		CheckConstraints:    pick(q.CheckConstraints, override.CheckConstraints),
	}
}
