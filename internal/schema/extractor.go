package schema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"schema-validator/internal/dialect"
)

// ErrNoQuery is returned when a kind needs a catalog query that is not configured.
var ErrNoQuery = errors.New("no catalog query configured")

// Querier is the subset of *sql.DB the extractor needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// CheckMode is how a connection retrieves check constraints.
type CheckMode int

const (
	CheckNone    CheckMode = iota // no check constraints are read
	CheckNative                   // dialect introspection query
	CheckCatalog                  // configured catalog fallback query
)

func (m CheckMode) String() string {
	switch m {
	case CheckNative:
		return "native"
	case CheckCatalog:
		return "catalog"
	default:
		return "none"
	}
}

type Options struct {
	Label        string // profile name, used in logs
	Schema       string
	Queries      dialect.CatalogQueries // overrides applied on top of the dialect defaults
	QueryTimeout time.Duration
	Logger       *zap.SugaredLogger
}

// Extractor reads object metadata from one connection.
type Extractor struct {
	db      Querier
	d       dialect.Dialect
	label   string
	schema  string
	queries dialect.CatalogQueries
	timeout time.Duration
	log     *zap.SugaredLogger

	capOnce   sync.Once
	checkMode CheckMode
}

func NewExtractor(db Querier, d dialect.Dialect, opts Options) *Extractor {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Extractor{
		db:      db,
		d:       d,
		label:   opts.Label,
		schema:  d.GetSchemaName(opts.Schema),
		queries: d.CatalogQueries().Merge(opts.Queries),
		timeout: opts.QueryTimeout,
		log:     log,
	}
}

func (e *Extractor) Label() string  { return e.label }
func (e *Extractor) Schema() string { return e.schema }

// ResolveCapabilities decides once per connection how check constraints are read.
// The native query is probed with an empty object name; if the server rejects it
// the catalog query is used instead, when one is configured.
func (e *Extractor) ResolveCapabilities(ctx context.Context) CheckMode {
	e.capOnce.Do(func() {
		e.checkMode = e.probeCheckConstraints(ctx)
		e.log.Debugf("%s: check constraint introspection: %s", e.label, e.checkMode)
	})
	return e.checkMode
}

func (e *Extractor) probeCheckConstraints(ctx context.Context) CheckMode {
	if q := e.d.CheckConstraintsQuery(); q != "" {
		_, err := e.query(ctx, q, []any{e.schema, ""}, 2)
		if err == nil {
			return CheckNative
		}
		e.log.Debugf("%s: native check constraint query unsupported: %v", e.label, err)
	}
	if e.queries.CheckConstraints != "" {
		return CheckCatalog
	}
	return CheckNone
}

// ListObjects enumerates the names of all objects of one kind in the schema.
func (e *Extractor) ListObjects(ctx context.Context, kind Kind) ([]string, error) {
	var (
		q    string
		args []any
	)
	switch kind {
	case Table:
		q, args = e.d.ListTablesQuery(), []any{e.schema}
	case View:
		q, args = e.d.ListViewsQuery(), []any{e.schema}
	default:
		tmpl := e.listQuery(kind)
		if tmpl == "" {
			return nil, fmt.Errorf("%w: %s list", ErrNoQuery, kind.Singular())
		}
		q, args = e.bind(tmpl, "")
	}

	rows, err := e.query(ctx, q, args, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind.Category(), err)
	}
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if r[0].Valid && strings.TrimSpace(r[0].String) != "" {
			names = append(names, strings.TrimSpace(r[0].String))
		}
	}
	return names, nil
}

// Extract reads the raw description of one object. A missing object yields an
// empty RawObject and no error.
func (e *Extractor) Extract(ctx context.Context, kind Kind, name string) (RawObject, error) {
	obj := ObjectDescriptor{Kind: kind, Schema: e.schema, Name: name}
	return extractorFor(kind).extract(ctx, e, obj)
}

func (e *Extractor) listQuery(kind Kind) string {
	switch kind {
	case Function:
		return e.queries.FunctionsList
	case Procedure:
		return e.queries.ProceduresList
	case Trigger:
		return e.queries.TriggersList
	}
	return ""
}

func (e *Extractor) definitionQuery(kind Kind) string {
	switch kind {
	case Function:
		return e.queries.FunctionDefinition
	case Procedure:
		return e.queries.ProcedureDefinition
	case Trigger:
		return e.queries.TriggerDefinition
	}
	return ""
}

func (e *Extractor) bind(tmpl, object string) (string, []any) {
	return dialect.BindNamed(tmpl, e.d.Placeholder, map[string]any{
		dialect.ParamSchema: e.schema,
		dialect.ParamObject: object,
	})
}

func (e *Extractor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.timeout)
}

// query runs q and scans every row into width nullable strings. Rows are
// released on every path.
func (e *Extractor) query(ctx context.Context, q string, args []any, width int) ([][]sql.NullString, error) {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out [][]sql.NullString
	for rows.Next() {
		vals := make([]sql.NullString, width)
		dest := make([]any, width)
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------
// Per-kind extraction
// ---------------------------------------------------------------------

type objectExtractor interface {
	extract(ctx context.Context, e *Extractor, obj ObjectDescriptor) (RawObject, error)
}

func extractorFor(kind Kind) objectExtractor {
	switch kind {
	case Table:
		return tableExtractor{}
	case View:
		return viewExtractor{}
	default:
		return definitionExtractor{}
	}
}

type tableExtractor struct{}

func (tableExtractor) extract(ctx context.Context, e *Extractor, obj ObjectDescriptor) (RawObject, error) {
	raw := RawObject{Object: obj}
	args := []any{obj.Schema, obj.Name}

	cols, err := e.query(ctx, e.d.ColumnsQuery(), args, 4)
	if err != nil {
		return raw, fmt.Errorf("failed to query columns: %w", err)
	}
	for _, r := range cols {
		raw.Columns = append(raw.Columns, RawColumn{
			Name:      r[0].String,
			TypeLabel: r[1].String,
			Nullable:  parseNullable(r[2]),
			Default:   trimmedOrNil(r[3]),
		})
	}

	pk, err := e.query(ctx, e.d.PrimaryKeyQuery(), args, 1)
	if err != nil {
		return raw, fmt.Errorf("failed to query primary key: %w", err)
	}
	for _, r := range pk {
		raw.PrimaryKey = append(raw.PrimaryKey, strings.TrimSpace(r[0].String))
	}

	fks, err := e.query(ctx, e.d.ForeignKeysQuery(), args, 4)
	if err != nil {
		return raw, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	raw.ForeignKeys = groupForeignKeys(fks)

	uqs, err := e.query(ctx, e.d.UniqueConstraintsQuery(), args, 2)
	if err != nil {
		return raw, fmt.Errorf("failed to query unique constraints: %w", err)
	}
	for _, g := range groupByConstraint(uqs) {
		cols := make([]string, len(g))
		for i, r := range g {
			cols[i] = strings.TrimSpace(r[1].String)
		}
		raw.UniqueConstraints = append(raw.UniqueConstraints, cols)
	}

	raw.CheckConstraints = e.checkConstraints(ctx, obj)
	return raw, nil
}

// checkConstraints never fails; an erroring or empty lookup means no constraints.
func (e *Extractor) checkConstraints(ctx context.Context, obj ObjectDescriptor) []string {
	var (
		q    string
		args []any
	)
	switch e.ResolveCapabilities(ctx) {
	case CheckNative:
		q, args = e.d.CheckConstraintsQuery(), []any{obj.Schema, obj.Name}
	case CheckCatalog:
		q, args = e.bind(e.queries.CheckConstraints, obj.Name)
	default:
		return nil
	}

	rows, err := e.query(ctx, q, args, 2)
	if err != nil {
		e.log.Debugf("%s: check constraints for %s unavailable: %v", e.label, obj, err)
		return nil
	}
	var clauses []string
	for _, r := range rows {
		if r[1].Valid {
			clauses = append(clauses, strings.TrimSpace(r[1].String))
		}
	}
	return clauses
}

type viewExtractor struct{}

// Views carry names and type labels only.
func (viewExtractor) extract(ctx context.Context, e *Extractor, obj ObjectDescriptor) (RawObject, error) {
	raw := RawObject{Object: obj}
	cols, err := e.query(ctx, e.d.ColumnsQuery(), []any{obj.Schema, obj.Name}, 4)
	if err != nil {
		return raw, fmt.Errorf("failed to query view columns: %w", err)
	}
	for _, r := range cols {
		raw.Columns = append(raw.Columns, RawColumn{Name: r[0].String, TypeLabel: r[1].String})
	}
	return raw, nil
}

type definitionExtractor struct{}

// Only the first row counts; no row means an empty description.
func (definitionExtractor) extract(ctx context.Context, e *Extractor, obj ObjectDescriptor) (RawObject, error) {
	raw := RawObject{Object: obj}
	tmpl := e.definitionQuery(obj.Kind)
	if tmpl == "" {
		return raw, fmt.Errorf("%w: %s definition", ErrNoQuery, obj.Kind.Singular())
	}
	q, args := e.bind(tmpl, obj.Name)
	rows, err := e.query(ctx, q, args, 2)
	if err != nil {
		return raw, fmt.Errorf("failed to query %s definition: %w", obj.Kind.Singular(), err)
	}
	if len(rows) > 0 && rows[0][1].Valid {
		def := rows[0][1].String
		raw.Definition = &def
	}
	return raw, nil
}

// groupByConstraint splits rows on their first column, keeping first-seen order.
func groupByConstraint(rows [][]sql.NullString) [][][]sql.NullString {
	var (
		groups [][][]sql.NullString
		index  = make(map[string]int)
	)
	for _, r := range rows {
		name := r[0].String
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], r)
	}
	return groups
}

func groupForeignKeys(rows [][]sql.NullString) []ForeignKey {
	var fks []ForeignKey
	for _, g := range groupByConstraint(rows) {
		fk := ForeignKey{ReferencedTable: strings.TrimSpace(g[0][2].String)}
		for _, r := range g {
			fk.Columns = append(fk.Columns, strings.TrimSpace(r[1].String))
			fk.ReferencedColumns = append(fk.ReferencedColumns, strings.TrimSpace(r[3].String))
		}
		fks = append(fks, fk)
	}
	return fks
}

func parseNullable(v sql.NullString) *bool {
	if !v.Valid {
		return nil
	}
	var b bool
	switch strings.ToUpper(strings.TrimSpace(v.String)) {
	case "YES", "Y":
		b = true
	case "NO", "N":
		b = false
	default:
		return nil
	}
	return &b
}

func trimmedOrNil(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := strings.TrimSpace(v.String)
	return &s
}
