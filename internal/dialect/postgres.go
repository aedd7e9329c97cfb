package dialect

import (
	"fmt"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) ListTablesQuery() string {
	// use $1 placeholder
	return `SELECT table_name FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) ListViewsQuery() string {
	return `SELECT table_name FROM information_schema.views WHERE table_schema = $1 ORDER BY table_name`
}

func (d *PostgresDialect) ColumnsQuery() string {
	// format_type renders the full label including modifiers: character varying(50), numeric(10,2)
	return `
		SELECT a.attname,
			format_type(a.atttypid, a.atttypmod),
			CASE WHEN a.attnotnull THEN 'NO' ELSE 'YES' END,
			pg_get_expr(ad.adbin, ad.adrelid)
		FROM pg_catalog.pg_attribute a
		JOIN pg_catalog.pg_class c ON c.oid = a.attrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
		LEFT JOIN pg_catalog.pg_attrdef ad ON ad.adrelid = a.attrelid AND ad.adnum = a.attnum
		WHERE n.nspname = $1 AND c.relname = $2 AND a.attnum > 0 AND NOT a.attisdropped
		ORDER BY a.attnum`
}

func (d *PostgresDialect) PrimaryKeyQuery() string {
	return `
		SELECT kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_schema = tc.constraint_schema AND kcu.constraint_name = tc.constraint_name
		WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'PRIMARY KEY'
		ORDER BY kcu.ordinal_position`
}

func (d *PostgresDialect) ForeignKeysQuery() string {
	return `
		SELECT con.conname, att.attname, ref.relname, ratt.attname
		FROM pg_catalog.pg_constraint con
		JOIN pg_catalog.pg_class rel ON rel.oid = con.conrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = rel.relnamespace
		JOIN pg_catalog.pg_class ref ON ref.oid = con.confrelid
		CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS k(col, refcol, pos)
		JOIN pg_catalog.pg_attribute att ON att.attrelid = con.conrelid AND att.attnum = k.col
		JOIN pg_catalog.pg_attribute ratt ON ratt.attrelid = con.confrelid AND ratt.attnum = k.refcol
		WHERE con.contype = 'f' AND n.nspname = $1 AND rel.relname = $2
		ORDER BY con.conname, k.pos`
}

func (d *PostgresDialect) UniqueConstraintsQuery() string {
	return `
		SELECT tc.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_schema = tc.constraint_schema AND kcu.constraint_name = tc.constraint_name
		WHERE tc.table_schema = $1 AND tc.table_name = $2 AND tc.constraint_type = 'UNIQUE'
		ORDER BY tc.constraint_name, kcu.ordinal_position`
}

func (d *PostgresDialect) CheckConstraintsQuery() string {
	return `
		SELECT con.conname, pg_get_constraintdef(con.oid)
		FROM pg_catalog.pg_constraint con
		JOIN pg_catalog.pg_class rel ON rel.oid = con.conrelid
		JOIN pg_catalog.pg_namespace n ON n.oid = rel.relnamespace
		WHERE con.contype = 'c' AND n.nspname = $1 AND rel.relname = $2
		ORDER BY con.conname`
}

func (d *PostgresDialect) CatalogQueries() CatalogQueries {
	// Overloaded routines and same-named triggers on different tables share a
	// name; their definitions are concatenated in a fixed order.
	return CatalogQueries{
		FunctionsList: `SELECT DISTINCT p.proname FROM pg_catalog.pg_proc p JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
			WHERE n.nspname = :schema_name AND p.prokind = 'f' ORDER BY p.proname`,
		FunctionDefinition: `SELECT p.proname, string_agg(pg_get_functiondef(p.oid), E'\n' ORDER BY pg_get_function_identity_arguments(p.oid))
			FROM pg_catalog.pg_proc p JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
			WHERE n.nspname = :schema_name AND p.proname = :object_name AND p.prokind = 'f' GROUP BY p.proname`,
		ProceduresList: `SELECT DISTINCT p.proname FROM pg_catalog.pg_proc p JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
			WHERE n.nspname = :schema_name AND p.prokind = 'p' ORDER BY p.proname`,
		ProcedureDefinition: `SELECT p.proname, string_agg(pg_get_functiondef(p.oid), E'\n' ORDER BY pg_get_function_identity_arguments(p.oid))
			FROM pg_catalog.pg_proc p JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
			WHERE n.nspname = :schema_name AND p.proname = :object_name AND p.prokind = 'p' GROUP BY p.proname`,
		TriggersList: `SELECT DISTINCT t.tgname FROM pg_catalog.pg_trigger t JOIN pg_catalog.pg_class c ON c.oid = t.tgrelid JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
			WHERE n.nspname = :schema_name AND NOT t.tgisinternal ORDER BY t.tgname`,
		TriggerDefinition: `SELECT t.tgname, string_agg(pg_get_triggerdef(t.oid), E'\n' ORDER BY c.relname)
			FROM pg_catalog.pg_trigger t JOIN pg_catalog.pg_class c ON c.oid = t.tgrelid JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
			WHERE n.nspname = :schema_name AND t.tgname = :object_name AND NOT t.tgisinternal GROUP BY t.tgname`,
		CheckConstraints: `SELECT con.conname, pg_get_constraintdef(con.oid) FROM pg_catalog.pg_constraint con
			JOIN pg_catalog.pg_class rel ON rel.oid = con.conrelid JOIN pg_catalog.pg_namespace n ON n.oid = rel.relnamespace
			WHERE con.contype = 'c' AND n.nspname = :schema_name AND rel.relname = :object_name ORDER BY con.conname`,
	}
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
