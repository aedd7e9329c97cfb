package dialect

import (
	"fmt"
	"strings"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string {
	return "oracle"
}

func (d *OracleDialect) ListTablesQuery() string {
	return `SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = :1 ORDER BY TABLE_NAME`
}

func (d *OracleDialect) ListViewsQuery() string {
	return `SELECT VIEW_NAME FROM ALL_VIEWS WHERE OWNER = :1 ORDER BY VIEW_NAME`
}

func (d *OracleDialect) ColumnsQuery() string {
	// DATA_LENGTH is bytes for everything; only character types get a length clause
	return `
		SELECT
			COLUMN_NAME,
			CASE
				WHEN DATA_TYPE IN ('VARCHAR2', 'NVARCHAR2', 'CHAR', 'NCHAR') THEN DATA_TYPE || '(' || CHAR_LENGTH || ')'
				WHEN DATA_TYPE = 'NUMBER' AND DATA_PRECISION IS NOT NULL THEN DATA_TYPE || '(' || DATA_PRECISION || ',' || NVL(DATA_SCALE, 0) || ')'
				WHEN DATA_TYPE = 'RAW' THEN DATA_TYPE || '(' || DATA_LENGTH || ')'
				ELSE DATA_TYPE
			END,
			NULLABLE,
			DATA_DEFAULT
		FROM ALL_TAB_COLUMNS
		WHERE OWNER = :1 AND TABLE_NAME = :2
		ORDER BY COLUMN_ID`
}

func (d *OracleDialect) PrimaryKeyQuery() string {
	return `
		SELECT cols.COLUMN_NAME
		FROM ALL_CONSTRAINTS cons
		JOIN ALL_CONS_COLUMNS cols ON cols.OWNER = cons.OWNER AND cols.CONSTRAINT_NAME = cons.CONSTRAINT_NAME
		WHERE cons.OWNER = :1 AND cons.TABLE_NAME = :2 AND cons.CONSTRAINT_TYPE = 'P'
		ORDER BY cols.POSITION`
}

func (d *OracleDialect) ForeignKeysQuery() string {
	return `
		SELECT a.CONSTRAINT_NAME, a.COLUMN_NAME, c_pk.TABLE_NAME, b.COLUMN_NAME
		FROM ALL_CONS_COLUMNS a
		JOIN ALL_CONSTRAINTS c ON a.OWNER = c.OWNER AND a.CONSTRAINT_NAME = c.CONSTRAINT_NAME
		JOIN ALL_CONSTRAINTS c_pk ON c.R_OWNER = c_pk.OWNER AND c.R_CONSTRAINT_NAME = c_pk.CONSTRAINT_NAME
		JOIN ALL_CONS_COLUMNS b ON b.OWNER = c_pk.OWNER AND b.CONSTRAINT_NAME = c_pk.CONSTRAINT_NAME AND b.POSITION = a.POSITION
		WHERE c.CONSTRAINT_TYPE = 'R' AND a.OWNER = :1 AND a.TABLE_NAME = :2
		ORDER BY a.CONSTRAINT_NAME, a.POSITION`
}

func (d *OracleDialect) UniqueConstraintsQuery() string {
	return `
		SELECT cons.CONSTRAINT_NAME, cols.COLUMN_NAME
		FROM ALL_CONSTRAINTS cons
		JOIN ALL_CONS_COLUMNS cols ON cols.OWNER = cons.OWNER AND cols.CONSTRAINT_NAME = cons.CONSTRAINT_NAME
		WHERE cons.OWNER = :1 AND cons.TABLE_NAME = :2 AND cons.CONSTRAINT_TYPE = 'U'
		ORDER BY cons.CONSTRAINT_NAME, cols.POSITION`
}

func (d *OracleDialect) CheckConstraintsQuery() string {
	// SEARCH_CONDITION_VC is 12c+; older servers take the catalog fallback.
	// Unnamed checks get SYS_C names that differ per database, so rows are
	// ordered by clause.
	return `
		SELECT CONSTRAINT_NAME, SEARCH_CONDITION_VC
		FROM ALL_CONSTRAINTS
		WHERE OWNER = :1 AND TABLE_NAME = :2 AND CONSTRAINT_TYPE = 'C'
			AND SEARCH_CONDITION_VC NOT LIKE '"%" IS NOT NULL'
		ORDER BY SEARCH_CONDITION_VC`
}

func (d *OracleDialect) CatalogQueries() CatalogQueries {
	// ALL_SOURCE stores one row per line. XMLAGG builds a CLOB, LISTAGG would
	// stop at 4000 bytes.
	source := func(kind string) string {
		return `SELECT NAME, DBMS_XMLGEN.CONVERT(XMLAGG(XMLELEMENT(e, TEXT).EXTRACT('//text()') ORDER BY LINE).GETCLOBVAL(), 1)
			FROM ALL_SOURCE
			WHERE OWNER = :schema_name AND NAME = :object_name AND TYPE = '` + kind + `' GROUP BY NAME`
	}
	objects := func(kind string) string {
		return `SELECT OBJECT_NAME FROM ALL_OBJECTS WHERE OWNER = :schema_name AND OBJECT_TYPE = '` + kind + `' ORDER BY OBJECT_NAME`
	}
	return CatalogQueries{
		FunctionsList:       objects("FUNCTION"),
		FunctionDefinition:  source("FUNCTION"),
		ProceduresList:      objects("PROCEDURE"),
		ProcedureDefinition: source("PROCEDURE"),
		TriggersList:        objects("TRIGGER"),
		TriggerDefinition:   `SELECT TRIGGER_NAME, TRIGGER_BODY FROM ALL_TRIGGERS WHERE OWNER = :schema_name AND TRIGGER_NAME = :object_name`,
		// SEARCH_CONDITION is a LONG and cannot be filtered, so implicit
		// NOT NULL checks are included on pre-12c servers
		CheckConstraints: `SELECT CONSTRAINT_NAME, SEARCH_CONDITION FROM ALL_CONSTRAINTS
			WHERE OWNER = :schema_name AND TABLE_NAME = :object_name AND CONSTRAINT_TYPE = 'C'`,
	}
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc.
	return fmt.Sprintf(":%d", index+1)
}

// Oracle stores unquoted identifiers upper-case.
func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}
