package dialect

import "strings"

// DB2Dialect reads SYSCAT views. It has no native check-constraint query, so
// check constraints always come from the SYSIBM.SYSCHECKS catalog query.
type DB2Dialect struct{}

func (d *DB2Dialect) Name() string {
	return "db2"
}

func (d *DB2Dialect) ListTablesQuery() string {
	return `SELECT TABNAME FROM SYSCAT.TABLES WHERE TABSCHEMA = ? AND TYPE = 'T' ORDER BY TABNAME`
}

func (d *DB2Dialect) ListViewsQuery() string {
	return `SELECT TABNAME FROM SYSCAT.TABLES WHERE TABSCHEMA = ? AND TYPE = 'V' ORDER BY TABNAME`
}

func (d *DB2Dialect) ColumnsQuery() string {
	return `
		SELECT
			COLNAME,
			CASE
				WHEN TYPENAME IN ('VARCHAR', 'CHARACTER', 'VARGRAPHIC', 'GRAPHIC', 'CLOB', 'BLOB', 'DBCLOB')
					THEN TRIM(TYPENAME) || '(' || VARCHAR(LENGTH) || ')'
				WHEN TYPENAME = 'DECIMAL'
					THEN TRIM(TYPENAME) || '(' || VARCHAR(LENGTH) || ',' || VARCHAR(SCALE) || ')'
				ELSE TRIM(TYPENAME)
			END,
			NULLS,
			DEFAULT
		FROM SYSCAT.COLUMNS
		WHERE TABSCHEMA = ? AND TABNAME = ?
		ORDER BY COLNO`
}

func (d *DB2Dialect) PrimaryKeyQuery() string {
	return `
		SELECT k.COLNAME
		FROM SYSCAT.TABCONST c
		JOIN SYSCAT.KEYCOLUSE k ON c.CONSTNAME = k.CONSTNAME AND c.TABSCHEMA = k.TABSCHEMA AND c.TABNAME = k.TABNAME
		WHERE c.TABSCHEMA = ? AND c.TABNAME = ? AND c.TYPE = 'P'
		ORDER BY k.COLSEQ`
}

func (d *DB2Dialect) ForeignKeysQuery() string {
	// FK_COLNAMES/PK_COLNAMES are space padded lists; join on position via KEYCOLUSE instead
	return `
		SELECT r.CONSTNAME, fk.COLNAME, r.REFTABNAME, pk.COLNAME
		FROM SYSCAT.REFERENCES r
		JOIN SYSCAT.KEYCOLUSE fk ON fk.CONSTNAME = r.CONSTNAME AND fk.TABSCHEMA = r.TABSCHEMA AND fk.TABNAME = r.TABNAME
		JOIN SYSCAT.KEYCOLUSE pk ON pk.CONSTNAME = r.REFKEYNAME AND pk.TABSCHEMA = r.REFTABSCHEMA AND pk.TABNAME = r.REFTABNAME AND pk.COLSEQ = fk.COLSEQ
		WHERE r.TABSCHEMA = ? AND r.TABNAME = ?
		ORDER BY r.CONSTNAME, fk.COLSEQ`
}

func (d *DB2Dialect) UniqueConstraintsQuery() string {
	return `
		SELECT c.CONSTNAME, k.COLNAME
		FROM SYSCAT.TABCONST c
		JOIN SYSCAT.KEYCOLUSE k ON c.CONSTNAME = k.CONSTNAME AND c.TABSCHEMA = k.TABSCHEMA AND c.TABNAME = k.TABNAME
		WHERE c.TABSCHEMA = ? AND c.TABNAME = ? AND c.TYPE = 'U'
		ORDER BY c.CONSTNAME, k.COLSEQ`
}

func (d *DB2Dialect) CheckConstraintsQuery() string {
	return ""
}

func (d *DB2Dialect) CatalogQueries() CatalogQueries {
	return CatalogQueries{
		FunctionsList:       `SELECT NAME FROM SYSIBM.SYSFUNCTIONS WHERE SCHEMA = :schema_name ORDER BY NAME`,
		FunctionDefinition:  `SELECT NAME, BODY FROM SYSIBM.SYSFUNCTIONS WHERE SCHEMA = :schema_name AND NAME = :object_name`,
		ProceduresList:      `SELECT PROCNAME FROM SYSIBM.SYSPROCEDURES WHERE PROCSCHEMA = :schema_name ORDER BY PROCNAME`,
		ProcedureDefinition: `SELECT PROCNAME, TEXT FROM SYSIBM.SYSPROCEDURES WHERE PROCSCHEMA = :schema_name AND PROCNAME = :object_name`,
		TriggersList:        `SELECT NAME FROM SYSIBM.SYSTRIGGERS WHERE SCHEMA = :schema_name ORDER BY NAME`,
		TriggerDefinition:   `SELECT NAME, TEXT FROM SYSIBM.SYSTRIGGERS WHERE SCHEMA = :schema_name AND NAME = :object_name`,
		CheckConstraints:    `SELECT NAME, TEXT FROM SYSIBM.SYSCHECKS WHERE TBCREATOR = :schema_name AND TBNAME = :object_name`,
	}
}

func (d *DB2Dialect) Placeholder(index int) string {
	return "?"
}

func (d *DB2Dialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}
