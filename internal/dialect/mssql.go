package dialect

import (
	"fmt"
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) prefers @p1, @p2 named parameters over ?

func (d *MSSQLDialect) Name() string {
	return "sqlserver"
}

func (d *MSSQLDialect) ListTablesQuery() string {
	// Use @p1 for schema binding
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MSSQLDialect) ListViewsQuery() string {
	return `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.VIEWS WHERE TABLE_SCHEMA = @p1 ORDER BY TABLE_NAME`
}

func (d *MSSQLDialect) ColumnsQuery() string {
	// Rebuild the declared label from INFORMATION_SCHEMA: nvarchar(50), decimal(10,2).
	// Integer types report NUMERIC_PRECISION too, so only decimal/numeric get (p,s).
	return `
		SELECT
			c.COLUMN_NAME,
			CASE
				WHEN c.CHARACTER_MAXIMUM_LENGTH = -1 THEN c.DATA_TYPE + '(max)'
				WHEN c.CHARACTER_MAXIMUM_LENGTH IS NOT NULL THEN c.DATA_TYPE + '(' + CAST(c.CHARACTER_MAXIMUM_LENGTH AS VARCHAR(10)) + ')'
				WHEN c.DATA_TYPE IN ('decimal', 'numeric') THEN c.DATA_TYPE + '(' + CAST(c.NUMERIC_PRECISION AS VARCHAR(10)) + ',' + CAST(c.NUMERIC_SCALE AS VARCHAR(10)) + ')'
				ELSE c.DATA_TYPE
			END,
			c.IS_NULLABLE,
			c.COLUMN_DEFAULT
		FROM INFORMATION_SCHEMA.COLUMNS c
		WHERE c.TABLE_SCHEMA = @p1 AND c.TABLE_NAME = @p2
		ORDER BY c.ORDINAL_POSITION`
}

func (d *MSSQLDialect) PrimaryKeyQuery() string {
	return `
		SELECT kcu.COLUMN_NAME
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
			ON kcu.CONSTRAINT_SCHEMA = tc.CONSTRAINT_SCHEMA AND kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME
		WHERE tc.TABLE_SCHEMA = @p1 AND tc.TABLE_NAME = @p2 AND tc.CONSTRAINT_TYPE = 'PRIMARY KEY'
		ORDER BY kcu.ORDINAL_POSITION`
}

func (d *MSSQLDialect) ForeignKeysQuery() string {
	return `
		SELECT fk.name, pc.name, rt.name, rc.name
		FROM sys.foreign_keys fk
		JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
		JOIN sys.tables t ON t.object_id = fk.parent_object_id
		JOIN sys.schemas s ON s.schema_id = t.schema_id
		JOIN sys.columns pc ON pc.object_id = fkc.parent_object_id AND pc.column_id = fkc.parent_column_id
		JOIN sys.tables rt ON rt.object_id = fkc.referenced_object_id
		JOIN sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
		WHERE s.name = @p1 AND t.name = @p2
		ORDER BY fk.name, fkc.constraint_column_id`
}

func (d *MSSQLDialect) UniqueConstraintsQuery() string {
	return `
		SELECT tc.CONSTRAINT_NAME, kcu.COLUMN_NAME
		FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
		JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu
			ON kcu.CONSTRAINT_SCHEMA = tc.CONSTRAINT_SCHEMA AND kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME
		WHERE tc.TABLE_SCHEMA = @p1 AND tc.TABLE_NAME = @p2 AND tc.CONSTRAINT_TYPE = 'UNIQUE'
		ORDER BY tc.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`
}

func (d *MSSQLDialect) CheckConstraintsQuery() string {
	return `
		SELECT cc.CONSTRAINT_NAME, cc.CHECK_CLAUSE
		FROM INFORMATION_SCHEMA.CHECK_CONSTRAINTS cc
		JOIN INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc
			ON tc.CONSTRAINT_SCHEMA = cc.CONSTRAINT_SCHEMA AND tc.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
		WHERE tc.TABLE_SCHEMA = @p1 AND tc.TABLE_NAME = @p2
		ORDER BY cc.CONSTRAINT_NAME`
}

func (d *MSSQLDialect) CatalogQueries() CatalogQueries {
	return CatalogQueries{
		FunctionsList: `SELECT o.name FROM sys.objects o JOIN sys.schemas s ON s.schema_id = o.schema_id
			WHERE s.name = :schema_name AND o.type IN ('FN', 'IF', 'TF') ORDER BY o.name`,
		FunctionDefinition: `SELECT o.name, m.definition FROM sys.objects o JOIN sys.schemas s ON s.schema_id = o.schema_id
			JOIN sys.sql_modules m ON m.object_id = o.object_id
			WHERE s.name = :schema_name AND o.name = :object_name AND o.type IN ('FN', 'IF', 'TF')`,
		ProceduresList: `SELECT o.name FROM sys.objects o JOIN sys.schemas s ON s.schema_id = o.schema_id
			WHERE s.name = :schema_name AND o.type = 'P' ORDER BY o.name`,
		ProcedureDefinition: `SELECT o.name, m.definition FROM sys.objects o JOIN sys.schemas s ON s.schema_id = o.schema_id
			JOIN sys.sql_modules m ON m.object_id = o.object_id
			WHERE s.name = :schema_name AND o.name = :object_name AND o.type = 'P'`,
		TriggersList: `SELECT o.name FROM sys.objects o JOIN sys.schemas s ON s.schema_id = o.schema_id
			WHERE s.name = :schema_name AND o.type = 'TR' ORDER BY o.name`,
		TriggerDefinition: `SELECT o.name, m.definition FROM sys.objects o JOIN sys.schemas s ON s.schema_id = o.schema_id
			JOIN sys.sql_modules m ON m.object_id = o.object_id
			WHERE s.name = :schema_name AND o.name = :object_name AND o.type = 'TR'`,
		CheckConstraints: `SELECT cc.name, cc.definition FROM sys.check_constraints cc
			JOIN sys.tables t ON t.object_id = cc.parent_object_id JOIN sys.schemas s ON s.schema_id = t.schema_id
			WHERE s.name = :schema_name AND t.name = :object_name`,
	}
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
