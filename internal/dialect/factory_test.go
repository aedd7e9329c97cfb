package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetDialect(t *testing.T) {
	cases := map[string]string{
		"postgres":  "postgres",
		"pgx":       "postgres",
		"sqlserver": "sqlserver",
		"mssql":     "sqlserver",
		"oracle":    "oracle",
		"db2":       "db2",
		"go_ibm_db": "db2",
		"mysql":     "mysql",
		"":          "mysql",
	}
	for driver, want := range cases {
		assert.Equal(t, want, GetDialect(driver).Name(), "driver %q", driver)
	}
}

func TestSchemaNameDefaults(t *testing.T) {
	assert.Equal(t, "public", GetDialect("postgres").GetSchemaName(""))
	assert.Equal(t, "dbo", GetDialect("sqlserver").GetSchemaName(""))
	assert.Equal(t, "HR", GetDialect("oracle").GetSchemaName("hr"))
	assert.Equal(t, "APP", GetDialect("db2").GetSchemaName("app"))
	assert.Equal(t, "shop", GetDialect("mysql").GetSchemaName("shop"))
}

func TestCheckConstraintSupport(t *testing.T) {
	for _, name := range []string{"mysql", "postgres", "sqlserver", "oracle"} {
		assert.NotEmpty(t, GetDialect(name).CheckConstraintsQuery(), name)
	}
	db2 := GetDialect("db2")
	assert.Empty(t, db2.CheckConstraintsQuery())
	assert.Contains(t, db2.CatalogQueries().CheckConstraints, "SYSIBM.SYSCHECKS")
}

func TestRoutineDefinitionQueries(t *testing.T) {
	t.Run("oracle builds a clob", func(t *testing.T) {
		q := GetDialect("oracle").CatalogQueries()
		for _, def := range []string{q.FunctionDefinition, q.ProcedureDefinition} {
			assert.NotContains(t, def, "LISTAGG")
			assert.Contains(t, def, "GETCLOBVAL()")
			assert.Contains(t, def, "ORDER BY LINE")
		}
	})

	t.Run("postgres folds overloads", func(t *testing.T) {
		q := GetDialect("postgres").CatalogQueries()
		for _, list := range []string{q.FunctionsList, q.ProceduresList, q.TriggersList} {
			assert.Contains(t, list, "SELECT DISTINCT")
		}
		for _, def := range []string{q.FunctionDefinition, q.ProcedureDefinition, q.TriggerDefinition} {
			assert.NotContains(t, def, "LIMIT 1")
			assert.Contains(t, def, "string_agg(")
		}
	})

	t.Run("db2 functions filter on schema", func(t *testing.T) {
		q := GetDialect("db2").CatalogQueries()
		assert.Contains(t, q.FunctionsList, "WHERE SCHEMA = :schema_name")
		assert.Contains(t, q.FunctionDefinition, "WHERE SCHEMA = :schema_name AND NAME = :object_name")
	})
}

func TestOracleCheckConstraintsKeepUnnamed(t *testing.T) {
	d := GetDialect("oracle")
	assert.NotContains(t, d.CheckConstraintsQuery(), "GENERATED")
	assert.Contains(t, d.CheckConstraintsQuery(), `NOT LIKE '"%" IS NOT NULL'`)
	assert.NotContains(t, d.CatalogQueries().CheckConstraints, "GENERATED")
}
