package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindNamed(t *testing.T) {
	params := map[string]any{ParamSchema: "APP", ParamObject: "ORDERS"}

	t.Run("positional question marks", func(t *testing.T) {
		q, args := BindNamed(`SELECT BODY FROM F WHERE CREATOR = :schema_name AND NAME = :object_name`, (&DB2Dialect{}).Placeholder, params)
		assert.Equal(t, `SELECT BODY FROM F WHERE CREATOR = ? AND NAME = ?`, q)
		assert.Equal(t, []any{"APP", "ORDERS"}, args)
	})

	t.Run("numbered placeholders follow occurrence order", func(t *testing.T) {
		q, args := BindNamed(`WHERE b = :object_name AND a = :schema_name OR c = :object_name`, (&PostgresDialect{}).Placeholder, params)
		assert.Equal(t, `WHERE b = $1 AND a = $2 OR c = $3`, q)
		assert.Equal(t, []any{"ORDERS", "APP", "ORDERS"}, args)
	})

	t.Run("casts literals and unknown names untouched", func(t *testing.T) {
		q, args := BindNamed(`SELECT x::text, ':schema_name', :other FROM t WHERE s = :schema_name`, (&MSSQLDialect{}).Placeholder, params)
		assert.Equal(t, `SELECT x::text, ':schema_name', :other FROM t WHERE s = @p1`, q)
		assert.Equal(t, []any{"APP"}, args)
	})

	t.Run("oracle style", func(t *testing.T) {
		q, _ := BindNamed(`WHERE OWNER = :schema_name`, (&OracleDialect{}).Placeholder, params)
		assert.Equal(t, `WHERE OWNER = :1`, q)
	})
}

func TestCatalogQueriesMerge(t *testing.T) {
	base := (&DB2Dialect{}).CatalogQueries()
	merged := base.Merge(CatalogQueries{FunctionDefinition: "SELECT 1, 'x'"})

	assert.Equal(t, "SELECT 1, 'x'", merged.FunctionDefinition)
	assert.Equal(t, base.FunctionsList, merged.FunctionsList)
	assert.Equal(t, base.CheckConstraints, merged.CheckConstraints)
}
