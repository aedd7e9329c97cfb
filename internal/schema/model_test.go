package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-validator/internal/schema"
)

func TestParseCategories(t *testing.T) {
	kinds, err := schema.ParseCategories("tables, Views,stored_procedures,tables,, triggers")
	require.NoError(t, err)
	assert.Equal(t, []schema.Kind{schema.Table, schema.View, schema.Procedure, schema.Trigger}, kinds)

	_, err = schema.ParseCategories("tables,sequences")
	assert.ErrorIs(t, err, schema.ErrUnknownCategory)

	_, err = schema.ParseCategories(" , ")
	assert.ErrorIs(t, err, schema.ErrUnknownCategory)
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "PROCEDURE", schema.Procedure.String())
	assert.Equal(t, "stored_procedures", schema.Procedure.Category())
	assert.Equal(t, "stored_procedure", schema.Procedure.Singular())
	assert.True(t, schema.Trigger.HasDefinition())
	assert.False(t, schema.View.HasDefinition())
}

func TestColumnSpecString(t *testing.T) {
	yes := true
	c := schema.ColumnSpec{DataType: "varchar", Length: intPtr(50), Nullable: &yes}
	assert.Equal(t, "{datatype: varchar, length: 50, nullable: true}", c.String())
}

func TestSchemaSetOrder(t *testing.T) {
	set := schema.NewSchemaSet()
	var a, b schema.SchemaRecord
	a.SetColumn("z", schema.ColumnSpec{DataType: "int"})
	a.SetColumn("a", schema.ColumnSpec{DataType: "int"})
	a.SetColumn("z", schema.ColumnSpec{DataType: "bigint"})
	b.SetColumn("id", schema.ColumnSpec{DataType: "int"})

	set.Add("orders", a)
	set.Add("items", b)
	set.Add("orders", a)

	assert.Equal(t, []string{"orders", "items"}, set.Names())
	assert.Equal(t, 2, set.Len())
	rec, ok := set.Get("orders")
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, rec.Columns())
	z, _ := rec.Column("z")
	assert.Equal(t, "bigint", z.DataType)
}

func TestSchemaSetJSON(t *testing.T) {
	set := schema.NewSchemaSet()
	var tbl schema.SchemaRecord
	tbl.SetColumn("name", schema.ColumnSpec{DataType: "varchar", Length: intPtr(50)})
	tbl.SetColumn("id", schema.ColumnSpec{DataType: "int"})
	tbl.PrimaryKey = []string{"id"}
	set.Add("users", tbl)

	body := "BEGIN END"
	set.Add("proc", schema.SchemaRecord{Definition: &body})

	out, err := json.Marshal(set)
	require.NoError(t, err)
	assert.Equal(t,
		`{"users":{"name":{"datatype":"varchar","length":50},"id":{"datatype":"int"},"primary_key":["id"]},"proc":{"definition":"BEGIN END"}}`,
		string(out))
}

func TestErrorLog(t *testing.T) {
	log := schema.NewErrorLog()
	log.Record(schema.Source, schema.ObjectDescriptor{Kind: schema.Table, Schema: "s", Name: "a"}, nil)
	other := schema.NewErrorLog()
	other.Record(schema.Target, schema.ObjectDescriptor{Kind: schema.View, Schema: "s", Name: "v"}, assert.AnError)
	log.Merge(other)
	log.Merge(nil)

	assert.Equal(t, 2, log.Len())
	require.Len(t, log.BySide(schema.Target), 1)
	assert.Equal(t, "VIEW - s.v: "+assert.AnError.Error(), log.BySide(schema.Target)[0].String())
	assert.Equal(t, "TABLE - s.a", log.BySide(schema.Source)[0].String())
}
