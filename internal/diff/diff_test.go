package diff_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-validator/internal/diff"
	"schema-validator/internal/schema"
)

func table(cols ...string) schema.SchemaRecord {
	var r schema.SchemaRecord
	for i := 0; i+1 < len(cols); i += 2 {
		r.SetColumn(cols[i], schema.ParseDataType(cols[i+1]))
	}
	return r
}

func setOf(pairs ...any) *schema.SchemaSet {
	s := schema.NewSchemaSet()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Add(pairs[i].(string), pairs[i+1].(schema.SchemaRecord))
	}
	return s
}

func TestCompareColumnLength(t *testing.T) {
	src := setOf("T", table("id", "int", "name", "varchar(50)"))
	tgt := setOf("T", table("id", "int", "name", "varchar(40)"))

	res := diff.Compare(src, tgt)
	got, ok := res.Get("T")
	require.True(t, ok)
	assert.Equal(t, []string{
		"Column 'name' mismatch: {datatype: varchar, length: 50} != {datatype: varchar, length: 40}",
	}, got)
}

func TestCompareMissing(t *testing.T) {
	src := setOf("a", table("id", "int"), "shared", table("id", "int"))
	tgt := setOf("shared", table("id", "int"), "b", table("id", "int"))

	res := diff.Compare(src, tgt)
	assert.Equal(t, []string{"a", "b"}, res.Names())
	a, _ := res.Get("a")
	b, _ := res.Get("b")
	assert.Equal(t, []string{diff.MissingInTarget}, a)
	assert.Equal(t, []string{diff.MissingInSource}, b)

	reverse := diff.Compare(tgt, src)
	assert.ElementsMatch(t, res.Names(), reverse.Names())
	a, _ = reverse.Get("a")
	assert.Equal(t, []string{diff.MissingInSource}, a)
}

func TestCompareColumns(t *testing.T) {
	src := setOf("T", table("id", "int", "legacy", "char(1)", "amount", "decimal(10,2)"))
	tgt := setOf("T", table("amount", "decimal(12,2)", "id", "int", "extra", "text"))

	got, _ := diff.Compare(src, tgt).Get("T")
	assert.Equal(t, []string{
		"Column 'legacy' missing in target schema",
		"Column 'amount' mismatch: {datatype: decimal, precision: 10, scale: 2} != {datatype: decimal, precision: 12, scale: 2}",
	}, got)
}

func TestCompareConstraintOrderMatters(t *testing.T) {
	src := table("a", "int", "b", "int")
	tgt := table("a", "int", "b", "int")
	src.UniqueConstraints = [][]string{{"a"}, {"b"}}
	tgt.UniqueConstraints = [][]string{{"b"}, {"a"}}

	got, ok := diff.Compare(setOf("T", src), setOf("T", tgt)).Get("T")
	require.True(t, ok)
	assert.Equal(t, []string{
		`Unique constraints mismatch: source has [["a"],["b"]] but target has [["b"],["a"]]`,
	}, got)
}

func TestCompareConstraintGroups(t *testing.T) {
	src := table("id", "int")
	tgt := table("id", "int")
	src.PrimaryKey = []string{"id"}
	src.ForeignKeys = []schema.ForeignKey{{Columns: []string{"id"}, ReferencedTable: "p", ReferencedColumns: []string{"id"}}}
	tgt.ForeignKeys = []schema.ForeignKey{{Columns: []string{"id"}, ReferencedTable: "q", ReferencedColumns: []string{"id"}}}
	src.CheckConstraints = []string{}
	tgt.CheckConstraints = nil

	got, _ := diff.Compare(setOf("T", src), setOf("T", tgt)).Get("T")
	assert.Equal(t, []string{
		`Primary key mismatch: source has ["id"] but target has []`,
		`Foreign keys mismatch: source has [{"column":["id"],"referenced_table":"p","referenced_columns":["id"]}] but target has [{"column":["id"],"referenced_table":"q","referenced_columns":["id"]}]`,
	}, got)
}

func TestCompareDefinitions(t *testing.T) {
	a, b := "BEGIN RETURN 1; END", "BEGIN RETURN 2; END"
	src := setOf("f", schema.SchemaRecord{Definition: &a}, "g", schema.SchemaRecord{Definition: &a})
	tgt := setOf("f", schema.SchemaRecord{Definition: &b}, "g", schema.SchemaRecord{Definition: &a})

	res := diff.Compare(src, tgt)
	assert.Equal(t, []string{"f"}, res.Names())
	got, _ := res.Get("f")
	assert.Equal(t, []string{`Definition mismatch: "BEGIN RETURN 1; END" != "BEGIN RETURN 2; END"`}, got)
}

func randomSet(f *gofakeit.Faker) *schema.SchemaSet {
	types := []string{"int", "varchar(%d)", "decimal(%d,2)", "date", "text"}
	set := schema.NewSchemaSet()
	tables := f.Number(1, 15)
	for i := 0; i < tables; i++ {
		var rec schema.SchemaRecord
		var cols []string
		width := f.Number(1, 10)
		for j := 0; j < width; j++ {
			name := f.LetterN(6)
			label := f.RandomString(types)
			if label != "int" && label != "date" && label != "text" {
				label = fmt.Sprintf(label, f.Number(1, 255))
			}
			rec.SetColumn(name, schema.ParseDataType(label))
			cols = append(cols, name)
		}
		if f.Bool() {
			rec.PrimaryKey = cols[:1]
		}
		if f.Bool() {
			rec.UniqueConstraints = [][]string{cols}
		}
		set.Add(f.LetterN(8), rec)
	}
	return set
}

func TestCompareIdentical(t *testing.T) {
	f := gofakeit.New(7)
	for i := 0; i < 50; i++ {
		set := randomSet(f)
		assert.Zero(t, diff.Compare(set, set).Len())
	}
}

func TestResultMergeAndJSON(t *testing.T) {
	all := diff.NewResult()
	first := diff.NewResult()
	first.Set("orders", []string{"x"})
	first.Set("items", []string{"y"})
	second := diff.NewResult()
	second.Set("users", []string{"z"})
	second.Set("orders", []string{"w"})

	all.Merge(first)
	all.Merge(second)
	all.Merge(nil)

	assert.Equal(t, []string{"orders", "items", "users"}, all.Names())
	orders, _ := all.Get("orders")
	assert.Equal(t, []string{"w"}, orders)

	out, err := json.Marshal(all)
	require.NoError(t, err)
	assert.Equal(t, `{"orders":["w"],"items":["y"],"users":["z"]}`, string(out))
}

func TestResultDelete(t *testing.T) {
	res := diff.NewResult()
	res.Set("a", []string{"x"})
	res.Set("b", []string{"y"})
	res.Set("c", []string{"z"})

	res.Delete("b")
	res.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, res.Names())
	_, ok := res.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 2, res.Len())
}
