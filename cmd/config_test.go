package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-validator/internal/schema"
)

const sampleConfig = `
comparison:
  source: DB2_PROD
  target: PG_STAGE
  compare: "tables, views,triggers"
output:
  directory: out
lookup:
  enabled: true
  folder: lookup
  files:
    tables: tables.txt
settings:
  query_timeout: 30s
databases:
  - name: DB2_PROD
    driver: DB2
    host: db2.local
    username: app
    password: $SV_TEST_DB2_PWD
    database: SAMPLE
    schema_name: APP
    queries:
      function_definition: "SELECT NAME, BODY FROM SYSIBM.SYSFUNCTIONS WHERE SCHEMA = :schema_name AND NAME = :object_name"
  - name: PG_STAGE
    driver: postgres
    dsn: postgres://u:p@pg.local:5432/stage?sslmode=disable
`

func loadYAML(t *testing.T, body string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(body)))
	return v
}

func TestLoadSettings(t *testing.T) {
	t.Setenv("SV_TEST_DB2_PWD", "s3cret")
	cfg, err := LoadSettings(loadYAML(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Run.QueryTimeout)
	assert.True(t, cfg.Lookup.Enabled)
	assert.Equal(t, "tables.txt", cfg.Lookup.Files["tables"])

	src, tgt, kinds, err := cfg.ComparisonPlan()
	require.NoError(t, err)
	assert.Equal(t, "db2", src.Driver)
	assert.Equal(t, "s3cret", src.Password)
	assert.Contains(t, src.Queries.FunctionDefinition, "SYSIBM.SYSFUNCTIONS")
	assert.Equal(t, "PG_STAGE", tgt.Name)
	assert.Equal(t, []schema.Kind{schema.Table, schema.View, schema.Trigger}, kinds)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Run("unsupported driver", func(t *testing.T) {
		_, err := LoadSettings(loadYAML(t, `
databases:
  - {name: X, driver: sqlite, host: h}
`))
		assert.ErrorIs(t, err, ErrUnsupportedDriver)
	})

	t.Run("no host or dsn", func(t *testing.T) {
		_, err := LoadSettings(loadYAML(t, `
databases:
  - {name: X, driver: mysql}
`))
		assert.Error(t, err)
	})

	t.Run("duplicate profile", func(t *testing.T) {
		_, err := LoadSettings(loadYAML(t, `
databases:
  - {name: X, driver: mysql, host: a}
  - {name: X, driver: mysql, host: b}
`))
		assert.Error(t, err)
	})

	t.Run("unknown profile and category", func(t *testing.T) {
		cfg, err := LoadSettings(loadYAML(t, `
comparison: {source: A, target: B, compare: tables}
databases:
  - {name: A, driver: mysql, host: a}
`))
		require.NoError(t, err)
		_, _, _, err = cfg.ComparisonPlan()
		assert.ErrorContains(t, err, `"B"`)

		cfg.Comparison.Target = "A"
		cfg.Comparison.Compare = "tables,indexes"
		_, _, _, err = cfg.ComparisonPlan()
		assert.ErrorIs(t, err, schema.ErrUnknownCategory)
	})
}

func TestProfileSchema(t *testing.T) {
	assert.Equal(t, "shop", DBProfile{Driver: "mysql", Database: "shop"}.Schema())
	assert.Equal(t, "sales", DBProfile{Driver: "mysql", Database: "shop", SchemaName: "sales"}.Schema())
	assert.Equal(t, "", DBProfile{Driver: "postgres", Database: "shop"}.Schema())
}
