package validator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-validator/internal/schema"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func TestLookupPath(t *testing.T) {
	l := Lookup{Enabled: true, Folder: "lookups", Files: map[string]string{"tables": "t.txt", "views": "/abs/v.txt"}}
	assert.Equal(t, filepath.Join("lookups", "t.txt"), l.Path(schema.Table))
	assert.Equal(t, "/abs/v.txt", l.Path(schema.View))
	assert.Empty(t, l.Path(schema.Trigger))

	l.Enabled = false
	assert.Empty(t, l.Path(schema.Table))
}

func TestReadLookupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte(" A \r\n\nB\n   \nC"), 0o644))

	names, err := ReadLookupFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, names)

	_, err = ReadLookupFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
