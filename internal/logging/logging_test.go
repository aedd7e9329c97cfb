package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema_validator.log")
	var console bytes.Buffer
	log, closeLog, err := New("info", path, &console)
	require.NoError(t, err)

	log.Infof("Processing %s", "tables")
	log.Debug("hidden")
	closeLog()

	assert.Contains(t, console.String(), " - INFO - Processing tables")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - INFO - Processing tables\n$`), string(raw))
}

func TestNewErrorLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema_validator_error.log")
	log, closeLog, err := NewErrorLog(path)
	require.NoError(t, err)

	log.Info("Errors in SOURCE:")
	log.Info("TABLE - APP.ORDERS: boom")
	closeLog()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Errors in SOURCE:\nTABLE - APP.ORDERS: boom\n", string(raw))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}
