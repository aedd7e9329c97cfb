package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"schema-validator/internal/diff"
	"schema-validator/internal/schema"
)

// RunDir is the timestamped output directory of one run.
type RunDir struct {
	Path string
}

func NewRunDir(base string, now time.Time) (*RunDir, error) {
	path := filepath.Join(base, now.Format("SchemaValidator_20060102_150405"))
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &RunDir{Path: path}, nil
}

// File returns a path inside the run directory.
func (d *RunDir) File(name string) string {
	return filepath.Join(d.Path, name)
}

func (d *RunDir) categoryDir(kind schema.Kind) (string, error) {
	dir := filepath.Join(d.Path, kind.Category())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", kind.Category(), err)
	}
	return dir, nil
}

// WriteSchemaSet stores one side's set as <category>/SourceSchema_<category>.json,
// wrapped under a label like "SourceSchema_Tables".
func (d *RunDir) WriteSchemaSet(kind schema.Kind, side schema.Side, set *schema.SchemaSet) (string, error) {
	prefix := "SourceSchema"
	if side == schema.Target {
		prefix = "TargetSchema"
	}
	dir, err := d.categoryDir(kind)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", prefix, kind.Category()))
	label := fmt.Sprintf("%s_%s", prefix, capitalize(kind.Category()))
	return path, writeWrapped(path, label, set)
}

// WriteDifferences stores one category's diff as <category>/SchemaDifferences_<category>.json.
func (d *RunDir) WriteDifferences(kind schema.Kind, res *diff.Result) (string, error) {
	dir, err := d.categoryDir(kind)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("SchemaDifferences_%s.json", kind.Category()))
	return path, writeWrapped(path, "SchemaDifferences", res)
}

func writeWrapped(path, label string, v json.Marshaler) error {
	wrapper := schema.NewOrderedJSON()
	if err := wrapper.Field(label, v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", label, err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, wrapper.Bytes(), "", "    "); err != nil {
		return fmt.Errorf("failed to indent %s: %w", label, err)
	}
	out.WriteByte('\n')
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
