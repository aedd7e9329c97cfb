package validator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"schema-validator/internal/schema"
)

// Lookup replaces live enumeration with fixed name lists shared by both sides.
type Lookup struct {
	Enabled bool
	Folder  string
	Files   map[string]string // category -> file name
}

// Path returns the lookup file for kind, or "" when none applies.
func (l Lookup) Path(kind schema.Kind) string {
	if !l.Enabled {
		return ""
	}
	file := strings.TrimSpace(l.Files[kind.Category()])
	if file == "" {
		return ""
	}
	if l.Folder != "" && !filepath.IsAbs(file) {
		return filepath.Join(l.Folder, file)
	}
	return file
}

// ReadLookupFile returns one object name per non-blank line, trimmed.
func ReadLookupFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lookup file %s: %w", path, err)
	}
	return names, nil
}
