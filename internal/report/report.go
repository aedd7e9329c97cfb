package report

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"schema-validator/internal/diff"
)

//go:embed templates/*.tmpl
var templates embed.FS

var (
	markdownTmpl = texttemplate.Must(texttemplate.ParseFS(templates, "templates/markdown.tmpl"))
	htmlTmpl     = htmltemplate.Must(htmltemplate.ParseFS(templates, "templates/html.tmpl"))
)

type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
)

// Formats are rendered in this order at the end of a run.
var Formats = []Format{Markdown, HTML}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Markdown, "md":
		return Markdown, nil
	case HTML:
		return HTML, nil
	}
	return "", fmt.Errorf("unsupported report format %q", s)
}

// FileName is the report file written into the run directory.
func (f Format) FileName() string {
	if f == HTML {
		return "SchemaComparisonReport.html"
	}
	return "SchemaComparisonReport.md"
}

type entry struct {
	Name          string
	Discrepancies []string
}

type page struct {
	Entries []entry
}

// Render produces the report document. Every name in res gets a section, even
// one with no discrepancies. Markdown output is not escaped.
func Render(res *diff.Result, f Format) (string, error) {
	var p page
	for _, name := range res.Names() {
		d, _ := res.Get(name)
		p.Entries = append(p.Entries, entry{Name: name, Discrepancies: d})
	}

	var buf bytes.Buffer
	var err error
	switch f {
	case Markdown:
		err = markdownTmpl.ExecuteTemplate(&buf, "markdown.tmpl", p)
	case HTML:
		err = htmlTmpl.ExecuteTemplate(&buf, "html.tmpl", p)
	default:
		return "", fmt.Errorf("unsupported report format %q", f)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render %s report: %w", f, err)
	}
	return buf.String(), nil
}

// Write renders res and stores it as dir/f.FileName(). It returns the file path.
func Write(dir string, res *diff.Result, f Format) (string, error) {
	doc, err := Render(res, f)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, f.FileName())
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
