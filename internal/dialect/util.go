package dialect

import (
	"strings"
)

// Bind parameter names understood by catalog query templates.
const (
	ParamSchema = "schema_name"
	ParamObject = "object_name"
)

// BindNamed rewrites :name binds in query to the driver's positional
// placeholders and returns the matching argument list. Names not present in
// params, "::" casts and text inside single-quoted literals are left alone.
func BindNamed(query string, placeholder func(int) string, params map[string]any) (string, []any) {
	var (
		out     strings.Builder
		args    []any
		inQuote bool
	)
	n := len(query)
	for i := 0; i < n; i++ {
		c := query[i]
		if c == '\'' {
			inQuote = !inQuote
			out.WriteByte(c)
			continue
		}
		if inQuote || c != ':' || i+1 >= n || !isIdentStart(query[i+1]) || (i > 0 && query[i-1] == ':') {
			out.WriteByte(c)
			continue
		}

		j := i + 1
		for j < n && isIdentPart(query[j]) {
			j++
		}
		name := query[i+1 : j]
		val, ok := params[name]
		if !ok {
			out.WriteString(query[i:j])
			i = j - 1
			continue
		}
		out.WriteString(placeholder(len(args)))
		args = append(args, val)
		i = j - 1
	}
	return out.String(), args
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// DefaultGetSchemaName is a default implementation for Getting Schema Name (identity).
func DefaultGetSchemaName(input string) string {
	return input
}
