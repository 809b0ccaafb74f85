package sqltree

import (
	"strings"
)

// FormatExpr formats an expression AST back to a SQL string.
// The output is flat (no pretty-printing) and always double-quotes identifiers.
func FormatExpr(expr Expr) string {
	f := &formatter{}
	f.formatExpr(expr)
	return strings.TrimSpace(f.buf.String())
}

// FormatTableRef formats a table reference, including its temporal clause.
func FormatTableRef(ref TableRef) string {
	f := &formatter{}
	f.formatTableRef(ref)
	return strings.TrimSpace(f.buf.String())
}

// Format formats any node.
func Format(n Node) string {
	switch n := n.(type) {
	case Expr:
		return FormatExpr(n)
	case TableRef:
		return FormatTableRef(n)
	}
	return ""
}

// formatter is a simple SQL string builder. No indentation or pretty-printing.
type formatter struct {
	buf strings.Builder
}

func (f *formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *formatter) space() {
	f.buf.WriteByte(' ')
}

// quoteIdent unconditionally double-quotes an identifier.
// Internal double quotes are escaped by doubling.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// writeIdent writes a quoted identifier.
func (f *formatter) writeIdent(s string) {
	f.write(quoteIdent(s))
}

// commaSep writes items separated by ", ".
func (f *formatter) commaSep(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		if i > 0 {
			f.write(", ")
		}
		fn(i)
	}
}

func (f *formatter) formatTableRef(ref TableRef) {
	if t, ok := ref.(*TableName); ok && t != nil {
		f.formatTableName(t)
	}
}

func (f *formatter) formatTableName(t *TableName) {
	if t.Catalog != "" {
		f.writeIdent(t.Catalog)
		f.write(".")
	}
	if t.Schema != "" {
		f.writeIdent(t.Schema)
		f.write(".")
	}
	f.writeIdent(t.Name)
	if t.Version != nil {
		f.space()
		f.formatExpr(t.Version)
	}
	if t.Alias != "" {
		f.write(" AS ")
		f.writeIdent(t.Alias)
	}
}
