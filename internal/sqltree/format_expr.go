package sqltree

import "strings"

// formatExpr dispatches expression formatting by type.
func (f *formatter) formatExpr(e Expr) {
	if e == nil {
		return
	}

	switch expr := e.(type) {
	case *Literal:
		f.formatLiteral(expr)
	case *ColumnRef:
		f.formatColumnRef(expr)
	case *FuncCall:
		f.formatFuncCall(expr)
	case *BinaryExpr:
		f.formatExpr(expr.Left)
		f.space()
		f.write(string(expr.Op))
		f.space()
		f.formatExpr(expr.Right)
	case *UnaryExpr:
		f.formatUnaryExpr(expr)
	case *ParenExpr:
		f.write("(")
		f.formatExpr(expr.Expr)
		f.write(")")
	case *CastExpr:
		f.write("CAST(")
		f.formatExpr(expr.Expr)
		f.write(" AS ")
		f.write(expr.TypeName)
		f.write(")")
	case *IntervalExpr:
		f.write("INTERVAL ")
		f.formatExpr(expr.Value)
		if expr.Unit != "" {
			f.space()
			f.write(strings.ToUpper(expr.Unit))
		}
	case *TimeTravelExpr:
		f.formatTimeTravel(expr)
	case *TableVersionExpr:
		f.formatTableVersion(expr)
	}
}

func (f *formatter) formatLiteral(lit *Literal) {
	switch lit.Type {
	case LiteralString:
		f.writeQuoted(lit.Value)
	case LiteralTimestamp:
		f.write("TIMESTAMP ")
		f.writeQuoted(lit.Value)
	case LiteralBool:
		f.write(strings.ToUpper(lit.Value))
	case LiteralNull:
		f.write("NULL")
	default:
		// Number
		f.write(lit.Value)
	}
}

// writeQuoted writes a single-quoted string, doubling embedded quotes.
func (f *formatter) writeQuoted(s string) {
	f.write("'")
	f.write(strings.ReplaceAll(s, "'", "''"))
	f.write("'")
}

func (f *formatter) formatColumnRef(col *ColumnRef) {
	if col.Table != "" {
		f.writeIdent(col.Table)
		f.write(".")
	}
	f.writeIdent(col.Column)
}

func (f *formatter) formatFuncCall(fn *FuncCall) {
	// Function names are written unquoted in original case
	f.write(fn.Name)
	f.write("(")
	f.commaSep(len(fn.Args), func(i int) {
		f.formatExpr(fn.Args[i])
	})
	f.write(")")
}

func (f *formatter) formatUnaryExpr(expr *UnaryExpr) {
	if expr.Op == OpNot {
		f.write("NOT ")
	} else {
		f.write(string(expr.Op))
	}
	f.formatExpr(expr.Expr)
}

// formatTimeTravel writes FOR <kind> AS OF <value>.
func (f *formatter) formatTimeTravel(t *TimeTravelExpr) {
	f.write("FOR ")
	f.write(t.kind.String())
	f.write(" AS OF ")
	f.formatExpr(t.asOf)
}

// formatTableVersion writes FOR <type> AS OF|BEFORE <value>.
func (f *formatter) formatTableVersion(t *TableVersionExpr) {
	f.write("FOR ")
	f.write(t.typ.String())
	f.space()
	f.write(t.mode.String())
	f.space()
	f.formatExpr(t.state)
}
