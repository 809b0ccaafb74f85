package sqltree

import "fmt"

// Visitor has one handler per node kind. R is the result type and C an
// arbitrary context value that Accept passes through unchanged.
type Visitor[R, C any] interface {
	VisitLiteral(n *Literal, ctx C) R
	VisitColumnRef(n *ColumnRef, ctx C) R
	VisitFuncCall(n *FuncCall, ctx C) R
	VisitBinary(n *BinaryExpr, ctx C) R
	VisitUnary(n *UnaryExpr, ctx C) R
	VisitParen(n *ParenExpr, ctx C) R
	VisitCast(n *CastExpr, ctx C) R
	VisitInterval(n *IntervalExpr, ctx C) R
	VisitTimeTravel(n *TimeTravelExpr, ctx C) R
	VisitTableVersion(n *TableVersionExpr, ctx C) R
	VisitTableName(n *TableName, ctx C) R
}

// Accept dispatches n to the handler for its concrete kind.
func Accept[R, C any](n Node, v Visitor[R, C], ctx C) R {
	switch n := n.(type) {
	case *Literal:
		return v.VisitLiteral(n, ctx)
	case *ColumnRef:
		return v.VisitColumnRef(n, ctx)
	case *FuncCall:
		return v.VisitFuncCall(n, ctx)
	case *BinaryExpr:
		return v.VisitBinary(n, ctx)
	case *UnaryExpr:
		return v.VisitUnary(n, ctx)
	case *ParenExpr:
		return v.VisitParen(n, ctx)
	case *CastExpr:
		return v.VisitCast(n, ctx)
	case *IntervalExpr:
		return v.VisitInterval(n, ctx)
	case *TimeTravelExpr:
		return v.VisitTimeTravel(n, ctx)
	case *TableVersionExpr:
		return v.VisitTableVersion(n, ctx)
	case *TableName:
		return v.VisitTableName(n, ctx)
	}
	// Node is sealed, so this is only reachable with a nil node.
	panic(fmt.Sprintf("sqltree: Accept called with %T", n))
}

// BaseVisitor implements Visitor by routing every handler to Default.
// Embed it and override only the handlers you care about. A nil Default
// makes every handler return the zero R.
type BaseVisitor[R, C any] struct {
	Default func(n Node, ctx C) R
}

func (b BaseVisitor[R, C]) visit(n Node, ctx C) R {
	if b.Default == nil {
		var zero R
		return zero
	}
	return b.Default(n, ctx)
}

func (b BaseVisitor[R, C]) VisitLiteral(n *Literal, ctx C) R       { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitColumnRef(n *ColumnRef, ctx C) R   { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitFuncCall(n *FuncCall, ctx C) R     { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitBinary(n *BinaryExpr, ctx C) R     { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitUnary(n *UnaryExpr, ctx C) R       { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitParen(n *ParenExpr, ctx C) R       { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitCast(n *CastExpr, ctx C) R         { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitInterval(n *IntervalExpr, ctx C) R { return b.visit(n, ctx) }
func (b BaseVisitor[R, C]) VisitTimeTravel(n *TimeTravelExpr, ctx C) R {
	return b.visit(n, ctx)
}
func (b BaseVisitor[R, C]) VisitTableVersion(n *TableVersionExpr, ctx C) R {
	return b.visit(n, ctx)
}
func (b BaseVisitor[R, C]) VisitTableName(n *TableName, ctx C) R { return b.visit(n, ctx) }

// Kind returns a short, stable name for n's node kind ("table_version",
// "literal", ...). It is the name tree documents use.
func Kind(n Node) string {
	return Accept[string, struct{}](n, kindVisitor{}, struct{}{})
}

type kindVisitor struct{}

func (kindVisitor) VisitLiteral(*Literal, struct{}) string               { return "literal" }
func (kindVisitor) VisitColumnRef(*ColumnRef, struct{}) string           { return "column" }
func (kindVisitor) VisitFuncCall(*FuncCall, struct{}) string             { return "func" }
func (kindVisitor) VisitBinary(*BinaryExpr, struct{}) string             { return "binary" }
func (kindVisitor) VisitUnary(*UnaryExpr, struct{}) string               { return "unary" }
func (kindVisitor) VisitParen(*ParenExpr, struct{}) string               { return "paren" }
func (kindVisitor) VisitCast(*CastExpr, struct{}) string                 { return "cast" }
func (kindVisitor) VisitInterval(*IntervalExpr, struct{}) string         { return "interval" }
func (kindVisitor) VisitTimeTravel(*TimeTravelExpr, struct{}) string     { return "time_travel" }
func (kindVisitor) VisitTableVersion(*TableVersionExpr, struct{}) string { return "table_version" }
func (kindVisitor) VisitTableName(*TableName, struct{}) string           { return "table" }
