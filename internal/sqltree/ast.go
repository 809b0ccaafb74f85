// Package sqltree models SQL expression trees around temporal table
// references (FOR TIMESTAMP/VERSION AS OF/BEFORE ...).
//
// Nodes are immutable once built. The node family is closed: every concrete
// node type lives in this package, which lets Accept, Equal, Hash and the
// formatter switch over all of them exhaustively.
package sqltree

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a node constructor receives a missing
// child or an unknown discriminator. It signals a bug in the producer, not
// malformed user SQL.
var ErrInvalidArgument = errors.New("invalid argument")

// Location is a position in the source text. The zero value means the node
// has no source span (it was synthesized by a rewrite).
type Location struct {
	Line   int
	Column int
}

// Valid reports whether the location points into source text.
func (l Location) Valid() bool {
	return l.Line > 0
}

func (l Location) String() string {
	if !l.Valid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Node is the base interface for all AST nodes.
type Node interface {
	node()
	// Location returns the originating source position, if known.
	Location() (Location, bool)
	// Children returns the immediate child nodes in a fixed order.
	Children() []Node
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// TableRef is a marker interface for table reference nodes.
type TableRef interface {
	Node
	tableRefNode()
}

func invalidArg(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// requireLocation rejects the zero Location in the constructors that take an
// explicit position.
func requireLocation(loc Location) error {
	if !loc.Valid() {
		return invalidArg("location %d:%d is not a source position", loc.Line, loc.Column)
	}
	return nil
}

// isNilExpr catches both a nil interface and a typed nil pointer.
func isNilExpr(e Expr) bool {
	if e == nil {
		return true
	}
	switch v := e.(type) {
	case *Literal:
		return v == nil
	case *ColumnRef:
		return v == nil
	case *FuncCall:
		return v == nil
	case *BinaryExpr:
		return v == nil
	case *UnaryExpr:
		return v == nil
	case *ParenExpr:
		return v == nil
	case *CastExpr:
		return v == nil
	case *IntervalExpr:
		return v == nil
	case *TimeTravelExpr:
		return v == nil
	case *TableVersionExpr:
		return v == nil
	}
	return false
}
