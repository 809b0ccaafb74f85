package sqltree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
)

// Equal reports whether a and b are structurally equal: same node kinds and
// equal fields, recursively. Source locations never take part. For
// TableVersionExpr the mode (AS OF / BEFORE) does not take part either.
//
// Function names, cast type names and interval units compare
// case-insensitively; identifiers and literal values compare exactly.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}

	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.Type == y.Type && x.Value == y.Value
	case *ColumnRef:
		y, ok := b.(*ColumnRef)
		return ok && x.Table == y.Table && x.Column == y.Column
	case *FuncCall:
		y, ok := b.(*FuncCall)
		if !ok || foldName(x.Name) != foldName(y.Name) || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !equalExpr(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *BinaryExpr:
		y, ok := b.(*BinaryExpr)
		return ok && x.Op == y.Op && equalExpr(x.Left, y.Left) && equalExpr(x.Right, y.Right)
	case *UnaryExpr:
		y, ok := b.(*UnaryExpr)
		return ok && x.Op == y.Op && equalExpr(x.Expr, y.Expr)
	case *ParenExpr:
		y, ok := b.(*ParenExpr)
		return ok && equalExpr(x.Expr, y.Expr)
	case *CastExpr:
		y, ok := b.(*CastExpr)
		return ok && foldName(x.TypeName) == foldName(y.TypeName) && equalExpr(x.Expr, y.Expr)
	case *IntervalExpr:
		y, ok := b.(*IntervalExpr)
		return ok && foldName(x.Unit) == foldName(y.Unit) && equalExpr(x.Value, y.Value)
	case *TimeTravelExpr:
		y, ok := b.(*TimeTravelExpr)
		return ok && x.kind == y.kind && equalExpr(x.asOf, y.asOf)
	case *TableVersionExpr:
		y, ok := b.(*TableVersionExpr)
		return ok && x.typ == y.typ && equalExpr(x.state, y.state)
	case *TableName:
		y, ok := b.(*TableName)
		return ok && x.Catalog == y.Catalog && x.Schema == y.Schema &&
			x.Name == y.Name && x.Alias == y.Alias && equalExpr(x.Version, y.Version)
	}
	return false
}

// foldName is the case-insensitive form of a function name, cast type or
// interval unit. Equal and Hash both compare through it.
func foldName(s string) string {
	return cases.Fold().String(s)
}

// equalExpr keeps nil Expr values from turning into non-nil Node interfaces.
func equalExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return Equal(a, b)
}

// Hash returns a structural hash of n consistent with Equal: equal nodes hash
// identically. Locations and table version modes are not hashed.
func Hash(n Node) uint64 {
	h := hasher{d: xxhash.New()}
	h.node(n)
	return h.d.Sum64()
}

// Node tags for the canonical hash encoding.
const (
	tagNil byte = iota
	tagLiteral
	tagColumnRef
	tagFuncCall
	tagBinary
	tagUnary
	tagParen
	tagCast
	tagInterval
	tagTimeTravel
	tagTableVersion
	tagTableName
)

type hasher struct {
	d   *xxhash.Digest
	buf [binary.MaxVarintLen64]byte
}

func (h *hasher) tag(t byte) {
	h.buf[0] = t
	_, _ = h.d.Write(h.buf[:1])
}

func (h *hasher) num(v int64) {
	n := binary.PutVarint(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:n])
}

// str writes a length-prefixed string so adjacent fields cannot run together.
func (h *hasher) str(s string) {
	h.num(int64(len(s)))
	_, _ = h.d.WriteString(s)
}

func (h *hasher) expr(e Expr) {
	if e == nil {
		h.tag(tagNil)
		return
	}
	h.node(e)
}

func (h *hasher) node(n Node) {
	switch x := n.(type) {
	case nil:
		h.tag(tagNil)
	case *Literal:
		h.tag(tagLiteral)
		h.num(int64(x.Type))
		h.str(x.Value)
	case *ColumnRef:
		h.tag(tagColumnRef)
		h.str(x.Table)
		h.str(x.Column)
	case *FuncCall:
		h.tag(tagFuncCall)
		h.str(foldName(x.Name))
		h.num(int64(len(x.Args)))
		for _, a := range x.Args {
			h.expr(a)
		}
	case *BinaryExpr:
		h.tag(tagBinary)
		h.str(string(x.Op))
		h.expr(x.Left)
		h.expr(x.Right)
	case *UnaryExpr:
		h.tag(tagUnary)
		h.str(string(x.Op))
		h.expr(x.Expr)
	case *ParenExpr:
		h.tag(tagParen)
		h.expr(x.Expr)
	case *CastExpr:
		h.tag(tagCast)
		h.str(foldName(x.TypeName))
		h.expr(x.Expr)
	case *IntervalExpr:
		h.tag(tagInterval)
		h.str(foldName(x.Unit))
		h.expr(x.Value)
	case *TimeTravelExpr:
		h.tag(tagTimeTravel)
		h.num(int64(x.kind))
		h.expr(x.asOf)
	case *TableVersionExpr:
		h.tag(tagTableVersion)
		h.num(int64(x.typ))
		h.expr(x.state)
	case *TableName:
		h.tag(tagTableName)
		h.str(x.Catalog)
		h.str(x.Schema)
		h.str(x.Name)
		h.str(x.Alias)
		h.expr(x.Version)
	}
}
