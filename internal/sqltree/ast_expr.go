package sqltree

// === Expression Nodes ===
//
// Supporting expression nodes are plain structs. Fill them in when building a
// tree and leave them alone afterwards: Equal and Hash results are only stable
// while nothing in the tree changes.

// Literal represents a literal value (number, string, bool, null, timestamp).
type Literal struct {
	Type  LiteralType
	Value string
	Pos   Location
}

func (*Literal) node()     {}
func (*Literal) exprNode() {}

// Location returns the literal's source position.
func (l *Literal) Location() (Location, bool) { return l.Pos, l.Pos.Valid() }

// Children returns nil; literals are leaves.
func (*Literal) Children() []Node { return nil }

// LiteralType represents the type of a literal.
type LiteralType int

const (
	LiteralNumber LiteralType = iota
	LiteralString
	LiteralBool
	LiteralNull
	LiteralTimestamp // TIMESTAMP '2024-01-01 00:00:00'
)

var literalTypeNames = map[LiteralType]string{
	LiteralNumber:    "number",
	LiteralString:    "string",
	LiteralBool:      "bool",
	LiteralNull:      "null",
	LiteralTimestamp: "timestamp",
}

func (t LiteralType) String() string {
	if s, ok := literalTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseLiteralType maps a name such as "number" or "timestamp" to its LiteralType.
func ParseLiteralType(s string) (LiteralType, bool) {
	for t, name := range literalTypeNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// NumberLit returns a location-less numeric literal.
func NumberLit(v string) *Literal { return &Literal{Type: LiteralNumber, Value: v} }

// StringLit returns a location-less string literal.
func StringLit(v string) *Literal { return &Literal{Type: LiteralString, Value: v} }

// TimestampLit returns a location-less TIMESTAMP '...' literal.
func TimestampLit(v string) *Literal { return &Literal{Type: LiteralTimestamp, Value: v} }

// ColumnRef represents a column reference, optionally qualified with table name.
type ColumnRef struct {
	Table  string // optional table/alias qualifier
	Column string
	Pos    Location
}

func (*ColumnRef) node()     {}
func (*ColumnRef) exprNode() {}

// Location returns the column reference's source position.
func (c *ColumnRef) Location() (Location, bool) { return c.Pos, c.Pos.Valid() }

// Children returns nil.
func (*ColumnRef) Children() []Node { return nil }

// FuncCall represents a function call such as current_timestamp() or
// date_add(now(), INTERVAL 1 DAY).
type FuncCall struct {
	Name string // stored in original case
	Args []Expr
	Pos  Location
}

func (*FuncCall) node()     {}
func (*FuncCall) exprNode() {}

// Location returns the call's source position.
func (f *FuncCall) Location() (Location, bool) { return f.Pos, f.Pos.Valid() }

// Children returns the arguments in call order.
func (f *FuncCall) Children() []Node {
	if len(f.Args) == 0 {
		return nil
	}
	out := make([]Node, len(f.Args))
	for i, a := range f.Args {
		out[i] = a
	}
	return out
}

// Operator is a binary or unary operator written as it appears in SQL.
type Operator string

const (
	OpPlus   Operator = "+"
	OpMinus  Operator = "-"
	OpMul    Operator = "*"
	OpDiv    Operator = "/"
	OpEq     Operator = "="
	OpNe     Operator = "<>"
	OpLt     Operator = "<"
	OpLe     Operator = "<="
	OpGt     Operator = ">"
	OpGe     Operator = ">="
	OpAnd    Operator = "AND"
	OpOr     Operator = "OR"
	OpNot    Operator = "NOT"
	OpConcat Operator = "||"
)

// BinaryExpr represents a binary expression (left op right).
type BinaryExpr struct {
	Left  Expr
	Op    Operator
	Right Expr
	Pos   Location
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// Location returns the expression's source position.
func (b *BinaryExpr) Location() (Location, bool) { return b.Pos, b.Pos.Valid() }

// Children returns [Left, Right].
func (b *BinaryExpr) Children() []Node { return []Node{b.Left, b.Right} }

// UnaryExpr represents a unary expression (NOT x, -x, +x).
type UnaryExpr struct {
	Op   Operator
	Expr Expr
	Pos  Location
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}

// Location returns the expression's source position.
func (u *UnaryExpr) Location() (Location, bool) { return u.Pos, u.Pos.Valid() }

// Children returns [Expr].
func (u *UnaryExpr) Children() []Node { return []Node{u.Expr} }

// ParenExpr represents a parenthesized expression.
type ParenExpr struct {
	Expr Expr
	Pos  Location
}

func (*ParenExpr) node()     {}
func (*ParenExpr) exprNode() {}

// Location returns the expression's source position.
func (p *ParenExpr) Location() (Location, bool) { return p.Pos, p.Pos.Valid() }

// Children returns [Expr].
func (p *ParenExpr) Children() []Node { return []Node{p.Expr} }

// CastExpr represents a CAST(expr AS type) expression.
type CastExpr struct {
	Expr     Expr
	TypeName string
	Pos      Location
}

func (*CastExpr) node()     {}
func (*CastExpr) exprNode() {}

// Location returns the expression's source position.
func (c *CastExpr) Location() (Location, bool) { return c.Pos, c.Pos.Valid() }

// Children returns [Expr].
func (c *CastExpr) Children() []Node { return []Node{c.Expr} }

// IntervalExpr represents INTERVAL 'value' unit.
type IntervalExpr struct {
	Value Expr
	Unit  string // DAY, HOUR, etc.
	Pos   Location
}

func (*IntervalExpr) node()     {}
func (*IntervalExpr) exprNode() {}

// Location returns the expression's source position.
func (i *IntervalExpr) Location() (Location, bool) { return i.Pos, i.Pos.Valid() }

// Children returns [Value].
func (i *IntervalExpr) Children() []Node { return []Node{i.Value} }
