package sqltree

// TableVersionType selects which temporal axis a table version clause
// references. The zero value is invalid.
type TableVersionType int

const (
	TableVersionTimestamp TableVersionType = iota + 1
	TableVersionVersion
)

// Valid reports whether t is one of the defined types.
func (t TableVersionType) Valid() bool {
	return t == TableVersionTimestamp || t == TableVersionVersion
}

func (t TableVersionType) String() string {
	switch t {
	case TableVersionTimestamp:
		return "TIMESTAMP"
	case TableVersionVersion:
		return "VERSION"
	}
	return "INVALID"
}

// TableVersionMode is inclusive (AS OF) or exclusive (BEFORE).
// The zero value is invalid.
type TableVersionMode int

const (
	TableVersionAsOf TableVersionMode = iota + 1
	TableVersionBefore
)

// Valid reports whether m is one of the defined modes.
func (m TableVersionMode) Valid() bool {
	return m == TableVersionAsOf || m == TableVersionBefore
}

// String returns the SQL keywords for the mode.
func (m TableVersionMode) String() string {
	switch m {
	case TableVersionAsOf:
		return "AS OF"
	case TableVersionBefore:
		return "BEFORE"
	}
	return "INVALID"
}

// TableVersionExpr is the "FOR TIMESTAMP|VERSION AS OF|BEFORE <value>" clause
// attached to a table reference.
//
// Equality and hashing consider the value and the type only. Two clauses that
// differ only in mode (AS OF vs BEFORE) compare equal.
type TableVersionExpr struct {
	pos   Location
	typ   TableVersionType
	mode  TableVersionMode
	state Expr
}

func (*TableVersionExpr) node()     {}
func (*TableVersionExpr) exprNode() {}

// NewTableVersionExpr builds a location-less clause.
func NewTableVersionExpr(typ TableVersionType, mode TableVersionMode, value Expr) (*TableVersionExpr, error) {
	return newTableVersionExpr(Location{}, typ, mode, value)
}

// NewTableVersionExprAt builds a clause that originates at loc, which must be
// Valid. Use NewTableVersionExpr for a clause without a source position.
func NewTableVersionExprAt(loc Location, typ TableVersionType, mode TableVersionMode, value Expr) (*TableVersionExpr, error) {
	if err := requireLocation(loc); err != nil {
		return nil, err
	}
	return newTableVersionExpr(loc, typ, mode, value)
}

func newTableVersionExpr(loc Location, typ TableVersionType, mode TableVersionMode, value Expr) (*TableVersionExpr, error) {
	if isNilExpr(value) {
		return nil, invalidArg("table version value is nil")
	}
	if !typ.Valid() {
		return nil, invalidArg("table version type %d", int(typ))
	}
	if !mode.Valid() {
		return nil, invalidArg("table version mode %d", int(mode))
	}
	return &TableVersionExpr{pos: loc, typ: typ, mode: mode, state: value}, nil
}

// TimestampExpression builds a location-less FOR TIMESTAMP clause.
func TimestampExpression(mode TableVersionMode, value Expr) (*TableVersionExpr, error) {
	return newTableVersionExpr(Location{}, TableVersionTimestamp, mode, value)
}

// TimestampExpressionAt builds a FOR TIMESTAMP clause that originates at loc.
func TimestampExpressionAt(loc Location, mode TableVersionMode, value Expr) (*TableVersionExpr, error) {
	if err := requireLocation(loc); err != nil {
		return nil, err
	}
	return newTableVersionExpr(loc, TableVersionTimestamp, mode, value)
}

// VersionExpression builds a location-less FOR VERSION clause.
func VersionExpression(mode TableVersionMode, value Expr) (*TableVersionExpr, error) {
	return newTableVersionExpr(Location{}, TableVersionVersion, mode, value)
}

// VersionExpressionAt builds a FOR VERSION clause that originates at loc.
func VersionExpressionAt(loc Location, mode TableVersionMode, value Expr) (*TableVersionExpr, error) {
	if err := requireLocation(loc); err != nil {
		return nil, err
	}
	return newTableVersionExpr(loc, TableVersionVersion, mode, value)
}

// StateExpression returns the wrapped value expression.
func (t *TableVersionExpr) StateExpression() Expr { return t.state }

// TableVersionType returns the temporal axis.
func (t *TableVersionExpr) TableVersionType() TableVersionType { return t.typ }

// TableVersionState returns the AS OF / BEFORE mode.
func (t *TableVersionExpr) TableVersionState() TableVersionMode { return t.mode }

// Location returns the source position, if the node came from source text.
func (t *TableVersionExpr) Location() (Location, bool) { return t.pos, t.pos.Valid() }

// Children returns [value].
func (t *TableVersionExpr) Children() []Node { return []Node{t.state} }

// WithValue returns a copy of t wrapping value. Type, mode and location are kept.
func (t *TableVersionExpr) WithValue(value Expr) (*TableVersionExpr, error) {
	return newTableVersionExpr(t.pos, t.typ, t.mode, value)
}

// Equal reports structural equality with other. Location and mode are ignored.
func (t *TableVersionExpr) Equal(other Node) bool { return Equal(t, other) }
