package sqltree

// TimeTravelType selects the temporal axis of a TimeTravelExpr.
// The zero value is invalid.
type TimeTravelType int

const (
	TimeTravelTimestamp TimeTravelType = iota + 1
	TimeTravelVersion
)

// Valid reports whether t is one of the defined kinds.
func (t TimeTravelType) Valid() bool {
	return t == TimeTravelTimestamp || t == TimeTravelVersion
}

func (t TimeTravelType) String() string {
	switch t {
	case TimeTravelTimestamp:
		return "TIMESTAMP"
	case TimeTravelVersion:
		return "VERSION"
	}
	return "INVALID"
}

// TimeTravelExpr is the single-discriminator "AS OF <value>" form: a value
// expression tagged as either a timestamp or a version.
type TimeTravelExpr struct {
	pos  Location
	kind TimeTravelType
	asOf Expr
}

func (*TimeTravelExpr) node()     {}
func (*TimeTravelExpr) exprNode() {}

// NewTimeTravelExpr builds a location-less node, as rewrite passes do.
func NewTimeTravelExpr(kind TimeTravelType, value Expr) (*TimeTravelExpr, error) {
	return newTimeTravelExpr(Location{}, kind, value)
}

// NewTimeTravelExprAt builds a node that originates at loc, which must be
// Valid. Use NewTimeTravelExpr for a node without a source position.
func NewTimeTravelExprAt(loc Location, kind TimeTravelType, value Expr) (*TimeTravelExpr, error) {
	if err := requireLocation(loc); err != nil {
		return nil, err
	}
	return newTimeTravelExpr(loc, kind, value)
}

func newTimeTravelExpr(loc Location, kind TimeTravelType, value Expr) (*TimeTravelExpr, error) {
	if isNilExpr(value) {
		return nil, invalidArg("time travel value is nil")
	}
	if !kind.Valid() {
		return nil, invalidArg("time travel kind %d", int(kind))
	}
	return &TimeTravelExpr{pos: loc, kind: kind, asOf: value}, nil
}

// TimestampExpr builds a location-less TIMESTAMP node.
func TimestampExpr(value Expr) (*TimeTravelExpr, error) {
	return newTimeTravelExpr(Location{}, TimeTravelTimestamp, value)
}

// TimestampExprAt builds a TIMESTAMP node that originates at loc.
func TimestampExprAt(loc Location, value Expr) (*TimeTravelExpr, error) {
	if err := requireLocation(loc); err != nil {
		return nil, err
	}
	return newTimeTravelExpr(loc, TimeTravelTimestamp, value)
}

// VersionExpr builds a location-less VERSION node.
func VersionExpr(value Expr) (*TimeTravelExpr, error) {
	return newTimeTravelExpr(Location{}, TimeTravelVersion, value)
}

// VersionExprAt builds a VERSION node that originates at loc.
func VersionExprAt(loc Location, value Expr) (*TimeTravelExpr, error) {
	if err := requireLocation(loc); err != nil {
		return nil, err
	}
	return newTimeTravelExpr(loc, TimeTravelVersion, value)
}

// AsOfExpr returns the wrapped value expression.
func (t *TimeTravelExpr) AsOfExpr() Expr { return t.asOf }

// TimeTravelType returns the discriminator.
func (t *TimeTravelExpr) TimeTravelType() TimeTravelType { return t.kind }

// Location returns the source position, if the node came from source text.
func (t *TimeTravelExpr) Location() (Location, bool) { return t.pos, t.pos.Valid() }

// Children returns [value].
func (t *TimeTravelExpr) Children() []Node { return []Node{t.asOf} }

// WithValue returns a copy of t wrapping value. Kind and location are kept.
func (t *TimeTravelExpr) WithValue(value Expr) (*TimeTravelExpr, error) {
	return newTimeTravelExpr(t.pos, t.kind, value)
}

// Equal reports structural equality with other. Location is ignored.
func (t *TimeTravelExpr) Equal(other Node) bool { return Equal(t, other) }
