package sqltree

// === Table Reference Nodes ===

// TableName represents a table name reference (up to 3-part: catalog.schema.name)
// with an optional temporal clause, e.g. orders FOR VERSION AS OF 42 AS o.
type TableName struct {
	Catalog string
	Schema  string
	Name    string
	Alias   string
	Version Expr // *TableVersionExpr, *TimeTravelExpr, or nil
	Pos     Location
}

func (*TableName) node()         {}
func (*TableName) tableRefNode() {}

// Location returns the reference's source position.
func (t *TableName) Location() (Location, bool) { return t.Pos, t.Pos.Valid() }

// Children returns the temporal clause, if any.
func (t *TableName) Children() []Node {
	if t.Version == nil {
		return nil
	}
	return []Node{t.Version}
}

// IsVersioned reports whether the reference selects a historical snapshot.
func (t *TableName) IsVersioned() bool {
	return t.Version != nil
}
