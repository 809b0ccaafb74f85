// Package treedoc builds sqltree nodes from YAML (or JSON) tree documents.
//
// A document is a mapping with a "kind" key naming the node kind (as returned
// by sqltree.Kind) plus the fields of that kind:
//
//	kind: table
//	name: orders
//	alias: o
//	version:
//	  kind: table_version
//	  type: VERSION
//	  mode: BEFORE
//	  line: 1
//	  column: 22
//	  value: {kind: literal, type: number, value: "42"}
//
// Nodes are always built through the sqltree constructors, so a document that
// omits a required child fails with an error wrapping sqltree.ErrInvalidArgument.
package treedoc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"sqltree/internal/sqltree"
)

// Decode parses a single tree document.
func Decode(data []byte) (sqltree.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse tree document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty tree document")
	}
	return decodeNode(doc.Content[0])
}

// DecodeExpr parses a document whose root must be an expression.
func DecodeExpr(data []byte) (sqltree.Expr, error) {
	n, err := Decode(data)
	if err != nil {
		return nil, err
	}
	e, ok := n.(sqltree.Expr)
	if !ok {
		return nil, fmt.Errorf("root is a %s, not an expression", sqltree.Kind(n))
	}
	return e, nil
}

// mapping is a decoded YAML mapping with its position for error messages.
type mapping struct {
	node   *yaml.Node
	fields map[string]*yaml.Node
}

func newMapping(n *yaml.Node) (*mapping, error) {
	if n.Kind == yaml.AliasNode {
		// Following an alias can loop or expand exponentially; trees are
		// written out in full.
		return nil, errorAt(n, "alias *%s is not supported", n.Value)
	}
	if n.Kind != yaml.MappingNode {
		return nil, errorAt(n, "expected a mapping, got %s", n.Tag)
	}
	m := &mapping{node: n, fields: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		m.fields[strings.ToLower(n.Content[i].Value)] = n.Content[i+1]
	}
	return m, nil
}

func errorAt(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

func (m *mapping) errorf(format string, args ...any) error {
	return errorAt(m.node, format, args...)
}

// wrap attaches the mapping's position to a constructor error, keeping it
// matchable with errors.Is.
func (m *mapping) wrap(err error) error {
	return fmt.Errorf("line %d: %w", m.node.Line, err)
}

// str returns a scalar field, or "" when absent.
func (m *mapping) str(key string) (string, error) {
	v, ok := m.fields[key]
	if !ok {
		return "", nil
	}
	if v.Kind != yaml.ScalarNode {
		return "", errorAt(v, "field %q must be a scalar", key)
	}
	return v.Value, nil
}

func (m *mapping) requiredStr(key string) (string, error) {
	s, err := m.str(key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", m.errorf("missing field %q", key)
	}
	return s, nil
}

func (m *mapping) intField(key string) (int, error) {
	v, ok := m.fields[key]
	if !ok {
		return 0, nil
	}
	var out int
	if err := v.Decode(&out); err != nil {
		return 0, errorAt(v, "field %q: %v", key, err)
	}
	return out, nil
}

func (m *mapping) location() (sqltree.Location, error) {
	line, err := m.intField("line")
	if err != nil {
		return sqltree.Location{}, err
	}
	col, err := m.intField("column")
	if err != nil {
		return sqltree.Location{}, err
	}
	return sqltree.Location{Line: line, Column: col}, nil
}

// expr decodes an optional child in expression position. A missing key
// yields nil; callers decide whether that is acceptable.
func (m *mapping) expr(key string) (sqltree.Expr, error) {
	v, ok := m.fields[key]
	if !ok || v.Tag == "!!null" {
		return nil, nil
	}
	n, err := decodeNode(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	e, ok := n.(sqltree.Expr)
	if !ok {
		return nil, errorAt(v, "field %q must be an expression, got %s", key, sqltree.Kind(n))
	}
	return e, nil
}

func (m *mapping) requiredExpr(key string) (sqltree.Expr, error) {
	e, err := m.expr(key)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, m.errorf("missing field %q", key)
	}
	return e, nil
}

func decodeNode(n *yaml.Node) (sqltree.Node, error) {
	m, err := newMapping(n)
	if err != nil {
		return nil, err
	}
	kind, err := m.requiredStr("kind")
	if err != nil {
		return nil, err
	}
	loc, err := m.location()
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(kind) {
	case "literal":
		return decodeLiteral(m, loc)
	case "column":
		table, err := m.str("table")
		if err != nil {
			return nil, err
		}
		col, err := m.requiredStr("column")
		if err != nil {
			return nil, err
		}
		return &sqltree.ColumnRef{Table: table, Column: col, Pos: loc}, nil
	case "func":
		return decodeFuncCall(m, loc)
	case "binary":
		return decodeBinary(m, loc)
	case "unary":
		op, err := m.requiredStr("op")
		if err != nil {
			return nil, err
		}
		e, err := m.requiredExpr("expr")
		if err != nil {
			return nil, err
		}
		return &sqltree.UnaryExpr{Op: sqltree.Operator(strings.ToUpper(op)), Expr: e, Pos: loc}, nil
	case "paren":
		e, err := m.requiredExpr("expr")
		if err != nil {
			return nil, err
		}
		return &sqltree.ParenExpr{Expr: e, Pos: loc}, nil
	case "cast":
		typeName, err := m.requiredStr("as")
		if err != nil {
			return nil, err
		}
		e, err := m.requiredExpr("expr")
		if err != nil {
			return nil, err
		}
		return &sqltree.CastExpr{Expr: e, TypeName: typeName, Pos: loc}, nil
	case "interval":
		unit, err := m.str("unit")
		if err != nil {
			return nil, err
		}
		v, err := m.requiredExpr("value")
		if err != nil {
			return nil, err
		}
		return &sqltree.IntervalExpr{Value: v, Unit: unit, Pos: loc}, nil
	case "time_travel":
		return decodeTimeTravel(m, loc)
	case "table_version":
		return decodeTableVersion(m, loc)
	case "table":
		return decodeTable(m, loc)
	}
	return nil, m.errorf("unknown node kind %q", kind)
}

func decodeLiteral(m *mapping, loc sqltree.Location) (sqltree.Node, error) {
	typeName, err := m.str("type")
	if err != nil {
		return nil, err
	}
	typ := sqltree.LiteralNumber
	if typeName != "" {
		var ok bool
		typ, ok = sqltree.ParseLiteralType(strings.ToLower(typeName))
		if !ok {
			return nil, m.errorf("unknown literal type %q", typeName)
		}
	}
	value, err := m.str("value")
	if err != nil {
		return nil, err
	}
	return &sqltree.Literal{Type: typ, Value: value, Pos: loc}, nil
}

func decodeFuncCall(m *mapping, loc sqltree.Location) (sqltree.Node, error) {
	name, err := m.requiredStr("name")
	if err != nil {
		return nil, err
	}
	fn := &sqltree.FuncCall{Name: name, Pos: loc}
	argsNode, ok := m.fields["args"]
	if !ok {
		return fn, nil
	}
	if argsNode.Kind != yaml.SequenceNode {
		return nil, errorAt(argsNode, "field \"args\" must be a list")
	}
	for i, a := range argsNode.Content {
		n, err := decodeNode(a)
		if err != nil {
			return nil, fmt.Errorf("%s arg %d: %w", name, i, err)
		}
		e, ok := n.(sqltree.Expr)
		if !ok {
			return nil, errorAt(a, "%s arg %d must be an expression", name, i)
		}
		fn.Args = append(fn.Args, e)
	}
	return fn, nil
}

func decodeBinary(m *mapping, loc sqltree.Location) (sqltree.Node, error) {
	op, err := m.requiredStr("op")
	if err != nil {
		return nil, err
	}
	left, err := m.requiredExpr("left")
	if err != nil {
		return nil, err
	}
	right, err := m.requiredExpr("right")
	if err != nil {
		return nil, err
	}
	return &sqltree.BinaryExpr{Left: left, Op: sqltree.Operator(strings.ToUpper(op)), Right: right, Pos: loc}, nil
}

func decodeTimeTravel(m *mapping, loc sqltree.Location) (sqltree.Node, error) {
	typeName, err := m.str("type")
	if err != nil {
		return nil, err
	}
	var kind sqltree.TimeTravelType
	switch normalizeKeyword(typeName) {
	case "":
		// left at zero; the constructor rejects it
	case "TIMESTAMP":
		kind = sqltree.TimeTravelTimestamp
	case "VERSION":
		kind = sqltree.TimeTravelVersion
	default:
		return nil, m.errorf("unknown time travel type %q", typeName)
	}
	value, err := m.expr("value")
	if err != nil {
		return nil, err
	}
	var n *sqltree.TimeTravelExpr
	if loc.Valid() {
		n, err = sqltree.NewTimeTravelExprAt(loc, kind, value)
	} else {
		n, err = sqltree.NewTimeTravelExpr(kind, value)
	}
	if err != nil {
		return nil, m.wrap(err)
	}
	return n, nil
}

func decodeTableVersion(m *mapping, loc sqltree.Location) (sqltree.Node, error) {
	typeName, err := m.str("type")
	if err != nil {
		return nil, err
	}
	var typ sqltree.TableVersionType
	switch normalizeKeyword(typeName) {
	case "":
	case "TIMESTAMP":
		typ = sqltree.TableVersionTimestamp
	case "VERSION":
		typ = sqltree.TableVersionVersion
	default:
		return nil, m.errorf("unknown table version type %q", typeName)
	}

	modeName, err := m.str("mode")
	if err != nil {
		return nil, err
	}
	var mode sqltree.TableVersionMode
	switch normalizeKeyword(modeName) {
	case "":
	case "ASOF":
		mode = sqltree.TableVersionAsOf
	case "BEFORE":
		mode = sqltree.TableVersionBefore
	default:
		return nil, m.errorf("unknown table version mode %q", modeName)
	}

	value, err := m.expr("value")
	if err != nil {
		return nil, err
	}
	var n *sqltree.TableVersionExpr
	if loc.Valid() {
		n, err = sqltree.NewTableVersionExprAt(loc, typ, mode, value)
	} else {
		n, err = sqltree.NewTableVersionExpr(typ, mode, value)
	}
	if err != nil {
		return nil, m.wrap(err)
	}
	return n, nil
}

func decodeTable(m *mapping, loc sqltree.Location) (sqltree.Node, error) {
	t := &sqltree.TableName{Pos: loc}
	var err error
	if t.Catalog, err = m.str("catalog"); err != nil {
		return nil, err
	}
	if t.Schema, err = m.str("schema"); err != nil {
		return nil, err
	}
	if t.Name, err = m.requiredStr("name"); err != nil {
		return nil, err
	}
	if t.Alias, err = m.str("alias"); err != nil {
		return nil, err
	}
	if t.Version, err = m.expr("version"); err != nil {
		return nil, err
	}
	switch t.Version.(type) {
	case nil, *sqltree.TimeTravelExpr, *sqltree.TableVersionExpr:
	default:
		return nil, m.errorf("table version must be time_travel or table_version, got %s", sqltree.Kind(t.Version))
	}
	return t, nil
}

// normalizeKeyword upper-cases s and drops spaces and underscores, so
// "as of", "AS_OF" and "ASOF" all match.
func normalizeKeyword(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}
