package treedoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sqltree/internal/sqltree"
)

func TestDecode_TableVersion(t *testing.T) {
	doc := `
kind: table
schema: sales
name: orders
alias: o
line: 1
column: 15
version:
  kind: table_version
  type: VERSION
  mode: BEFORE
  line: 1
  column: 22
  value: {kind: literal, type: number, value: 42}
`
	n, err := Decode([]byte(doc))
	require.NoError(t, err)

	tbl, ok := n.(*sqltree.TableName)
	require.True(t, ok)
	assert.Equal(t, "orders", tbl.Name)
	loc, ok := tbl.Location()
	assert.True(t, ok)
	assert.Equal(t, sqltree.Location{Line: 1, Column: 15}, loc)

	tv, ok := tbl.Version.(*sqltree.TableVersionExpr)
	require.True(t, ok)
	assert.Equal(t, sqltree.TableVersionVersion, tv.TableVersionType())
	assert.Equal(t, sqltree.TableVersionBefore, tv.TableVersionState())
	assert.True(t, sqltree.Equal(sqltree.NumberLit("42"), tv.StateExpression()))

	assert.Equal(t, `"sales"."orders" FOR VERSION BEFORE 42 AS "o"`, sqltree.Format(n))
}

func TestDecode_Expressions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "time_travel_timestamp",
			doc:  `{kind: time_travel, type: timestamp, value: {kind: literal, type: timestamp, value: "2024-01-01"}}`,
			want: "FOR TIMESTAMP AS OF TIMESTAMP '2024-01-01'",
		},
		{
			name: "as_of_spelled_out",
			doc:  `{kind: table_version, type: TIMESTAMP, mode: "AS OF", value: {kind: func, name: now}}`,
			want: "FOR TIMESTAMP AS OF now()",
		},
		{
			name: "arith_value",
			doc: `
kind: table_version
type: timestamp
mode: as_of
value:
  kind: binary
  op: "-"
  left: {kind: func, name: current_timestamp}
  right: {kind: interval, unit: hour, value: {kind: literal, type: string, value: "6"}}
`,
			want: "FOR TIMESTAMP AS OF current_timestamp() - INTERVAL '6' HOUR",
		},
		{
			name: "json_input",
			doc:  `{"kind": "time_travel", "type": "VERSION", "value": {"kind": "cast", "as": "BIGINT", "expr": {"kind": "column", "table": "s", "column": "id"}}}`,
			want: `FOR VERSION AS OF CAST("s"."id" AS BIGINT)`,
		},
		{
			name: "func_args_and_unary",
			doc: `
kind: func
name: greatest
args:
  - {kind: unary, op: "-", expr: {kind: literal, value: 1}}
  - {kind: paren, expr: {kind: literal, value: 2}}
`,
			want: "greatest(-1, (2))",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, err := DecodeExpr([]byte(tc.doc))
			require.NoError(t, err)
			assert.Equal(t, tc.want, sqltree.FormatExpr(e))
		})
	}
}

func TestDecode_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"time_travel_missing_value", `{kind: time_travel, type: VERSION}`},
		{"time_travel_null_value", `{kind: time_travel, type: VERSION, value: null}`},
		{"time_travel_missing_type", `{kind: time_travel, value: {kind: literal, value: 1}}`},
		{"table_version_missing_mode", `{kind: table_version, type: VERSION, value: {kind: literal, value: 1}}`},
		{"table_version_missing_type", `{kind: table_version, mode: BEFORE, value: {kind: literal, value: 1}}`},
		{"nested_in_table", `{kind: table, name: t, version: {kind: table_version, type: VERSION, mode: ASOF}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n, err := Decode([]byte(tc.doc))
			require.ErrorIs(t, err, sqltree.ErrInvalidArgument)
			assert.Nil(t, n)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"empty", ``, "empty tree document"},
		{"not_mapping", `[1, 2]`, "expected a mapping"},
		{"missing_kind", `{name: t}`, `missing field "kind"`},
		{"unknown_kind", `{kind: window}`, `unknown node kind "window"`},
		{"unknown_type", `{kind: time_travel, type: epoch, value: {kind: literal, value: 1}}`, `unknown time travel type "epoch"`},
		{"unknown_mode", `{kind: table_version, type: VERSION, mode: AFTER, value: {kind: literal, value: 1}}`, `unknown table version mode "AFTER"`},
		{"unknown_literal_type", `{kind: literal, type: blob, value: x}`, `unknown literal type "blob"`},
		{"table_as_value", `{kind: time_travel, type: VERSION, value: {kind: table, name: t}}`, "must be an expression"},
		{"bad_table_version", `{kind: table, name: t, version: {kind: literal, value: 1}}`, "table version must be"},
		{"missing_table_name", `{kind: table}`, `missing field "name"`},
		{"args_not_list", `{kind: func, name: f, args: 1}`, "must be a list"},
		{"bad_line", `{kind: literal, value: 1, line: abc}`, `field "line"`},
		{"invalid_yaml", "kind: [", "parse tree document"},
		{"self_alias", "&x {kind: paren, expr: *x}\n", "alias *x is not supported"},
		{"shared_alias", "kind: binary\nop: \"+\"\nleft: &one {kind: literal, value: 1}\nright: *one\n", "alias *one is not supported"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDecodeExpr_RejectsTableRoot(t *testing.T) {
	_, err := DecodeExpr([]byte(`{kind: table, name: t}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an expression")
}
