package types

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/decimal"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/schema"
	"github.com/maniartech/internetobject-go/token"
)

func strNode(s string) *ast.TokenNode {
	return &ast.TokenNode{Tok: token.Token{Type: token.STRING, Token: s, Value: s}}
}

func numNode(f float64) *ast.TokenNode {
	return &ast.TokenNode{Tok: token.Token{Type: token.NUMBER, Value: f}}
}

func boolNode(b bool) *ast.TokenNode {
	return &ast.TokenNode{Tok: token.Token{Type: token.BOOLEAN, Value: b}}
}

func nullNode() *ast.TokenNode {
	return &ast.TokenNode{Tok: token.Token{Type: token.NULL, Value: nil}}
}

func TestStringTypeBasic(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("string")
	v, err := td.Parse(strNode("hello"), &schema.MemberDef{Type: "string"}, defs.New())
	require.Nil(t, err)
	assert.Equal(t, "hello", v)
}

func TestStringTypeMinLength(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("string")
	min := 3
	_, err := td.Parse(strNode("ab"), &schema.MemberDef{Type: "string", MinLength: &min}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "invalid-min-length", err.Code)
}

func TestMissingRequiredFails(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("string")
	_, err := td.Parse(nil, &schema.MemberDef{Type: "string", Path: "name"}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "value-required", err.Code)
}

func TestMissingOptionalReturnsUndefined(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("string")
	v, err := td.Parse(nil, &schema.MemberDef{Type: "string", Optional: true}, defs.New())
	require.Nil(t, err)
	assert.Same(t, Undefined, v)
}

func TestMissingWithDefault(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("int")
	v, err := td.Parse(nil, &schema.MemberDef{Type: "int", HasDefault: true, Default: float64(18)}, defs.New())
	require.Nil(t, err)
	assert.Equal(t, 18, v)
}

func TestMissingWithNowDefaultOnTemporal(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("datetime")
	before := time.Now()
	v, err := td.Parse(nil, &schema.MemberDef{Type: "datetime", HasDefault: true, Default: "now"}, defs.New())
	require.Nil(t, err)
	ts, ok := v.(time.Time)
	require.True(t, ok)
	assert.False(t, ts.Before(before))
}

func TestMissingWithVariableDefault(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("string")
	d := defs.New()
	d.Set("@owner", "Ada")
	v, err := td.Parse(nil, &schema.MemberDef{Type: "string", HasDefault: true, Default: "@owner"}, d)
	require.Nil(t, err)
	assert.Equal(t, "Ada", v)
}

func TestNullAllowed(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("string")
	v, err := td.Parse(nullNode(), &schema.MemberDef{Type: "string", Null: true}, defs.New())
	require.Nil(t, err)
	assert.Nil(t, v)
}

func TestNullNotAllowed(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("string")
	_, err := td.Parse(nullNode(), &schema.MemberDef{Type: "string"}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "null-not-allowed", err.Code)
}

func TestIntTypeRejectsFraction(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("int")
	_, err := td.Parse(numNode(1.5), &schema.MemberDef{Type: "int"}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "not-an-integer", err.Code)
}

func TestBigintType(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("bigint")
	node := &ast.TokenNode{Tok: token.Token{Type: token.BIGINT, Value: big.NewInt(42)}}
	v, err := td.Parse(node, &schema.MemberDef{Type: "bigint"}, defs.New())
	require.Nil(t, err)
	assert.Equal(t, big.NewInt(42), v)
}

func TestDecimalTypeFromFloat(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("decimal")
	v, err := td.Parse(numNode(1.5), &schema.MemberDef{Type: "decimal"}, defs.New())
	require.Nil(t, err)
	dec, ok := v.(*decimal.Decimal)
	require.True(t, ok)
	assert.Equal(t, "1.5", dec.String())
}

func TestBoolTypeAcceptsShorthand(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("bool")
	v, err := td.Parse(strNode("T"), &schema.MemberDef{Type: "bool"}, defs.New())
	require.Nil(t, err)
	assert.Equal(t, true, v)
}

func TestBoolTypeRejectsOther(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("bool")
	_, err := td.Parse(strNode("yes"), &schema.MemberDef{Type: "bool"}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "not-a-bool", err.Code)
}

func TestEmailType(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("email")
	_, err := td.Parse(strNode("not-an-email"), &schema.MemberDef{Type: "email"}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "invalid-email", err.Code)

	v, err := td.Parse(strNode("a@example.com"), &schema.MemberDef{Type: "email"}, defs.New())
	require.Nil(t, err)
	assert.Equal(t, "a@example.com", v)
}

func TestURLType(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("url")
	_, err := td.Parse(strNode("not a url"), &schema.MemberDef{Type: "url"}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "invalid-url", err.Code)

	v, err := td.Parse(strNode("https://example.com/path"), &schema.MemberDef{Type: "url"}, defs.New())
	require.Nil(t, err)
	assert.Equal(t, "https://example.com/path", v)
}

func TestArrayTypeElementwise(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("array")
	arr := &ast.ArrayNode{Items: []ast.Node{numNode(1), numNode(2), numNode(3)}}
	def := &schema.MemberDef{Type: "array", Of: &schema.MemberDef{Type: "number"}}
	v, err := td.Parse(arr, def, defs.New())
	require.Nil(t, err)
	out, ok := v.([]any)
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, out)
}

func TestObjectTypeBindsNestedSchema(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("object")
	nested, err := schema.NewBuilder("point").
		Add("x", &schema.MemberDef{Type: "number"}).
		Add("y", &schema.MemberDef{Type: "number"}).
		Build()
	require.NoError(t, err)

	obj := &ast.ObjectNode{
		Braced: true,
		Members: []*ast.MemberNode{
			{Key: &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "x"}}, Value: numNode(1)},
			{Key: &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "y"}}, Value: numNode(2)},
		},
	}
	v, perr := td.Parse(obj, &schema.MemberDef{Type: "object", Schema: nested}, defs.New())
	require.Nil(t, perr)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, m["x"])
	assert.Equal(t, 2.0, m["y"])
}

func TestObjectTypeBindsPositionalNestedSchema(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("object")
	nested, err := schema.NewBuilder("addr").
		Add("street", &schema.MemberDef{Type: "string"}).
		Add("city", &schema.MemberDef{Type: "string"}).
		Build()
	require.NoError(t, err)

	obj := &ast.ObjectNode{
		Braced: true,
		Members: []*ast.MemberNode{
			{Value: strNode("Main St")},
			{Value: strNode("NYC")},
		},
	}
	v, perr := td.Parse(obj, &schema.MemberDef{Type: "object", Schema: nested}, defs.New())
	require.Nil(t, perr)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Main St", m["street"])
	assert.Equal(t, "NYC", m["city"])
}

func TestObjectTypeResolvesSchemaRef(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("object")
	addr, err := schema.NewBuilder("addr").
		Add("street", &schema.MemberDef{Type: "string"}).
		Build()
	require.NoError(t, err)

	d := defs.New()
	d.Set("$addr", addr)

	obj := &ast.ObjectNode{
		Braced: true,
		Members: []*ast.MemberNode{
			{Value: strNode("Main St")},
		},
	}
	v, perr := td.Parse(obj, &schema.MemberDef{Type: "object", SchemaRef: "addr"}, d)
	require.Nil(t, perr)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Main St", m["street"])
}

func TestObjectTypeSchemaRefUnknownFails(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("object")
	obj := &ast.ObjectNode{Braced: true}
	_, perr := td.Parse(obj, &schema.MemberDef{Type: "object", SchemaRef: "missing"}, defs.New())
	require.NotNil(t, perr)
	assert.Equal(t, "schema-not-found", perr.Code)
}

func TestObjectTypeSchemaRefDepthGuard(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("object")

	// A self-referential schema: node = {value: number, next: $node}.
	builder := schema.NewBuilder("node").
		Add("value", &schema.MemberDef{Type: "number"}).
		Add("next", &schema.MemberDef{Type: "object", SchemaRef: "node"})
	node, err := builder.Build()
	require.NoError(t, err)

	d := defs.New()
	d.Set("$node", node)
	d.SetMaxSchemaRefDepth(2)

	// Build a value graph deep enough to exceed the depth limit.
	inner := &ast.ObjectNode{Braced: true, Members: []*ast.MemberNode{
		{Key: &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "value"}}, Value: numNode(3)},
	}}
	mid := &ast.ObjectNode{Braced: true, Members: []*ast.MemberNode{
		{Key: &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "value"}}, Value: numNode(2)},
		{Key: &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "next"}}, Value: inner},
	}}
	outer := &ast.ObjectNode{Braced: true, Members: []*ast.MemberNode{
		{Key: &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "value"}}, Value: numNode(1)},
		{Key: &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "next"}}, Value: mid},
	}}

	d.ResetSchemaRefDepth()
	_, perr := td.Parse(outer, &schema.MemberDef{Type: "object", SchemaRef: "node"}, d)
	require.NotNil(t, perr)
	assert.Equal(t, "invalid-schema", perr.Code)
}

func TestAnyTypePassesThrough(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("any")
	v, err := td.Parse(boolNode(true), &schema.MemberDef{Type: "any"}, defs.New())
	require.Nil(t, err)
	assert.Equal(t, true, v)
}

func TestVariableResolution(t *testing.T) {
	d := defs.New()
	d.Set("@minAge", float64(21))
	reg := NewRegistry()
	td, _ := reg.Get("number")
	ref := &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "@minAge"}}
	v, err := td.Parse(ref, &schema.MemberDef{Type: "number"}, d)
	require.Nil(t, err)
	assert.Equal(t, 21.0, v)
}

func TestUnknownVariableFails(t *testing.T) {
	reg := NewRegistry()
	td, _ := reg.Get("number")
	ref := &ast.TokenNode{Tok: token.Token{Type: token.STRING, Value: "@missing"}}
	_, err := td.Parse(ref, &schema.MemberDef{Type: "number"}, defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "variable-not-defined", err.Code)
}
