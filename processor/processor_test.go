package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/parser"
	"github.com/maniartech/internetobject-go/schema"
	"github.com/maniartech/internetobject-go/tokenizer"
)

func personSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch, err := schema.NewBuilder("person").
		Add("name", &schema.MemberDef{Type: "string"}).
		Add("age", &schema.MemberDef{Type: "int"}).
		Build()
	require.NoError(t, err)
	return sch
}

func parseObjectRow(t *testing.T, src string) *ast.ObjectNode {
	t.Helper()
	doc, err := parser.ParseDocument(src, tokenizer.Options{})
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	obj, ok := doc.Sections[0].Content.(*ast.ObjectNode)
	require.True(t, ok)
	return obj
}

func TestProcessObjectPositional(t *testing.T) {
	obj := parseObjectRow(t, "Spiderman, 25")
	p := New()
	out, err := p.ProcessObject(obj, personSchema(t), defs.New())
	require.Nil(t, err)
	assert.Equal(t, "Spiderman", out["name"])
	assert.Equal(t, 25, out["age"])
}

func TestProcessObjectKeyed(t *testing.T) {
	obj := parseObjectRow(t, "age: 25, name: Spiderman")
	p := New()
	out, err := p.ProcessObject(obj, personSchema(t), defs.New())
	require.Nil(t, err)
	assert.Equal(t, "Spiderman", out["name"])
	assert.Equal(t, 25, out["age"])
}

func TestProcessObjectPositionalThenKeyedSucceeds(t *testing.T) {
	obj := parseObjectRow(t, "Spiderman, age: 25")
	p := New()
	out, err := p.ProcessObject(obj, personSchema(t), defs.New())
	require.Nil(t, err)
	assert.Equal(t, "Spiderman", out["name"])
	assert.Equal(t, 25, out["age"])
}

func TestProcessObjectDuplicateKeyFails(t *testing.T) {
	obj := parseObjectRow(t, "name: Spiderman, name: Batman")
	p := New()
	_, err := p.ProcessObject(obj, personSchema(t), defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "duplicate-member", err.Code)
}

func TestProcessObjectUnknownMemberClosedSchema(t *testing.T) {
	obj := parseObjectRow(t, "name: Spiderman, age: 25, city: NYC")
	p := New()
	_, err := p.ProcessObject(obj, personSchema(t), defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "unknown-member", err.Code)
}

func TestProcessObjectOpenSchemaAllowsExtras(t *testing.T) {
	sch, err := schema.NewBuilder("person").
		Add("name", &schema.MemberDef{Type: "string"}).
		SetOpen(true).
		Build()
	require.NoError(t, err)

	obj := parseObjectRow(t, "name: Spiderman, city: NYC")
	p := New()
	out, perr := p.ProcessObject(obj, sch, defs.New())
	require.Nil(t, perr)
	assert.Equal(t, "Spiderman", out["name"])
	assert.Equal(t, "NYC", out["city"])
}

func TestProcessObjectMissingOptionalOmitted(t *testing.T) {
	sch, err := schema.NewBuilder("person").
		Add("name", &schema.MemberDef{Type: "string"}).
		Add("nickname", &schema.MemberDef{Type: "string", Optional: true}).
		Build()
	require.NoError(t, err)

	obj := parseObjectRow(t, "Spiderman")
	p := New()
	out, perr := p.ProcessObject(obj, sch, defs.New())
	require.Nil(t, perr)
	_, has := out["nickname"]
	assert.False(t, has)
}

func TestProcessObjectAdditionalValuesNotAllowed(t *testing.T) {
	obj := parseObjectRow(t, "Spiderman, 25, extra")
	p := New()
	_, err := p.ProcessObject(obj, personSchema(t), defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "additional-values-not-allowed", err.Code)
}

func TestProcessCollectionAnnotatesErrorIndex(t *testing.T) {
	doc, derr := parser.ParseDocument("~ Spiderman, 25\n~ Batman, notanumber", tokenizer.Options{})
	require.NoError(t, derr)
	coll, ok := doc.Sections[0].Content.(*ast.CollectionNode)
	require.True(t, ok)

	p := New()
	res := p.ProcessCollection(coll, personSchema(t), defs.New())
	require.Len(t, res.Rows, 2)
	_, firstIsMap := res.Rows[0].(map[string]any)
	assert.True(t, firstIsMap)
	assert.False(t, res.Errors.Valid())
}

func TestResolveSchemaByName(t *testing.T) {
	d := defs.New()
	sch := personSchema(t)
	d.Set("$person", sch)
	resolved, err := ResolveSchema("person", d)
	require.Nil(t, err)
	assert.Equal(t, sch, resolved)
}

func TestResolveSchemaNotFound(t *testing.T) {
	_, err := ResolveSchema("ghost", defs.New())
	require.NotNil(t, err)
	assert.Equal(t, "schema-not-found", err.Code)
}

func TestProcessObjectSchemaRefDepthGuard(t *testing.T) {
	node, err := schema.NewBuilder("node").
		Add("value", &schema.MemberDef{Type: "int"}).
		Add("next", &schema.MemberDef{Type: "object", SchemaRef: "node"}).
		Build()
	require.NoError(t, err)

	d := defs.New()
	d.Set("$node", node)

	obj := parseObjectRow(t, "1, {2, {3, {4, {5}}}}")
	p := NewWithOptions(Options{MaxSchemaRefDepth: 2})
	_, perr := p.ProcessObject(obj, node, d)
	require.NotNil(t, perr)
	assert.Equal(t, "invalid-schema", perr.Code)
}
