package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/tokenizer"
)

func parse(t *testing.T, src string) *ast.DocumentNode {
	t.Helper()
	doc, err := ParseDocument(src, tokenizer.Options{})
	require.NoError(t, err)
	return doc
}

func TestParseBareRowSection(t *testing.T) {
	doc := parse(t, "Spiderman, 25, M")
	require.Len(t, doc.Sections, 1)
	obj, ok := doc.Sections[0].Content.(*ast.ObjectNode)
	require.True(t, ok)
	require.Len(t, obj.Members, 3)
	assert.Nil(t, obj.Members[0].Key)
}

func TestParseKeyedMembers(t *testing.T) {
	doc := parse(t, "name: Spiderman, age: 25")
	obj := doc.Sections[0].Content.(*ast.ObjectNode)
	require.Len(t, obj.Members, 2)
	assert.Equal(t, "name", obj.Members[0].KeyName())
	assert.Equal(t, "age", obj.Members[1].KeyName())
}

func TestParseBracedObjectMember(t *testing.T) {
	doc := parse(t, "point: {x: 1, y: 2}")
	obj := doc.Sections[0].Content.(*ast.ObjectNode)
	nested, ok := obj.Members[0].Value.(*ast.ObjectNode)
	require.True(t, ok)
	assert.True(t, nested.Braced)
	require.Len(t, nested.Members, 2)
}

func TestParseArrayValue(t *testing.T) {
	doc := parse(t, "tags: [a, b, c]")
	obj := doc.Sections[0].Content.(*ast.ObjectNode)
	arr, ok := obj.Members[0].Value.(*ast.ArrayNode)
	require.True(t, ok)
	require.Len(t, arr.Items, 3)
}

func TestParseUnclosedObjectEmitsErrorNode(t *testing.T) {
	doc := parse(t, "{a: 1, b: 2")
	obj := doc.Sections[0].Content.(*ast.ObjectNode)
	last := obj.Members[len(obj.Members)-1]
	_, ok := last.Value.(*ast.ErrorNode)
	assert.True(t, ok)
	assert.False(t, doc.Errors.Valid())
}

func TestParseMultipleSections(t *testing.T) {
	doc := parse(t, "1, 2\n--- people\nSpiderman, 25")
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "", doc.Sections[0].Name)
	assert.Equal(t, "people", doc.Sections[1].Name)
}

func TestParseSectionWithSchemaRef(t *testing.T) {
	doc := parse(t, "--- people:person\nSpiderman, 25")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "people", doc.Sections[0].Name)
	assert.Equal(t, "person", doc.Sections[0].SchemaName)
}

func TestParseHeaderVariables(t *testing.T) {
	doc := parse(t, "~ a: 1, b: 2\n---\n$a")
	require.NotNil(t, doc.Header)
	require.Len(t, doc.Header.Members, 2)
	assert.Equal(t, "a", doc.Header.Members[0].KeyName())
}

func TestParseCollection(t *testing.T) {
	doc := parse(t, "~ Spiderman, 25\n~ Batman, 35")
	coll, ok := doc.Sections[0].Content.(*ast.CollectionNode)
	require.True(t, ok)
	require.Len(t, coll.Rows, 2)
}

func TestParseSchemaSource(t *testing.T) {
	doc := parse(t, "name: string, age?: number")
	obj := doc.Sections[0].Content.(*ast.ObjectNode)
	require.Len(t, obj.Members, 2)
	assert.Equal(t, "age?", obj.Members[1].KeyName())
}
