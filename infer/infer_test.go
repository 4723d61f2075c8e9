package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniartech/internetobject-go/schema"
)

func TestSingularize(t *testing.T) {
	cases := map[string]string{
		"children": "child",
		"people":   "person",
		"Users":    "User",
		"boxes":    "box",
		"addresses": "address",
		"cats":     "cat",
		"class":    "class", // trailing "ss" is preserved
		"data":     "datum",
	}
	for plural, want := range cases {
		assert.Equal(t, want, Singularize(plural), plural)
	}
}

func TestInferSimpleObject(t *testing.T) {
	root := map[string]any{
		"name": "Spiderman",
		"age":  25.0,
	}
	res := Infer(root)
	require.NotNil(t, res.RootSchema)
	assert.True(t, res.RootSchema.Has("name"))
	assert.True(t, res.RootSchema.Has("age"))
	assert.Equal(t, "string", res.RootSchema.Get("name").Type)
	assert.Equal(t, "number", res.RootSchema.Get("age").Type)
}

func TestInferNestedObjectGetsNamedSchema(t *testing.T) {
	root := map[string]any{
		"name": "Spiderman",
		"address": map[string]any{
			"city": "NYC",
		},
	}
	res := Infer(root)
	addrDef := res.RootSchema.Get("address")
	require.NotNil(t, addrDef)
	assert.Equal(t, "object", addrDef.Type)
	assert.Equal(t, "address", addrDef.SchemaRef)

	stored, ok := res.Definitions.Get("$address")
	require.True(t, ok)
	assert.NotNil(t, stored)
}

func TestInferMergeOptionalAndNull(t *testing.T) {
	root := map[string]any{
		"name": "root",
		"items": []any{
			map[string]any{"v": 1.0},
			map[string]any{"v": nil},
			map[string]any{"v": 3.0, "extra": "x"},
		},
	}
	res := Infer(root)
	itemsDef := res.RootSchema.Get("items")
	require.NotNil(t, itemsDef)
	assert.Equal(t, "array", itemsDef.Type)
	require.NotNil(t, itemsDef.Of)

	stored, ok := res.Definitions.Get("$item")
	require.True(t, ok)
	itemSchema, ok := stored.(*schema.Schema)
	require.True(t, ok)
	vDef := itemSchema.Get("v")
	require.NotNil(t, vDef)
	assert.Equal(t, "number", vDef.Type)
	assert.True(t, vDef.Null)
	extraDef := itemSchema.Get("extra")
	require.NotNil(t, extraDef)
	assert.True(t, extraDef.Optional)
}
