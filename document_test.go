package internetobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goccyjson "github.com/goccy/go-json"

	"github.com/maniartech/internetobject-go/tokenizer"
)

func TestParseBindsHeaderSchemaAndCollection(t *testing.T) {
	src := "~ $person: {name: string, age: int}\n--- people:person\n~ Spiderman, 25\n~ Batman, 35"
	doc, err := Parse(src, tokenizer.Options{})
	require.Nil(t, err)
	assert.True(t, doc.Errors.Valid())
	require.Len(t, doc.Sections, 1)

	rows, ok := doc.Sections[0].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	row0, ok := rows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Spiderman", row0["name"])
	assert.Equal(t, 25, row0["age"])
}

func TestParseResolvesHeaderVariableWithoutSchema(t *testing.T) {
	src := "~ @minAge: 18\n---\nname: Spiderman, age: @minAge"
	doc, err := Parse(src, tokenizer.Options{})
	require.Nil(t, err)
	assert.True(t, doc.Errors.Valid())
	require.Len(t, doc.Sections, 1)

	row, ok := doc.Sections[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Spiderman", row["name"])
	assert.Equal(t, 18.0, row["age"])
}

func TestParseWithoutSchemaRecordsInference(t *testing.T) {
	src := "name: Spiderman, age: 25"
	doc, err := Parse(src, tokenizer.Options{})
	require.Nil(t, err)
	require.NotNil(t, doc.Inferred)
	rootSchema, ok := doc.Inferred["$schema"]
	require.True(t, ok)
	assert.True(t, rootSchema.Has("name"))
	assert.True(t, rootSchema.Has("age"))
}

func TestDocumentToJSONRoundTrips(t *testing.T) {
	src := "name: Spiderman, age: 25"
	doc, err := Parse(src, tokenizer.Options{})
	require.Nil(t, err)

	out, jerr := doc.ToJSON()
	require.NoError(t, jerr)

	var decoded struct {
		Sections []map[string]any `json:"sections"`
	}
	require.NoError(t, goccyjson.Unmarshal(out, &decoded))
	require.Len(t, decoded.Sections, 1)
	assert.Equal(t, "Spiderman", decoded.Sections[0]["name"])
}
