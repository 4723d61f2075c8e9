package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maniartech/internetobject-go/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, _, err := Tokenize(src, Options{})
	require.NoError(t, err)
	return toks
}

func TestTokenizeStructuralSymbols(t *testing.T) {
	toks := tokenize(t, "{}[],:~")
	types := []token.Type{
		token.CURLY_OPEN, token.CURLY_CLOSE,
		token.BRACKET_OPEN, token.BRACKET_CLOSE,
		token.COMMA, token.COLON, token.COLLECTION_START,
		token.EOF,
	}
	require.Len(t, toks, len(types))
	for i, typ := range types {
		assert.Equal(t, typ, toks[i].Type, "token %d", i)
	}
}

func TestTokenizeRegularString(t *testing.T) {
	toks := tokenize(t, `"hello   world"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, token.RegularString, toks[0].SubType)
	assert.Equal(t, "hello world", toks[0].Value)
}

func TestTokenizeEscapes(t *testing.T) {
	toks := tokenize(t, `"a\tb\u0041\x42"`)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\tbAB", toks[0].Value)
}

func TestTokenizeUnterminatedStringRecovers(t *testing.T) {
	toks, errs, err := Tokenize(`"abc`, Options{})
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.ERROR, toks[0].Type)
	assert.False(t, errs.Valid())
}

func TestTokenizeUnterminatedStringStrict(t *testing.T) {
	_, _, err := Tokenize(`"abc`, Options{Strict: true})
	require.Error(t, err)
}

func TestTokenizeRawString(t *testing.T) {
	toks := tokenize(t, `r'C:\path\to''file'`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.RawString, toks[0].SubType)
	assert.Equal(t, `C:\path\to'file`, toks[0].Value)
}

func TestTokenizeBinaryString(t *testing.T) {
	toks := tokenize(t, `b'aGVsbG8='`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.BINARY, toks[0].Type)
	assert.Equal(t, []byte("hello"), toks[0].Value)
}

func TestTokenizeDateAnnotation(t *testing.T) {
	toks := tokenize(t, `d'2024-01-15'`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.DATETIME, toks[0].Type)
	assert.Equal(t, token.DateOnly, toks[0].SubType)
}

func TestTokenizeUnsupportedAnnotation(t *testing.T) {
	toks, errs, err := Tokenize(`zz'x'`, Options{})
	require.NoError(t, err)
	assert.Equal(t, token.ERROR, toks[0].Type)
	assert.False(t, errs.Valid())
}

func TestTokenizeOpenString(t *testing.T) {
	toks := tokenize(t, `Spiderman, 25`)
	require.Len(t, toks, 4)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, token.OpenString, toks[0].SubType)
	assert.Equal(t, "Spiderman", toks[0].Value)
	assert.Equal(t, token.COMMA, toks[1].Type)
	assert.Equal(t, token.NUMBER, toks[2].Type)
}

func TestTokenizeNumbers(t *testing.T) {
	toks := tokenize(t, `42, -3.5, 0xFF, 0o17, 0b101, 10n, 3.14m`)
	require.Len(t, toks, 14)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, float64(42), toks[0].Value)
	assert.Equal(t, float64(-3.5), toks[2].Value)
	assert.Equal(t, token.HexNumber, toks[4].SubType)
	assert.Equal(t, token.OctalNumber, toks[6].SubType)
	assert.Equal(t, token.BinaryNumber, toks[8].SubType)
	assert.Equal(t, token.BIGINT, toks[10].Type)
	assert.Equal(t, token.DECIMAL, toks[12].Type)
}

func TestTokenizeSpecialFloats(t *testing.T) {
	toks := tokenize(t, `Inf, -Inf, +Inf, NaN`)
	require.Len(t, toks, 8)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, token.NUMBER, toks[2].Type)
	assert.Equal(t, token.NUMBER, toks[4].Type)
	assert.Equal(t, token.NUMBER, toks[6].Type)
}

func TestTokenizeKeywords(t *testing.T) {
	toks := tokenize(t, `true, false, null, nullable`)
	require.Len(t, toks, 8)
	assert.Equal(t, token.BOOLEAN, toks[0].Type)
	assert.Equal(t, true, toks[0].Value)
	assert.Equal(t, token.BOOLEAN, toks[2].Type)
	assert.Equal(t, false, toks[2].Value)
	assert.Equal(t, token.NULL, toks[4].Type)
	assert.Equal(t, token.STRING, toks[6].Type)
	assert.Equal(t, "nullable", toks[6].Value)
}

func TestTokenizeNumberMergesIntoOpenString(t *testing.T) {
	toks := tokenize(t, `123abc, 7`)
	require.Len(t, toks, 4)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, token.OpenString, toks[0].SubType)
	assert.Equal(t, "123abc", toks[0].Value)
}

// The merged Value must come from the raw source text, not the decoded
// continuation: `\n` in the tail is an escape sequence whose decoded form
// (a single newline byte) differs from its two-character raw text.
func TestTokenizeNumberMergeUsesRawText(t *testing.T) {
	toks := tokenize(t, `5\n, 7`)
	require.Len(t, toks, 4)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, token.OpenString, toks[0].SubType)
	assert.Equal(t, `5\n`, toks[0].Token)
	assert.Equal(t, `5\n`, toks[0].Value)
}

func TestTokenizeSectionSeparatorWithHeader(t *testing.T) {
	toks := tokenize(t, "--- addresses:address\n{1}")
	require.True(t, len(toks) >= 4)
	assert.Equal(t, token.SECTION_SEP, toks[0].Type)
	assert.Equal(t, token.SECTION_NAME, toks[1].Type)
	assert.Equal(t, "addresses", toks[1].Value)
	assert.Equal(t, token.SECTION_SCHEMA, toks[2].Type)
	assert.Equal(t, "address", toks[2].Value)
	assert.Equal(t, token.CURLY_OPEN, toks[3].Type)
}

func TestTokenizeBareSectionSeparator(t *testing.T) {
	toks := tokenize(t, "---\n1,2")
	assert.Equal(t, token.SECTION_SEP, toks[0].Type)
	assert.Equal(t, token.NUMBER, toks[1].Type)
}

func TestTokenizeLineComment(t *testing.T) {
	toks := tokenize(t, "1, # a comment\n2")
	require.Len(t, toks, 4)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, token.NUMBER, toks[2].Type)
}
