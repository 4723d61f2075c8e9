package tokenizer

import (
	"strings"

	"github.com/maniartech/internetobject-go/token"
)

// Next scans and returns the next token, draining any tokens staged by
// a `---` section header before resuming the main dispatch (§4.3).
func (t *Tokenizer) Next() (token.Token, error) {
	if len(t.queued) > 0 {
		tok := t.queued[0]
		t.queued = t.queued[1:]
		return tok, nil
	}

	t.skipWhitespaceAndComments()
	start := t.curPos()

	switch {
	case t.ch == 0:
		return t.newToken(token.EOF, token.NoSubType, nil, start), nil

	case t.ch == '-' && t.peekChar() == '-' && t.peekAhead(1) == '-':
		return t.scanSectionSep()

	case t.ch == '{':
		t.readChar()
		return t.newToken(token.CURLY_OPEN, token.NoSubType, nil, start), nil
	case t.ch == '}':
		t.readChar()
		return t.newToken(token.CURLY_CLOSE, token.NoSubType, nil, start), nil
	case t.ch == '[':
		t.readChar()
		return t.newToken(token.BRACKET_OPEN, token.NoSubType, nil, start), nil
	case t.ch == ']':
		t.readChar()
		return t.newToken(token.BRACKET_CLOSE, token.NoSubType, nil, start), nil
	case t.ch == ':':
		t.readChar()
		return t.newToken(token.COLON, token.NoSubType, nil, start), nil
	case t.ch == ',':
		t.readChar()
		return t.newToken(token.COMMA, token.NoSubType, nil, start), nil
	case t.ch == '~':
		t.readChar()
		return t.newToken(token.COLLECTION_START, token.NoSubType, nil, start), nil

	case t.ch == '"' || t.ch == '\'':
		return t.scanRegularString(t.ch)
	}

	if ann, ok := t.peekAnnotation(); ok {
		return t.scanAnnotatedString(ann)
	}
	if tok, ok := t.tryScanKeyword(); ok {
		return tok, nil
	}
	if t.looksLikeNumberStart() {
		return t.scanNumber()
	}
	return t.scanOpenString()
}

// keyword is a bare reserved word recognized only at a word boundary,
// so e.g. "nullable" still scans as an open string (§4.3).
type keyword struct {
	word string
	typ  token.Type
	val  any
}

var keywords = []keyword{
	{"true", token.BOOLEAN, true},
	{"false", token.BOOLEAN, false},
	{"null", token.NULL, nil},
}

func (t *Tokenizer) tryScanKeyword() (token.Token, bool) {
	start := t.curPos()
	for _, kw := range keywords {
		if t.hasPrefixAt(t.pos, kw.word) && t.wordBoundaryAfter(t.pos+len(kw.word)) {
			for range kw.word {
				t.readChar()
			}
			return t.newToken(kw.typ, token.NoSubType, kw.val, start), true
		}
	}
	return token.Token{}, false
}

// looksLikeNumberStart reports whether the cursor begins a numeric
// literal, so the dispatcher can route to scanNumber instead of
// scanOpenString (§4.1/§4.3).
func (t *Tokenizer) looksLikeNumberStart() bool {
	if isDigit(t.ch) {
		return true
	}
	if t.ch == 'I' && t.hasPrefixAt(t.pos, "Inf") {
		return true
	}
	if t.ch == 'N' && t.hasPrefixAt(t.pos, "NaN") {
		return true
	}
	if t.ch == '+' || t.ch == '-' {
		n := t.peekChar()
		if isDigit(n) {
			return true
		}
		if n == '.' && isDigit(t.peekAhead(1)) {
			return true
		}
		if t.hasPrefixAt(t.pos+1, "Inf") {
			return true
		}
	}
	return false
}

// scanSectionSep consumes a `---` separator and, when followed on the
// same line by `name` or `name:schema`, stages SECTION_NAME and
// SECTION_SCHEMA tokens to be returned by the following Next calls.
func (t *Tokenizer) scanSectionSep() (token.Token, error) {
	start := t.curPos()
	t.readChar()
	t.readChar()
	t.readChar()
	sep := t.newToken(token.SECTION_SEP, token.NoSubType, nil, start)

	for t.ch == ' ' || t.ch == '\t' {
		t.readChar()
	}
	if t.ch == 0 || t.ch == '\n' || t.ch == '#' {
		return sep, nil
	}

	nameStart := t.curPos()
	var nameSB strings.Builder
	for t.ch != 0 && t.ch != '\n' && t.ch != ':' && t.ch != '#' {
		nameSB.WriteRune(t.ch)
		t.readChar()
	}
	if name := strings.TrimSpace(nameSB.String()); name != "" {
		t.queued = append(t.queued, t.newToken(token.SECTION_NAME, token.NoSubType, name, nameStart))
	}

	if t.ch == ':' {
		t.readChar()
		for t.ch == ' ' || t.ch == '\t' {
			t.readChar()
		}
		schemaStart := t.curPos()
		var schemaSB strings.Builder
		for t.ch != 0 && t.ch != '\n' && t.ch != '#' {
			schemaSB.WriteRune(t.ch)
			t.readChar()
		}
		schemaName := strings.TrimPrefix(strings.TrimSpace(schemaSB.String()), "$")
		t.queued = append(t.queued, t.newToken(token.SECTION_SCHEMA, token.NoSubType, schemaName, schemaStart))
	}

	return sep, nil
}
