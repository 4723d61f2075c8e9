// Package tokenizer implements the IO lexical scanner (C3, §4.3):
// text -> a finite token stream, with ERROR tokens for recoverable
// lexical faults. Grounded on ha1tch-tsqlparser/lexer/lexer.go's
// rune-at-a-time scanner shape (readChar/peekChar, line/column
// bookkeeping on every advance, switch-dispatch NextToken).
package tokenizer

import (
	"unicode/utf8"

	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/position"
	"github.com/maniartech/internetobject-go/token"
)

// Options configures tokenizer behavior.
type Options struct {
	// Strict makes lexical errors raise immediately instead of being
	// captured as ERROR tokens with recovery (§4.3 "Error recovery").
	Strict bool
}

// Tokenizer scans a complete source string into tokens. It is
// single-use: construct one per Tokenize call (§5, single-threaded,
// non-suspending).
type Tokenizer struct {
	input   string
	pos     int // byte offset of ch
	readPos int // byte offset just past ch
	ch      rune
	row     int
	col     int

	opts   Options
	errors *ioerrors.List

	atLineStart bool // true when only whitespace/nothing seen since the last newline

	queued []token.Token // SECTION_NAME/SECTION_SCHEMA tokens staged by a `---` header
}

// New creates a Tokenizer over input.
func New(input string, opts Options) *Tokenizer {
	t := &Tokenizer{input: input, row: 1, col: 0, opts: opts, errors: &ioerrors.List{}, atLineStart: true}
	t.readChar()
	return t
}

// Tokenize runs the scanner to completion and returns every token
// (EOF included) plus any recoverable lexical errors collected.
func Tokenize(input string, opts Options) ([]token.Token, *ioerrors.List, error) {
	t := New(input, opts)
	var out []token.Token
	for {
		tok, err := t.Next()
		if err != nil {
			return out, t.errors, err
		}
		out = append(out, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return out, t.errors, nil
}

func (t *Tokenizer) curPos() position.Position {
	return position.Position{Pos: t.pos, Row: t.row, Col: t.col}
}

func (t *Tokenizer) readChar() {
	if t.readPos >= len(t.input) {
		t.ch = 0
		t.pos = t.readPos
		return
	}
	r, size := utf8.DecodeRuneInString(t.input[t.readPos:])
	if r == '\r' {
		// Normalize \r\n and bare \r to \n for position bookkeeping.
		if t.readPos+1 < len(t.input) && t.input[t.readPos+1] == '\n' {
			size++
		}
		r = '\n'
	}
	t.ch = r
	t.pos = t.readPos
	t.readPos += size
	t.col++
	if r == '\n' {
		t.row++
		t.col = 0
		t.atLineStart = true
	} else if !isSpace(r) {
		t.atLineStart = false
	}
}

func (t *Tokenizer) peekChar() rune {
	if t.readPos >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.readPos:])
	if r == '\r' {
		return '\n'
	}
	return r
}

// peekAhead returns the rune n+1 runes past the current character
// (peekAhead(0) is the rune peekChar sees) without consuming, or 0 past
// EOF.
func (t *Tokenizer) peekAhead(n int) rune {
	idx := t.readPos
	var r rune
	for i := 0; i <= n; i++ {
		if idx >= len(t.input) {
			return 0
		}
		var size int
		r, size = utf8.DecodeRuneInString(t.input[idx:])
		idx += size
	}
	return r
}

func (t *Tokenizer) raw(start int) string {
	return t.input[start:t.pos]
}

func (t *Tokenizer) newToken(typ token.Type, sub token.SubType, value any, start position.Position) token.Token {
	return token.Token{
		Range:   position.NewRange(start, t.curPos()),
		Token:   t.raw(start.Pos),
		Value:   value,
		Type:    typ,
		SubType: sub,
	}
}

// errToken builds an ERROR token and records the error, honoring Strict.
func (t *Tokenizer) errToken(start position.Position, err *ioerrors.Error) (token.Token, error) {
	err = err.Spanning(position.NewRange(start, t.curPos()))
	if t.opts.Strict {
		return token.Token{}, err
	}
	t.errors.Add(err)
	return token.Token{
		Range:   err.Range,
		Token:   t.raw(start.Pos),
		Value:   err,
		Type:    token.ERROR,
	}, nil
}
