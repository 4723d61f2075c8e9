package tokenizer

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/maniartech/internetobject-go/decimal"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/position"
	"github.com/maniartech/internetobject-go/token"
)

// hasPrefixAt reports whether s appears at byte offset off in t.input.
func (t *Tokenizer) hasPrefixAt(off int, s string) bool {
	end := off + len(s)
	if end > len(t.input) {
		return false
	}
	return t.input[off:end] == s
}

// wordBoundaryAfter reports whether the byte offset off (just past a
// matched keyword) is not itself inside a longer identifier.
func (t *Tokenizer) wordBoundaryAfter(off int) bool {
	if off >= len(t.input) {
		return true
	}
	r := rune(t.input[off])
	return !isLetterOrDigit(r)
}

// tryScanSpecialFloat recognizes the literal spellings `Inf`, `+Inf`,
// `-Inf`, and `NaN` (§4.1/§4.3).
func (t *Tokenizer) tryScanSpecialFloat() (token.Token, bool) {
	start := t.curPos()
	switch {
	case t.ch == 'I' && t.hasPrefixAt(t.pos, "Inf") && t.wordBoundaryAfter(t.pos+3):
		t.readChar()
		t.readChar()
		t.readChar()
		return t.newToken(token.NUMBER, token.NoSubType, math.Inf(1), start), true
	case t.ch == 'N' && t.hasPrefixAt(t.pos, "NaN") && t.wordBoundaryAfter(t.pos+3):
		t.readChar()
		t.readChar()
		t.readChar()
		return t.newToken(token.NUMBER, token.NoSubType, math.NaN(), start), true
	case t.ch == '+' && t.hasPrefixAt(t.pos+1, "Inf") && t.wordBoundaryAfter(t.pos+4):
		t.readChar()
		t.readChar()
		t.readChar()
		t.readChar()
		return t.newToken(token.NUMBER, token.NoSubType, math.Inf(1), start), true
	case t.ch == '-' && t.hasPrefixAt(t.pos+1, "Inf") && t.wordBoundaryAfter(t.pos+4):
		t.readChar()
		t.readChar()
		t.readChar()
		t.readChar()
		return t.newToken(token.NUMBER, token.NoSubType, math.Inf(-1), start), true
	}
	return token.Token{}, false
}

// scanNumber scans a numeric literal: decimal/hex/octal/binary integers,
// optional fraction and exponent, and the `n` (bigint) / `m` (decimal)
// suffixes, per §4.1 and §4.3. A number immediately followed by a
// non-terminator, non-whitespace character is merged into an open
// string (§4.3 "merge step").
func (t *Tokenizer) scanNumber() (token.Token, error) {
	if tok, ok := t.tryScanSpecialFloat(); ok {
		return t.maybeMergeIntoOpenString(tok)
	}

	start := t.curPos()
	negative := false
	if t.ch == '+' || t.ch == '-' {
		negative = t.ch == '-'
		t.readChar()
	}

	base := 10
	var intDigits, fracDigits, expDigits strings.Builder
	hasFrac, hasExp := false, false

	switch {
	case t.ch == '0' && (t.peekChar() == 'x' || t.peekChar() == 'X'):
		base = 16
		t.readChar()
		t.readChar()
		for isHexDigit(t.ch) {
			intDigits.WriteRune(t.ch)
			t.readChar()
		}
	case t.ch == '0' && (t.peekChar() == 'o' || t.peekChar() == 'O'):
		base = 8
		t.readChar()
		t.readChar()
		for isOctalDigit(t.ch) {
			intDigits.WriteRune(t.ch)
			t.readChar()
		}
	case t.ch == '0' && (t.peekChar() == 'b' || t.peekChar() == 'B'):
		base = 2
		t.readChar()
		t.readChar()
		for t.ch == '0' || t.ch == '1' {
			intDigits.WriteRune(t.ch)
			t.readChar()
		}
	default:
		for isDigit(t.ch) {
			intDigits.WriteRune(t.ch)
			t.readChar()
		}
		if t.ch == '.' && isDigit(t.peekChar()) {
			hasFrac = true
			t.readChar()
			for isDigit(t.ch) {
				fracDigits.WriteRune(t.ch)
				t.readChar()
			}
		}
		if (t.ch == 'e' || t.ch == 'E') && exponentLooksValid(t.peekChar(), t.peekAhead(1)) {
			hasExp = true
			expDigits.WriteRune(t.ch)
			t.readChar()
			if t.ch == '+' || t.ch == '-' {
				expDigits.WriteRune(t.ch)
				t.readChar()
			}
			for isDigit(t.ch) {
				expDigits.WriteRune(t.ch)
				t.readChar()
			}
		}
	}

	suffix := byte(0)
	if base == 10 && t.ch == 'n' {
		suffix = 'n'
		t.readChar()
	} else if base == 10 && t.ch == 'm' {
		suffix = 'm'
		t.readChar()
	}

	raw := t.raw(start.Pos)

	var (
		value any
		typ   = token.NUMBER
		sub   = token.NoSubType
	)

	switch {
	case suffix == 'n':
		bi, ok := new(big.Int).SetString(intDigits.String(), 10)
		if !ok {
			return t.errToken(start, ioerrors.New(ioerrors.CodeNotANumber, "invalid bigint literal {text}", map[string]any{"text": raw}))
		}
		if negative {
			bi.Neg(bi)
		}
		value, typ = bi, token.BIGINT

	case suffix == 'm':
		d, err := decimal.Parse(strings.TrimSuffix(raw, "m"))
		if err != nil {
			return t.errToken(start, ioerrors.New(ioerrors.CodeNotANumber, "invalid decimal literal {text}", map[string]any{"text": raw}))
		}
		value, typ = d, token.DECIMAL

	case base != 10:
		bi, ok := new(big.Int).SetString(intDigits.String(), base)
		if !ok {
			return t.errToken(start, ioerrors.New(ioerrors.CodeNotANumber, "invalid numeric literal {text}", map[string]any{"text": raw}))
		}
		if negative {
			bi.Neg(bi)
		}
		value = bi
		switch base {
		case 16:
			sub = token.HexNumber
		case 8:
			sub = token.OctalNumber
		case 2:
			sub = token.BinaryNumber
		}

	default:
		text := intDigits.String()
		if text == "" {
			text = "0"
		}
		if hasFrac {
			text += "." + fracDigits.String()
		}
		if hasExp {
			text += expDigits.String()
		}
		if negative {
			text = "-" + text
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return t.errToken(start, ioerrors.New(ioerrors.CodeNotANumber, "invalid numeric literal {text}", map[string]any{"text": raw}))
		}
		value = f
	}

	tok := token.Token{Range: position.NewRange(start, t.curPos()), Token: raw, Value: value, Type: typ, SubType: sub}
	return t.maybeMergeIntoOpenString(tok)
}

// exponentLooksValid reports whether the characters following an `e`/`E`
// form a syntactically valid exponent (optional sign, then a digit).
func exponentLooksValid(next, nextNext rune) bool {
	if isDigit(next) {
		return true
	}
	if (next == '+' || next == '-') && isDigit(nextNext) {
		return true
	}
	return false
}

// maybeMergeIntoOpenString implements §4.3's merge rule: a number token
// immediately followed by a character that is neither whitespace nor an
// open-string terminator is re-tokenized as a single OPEN_STRING whose
// raw text is the concatenation of the number and the following text.
func (t *Tokenizer) maybeMergeIntoOpenString(tok token.Token) (token.Token, error) {
	if t.ch == 0 || isSpace(t.ch) || isOpenStringTerminator(t.ch) {
		return tok, nil
	}
	cont, err := t.scanOpenString()
	if err != nil {
		return token.Token{}, err
	}
	if cont.Type == token.ERROR {
		return cont, nil
	}
	merged := tok.Token + cont.Token
	return token.Token{
		Range:   position.NewRange(tok.Range.Start, cont.Range.End),
		Token:   merged,
		Value:   merged,
		Type:    token.STRING,
		SubType: token.OpenString,
	}, nil
}
