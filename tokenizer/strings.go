package tokenizer

import (
	"encoding/base64"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/maniartech/internetobject-go/datetime"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/position"
	"github.com/maniartech/internetobject-go/token"
)

// peekAnnotation reports whether the cursor sits on a 1-4 letter
// annotation (`r`, `b`, `dt`, `d`, `t`, or any other name) immediately
// followed by a quote, without consuming anything.
func (t *Tokenizer) peekAnnotation() (string, bool) {
	if !isLetter(t.ch) {
		return "", false
	}
	idx := t.pos
	var letters []rune
	for len(letters) < 4 && idx < len(t.input) {
		r, size := utf8.DecodeRuneInString(t.input[idx:])
		if !isLetter(r) {
			break
		}
		letters = append(letters, r)
		idx += size
	}
	if len(letters) == 0 || idx >= len(t.input) {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(t.input[idx:])
	if r == '\'' || r == '"' {
		return string(letters), true
	}
	return "", false
}

// scanAnnotatedString scans an annotation prefix (already identified by
// peekAnnotation) plus its quoted body: `r'…'` raw, `b'…'` base64,
// `dt'…'`/`d'…'`/`t'…'` temporal. Any other name is an ERROR (§4.3).
func (t *Tokenizer) scanAnnotatedString(ann string) (token.Token, error) {
	start := t.curPos()
	rawStart := t.pos
	for range ann {
		t.readChar()
	}
	quote := t.ch
	t.readChar()

	switch strings.ToLower(ann) {
	case "r":
		body, closed := t.readRawStringBody(quote)
		if !closed {
			return t.errToken(start, ioerrors.New(ioerrors.CodeStringNotClosed,
				"raw string starting at {pos} is not closed", map[string]any{"pos": start.String()}))
		}
		return t.newToken(token.STRING, token.RawString, body, start), nil

	case "b":
		body, closed := t.readRawStringBody(quote)
		if !closed {
			return t.errToken(start, ioerrors.New(ioerrors.CodeStringNotClosed,
				"binary string starting at {pos} is not closed", map[string]any{"pos": start.String()}))
		}
		data, decErr := base64.StdEncoding.DecodeString(body)
		if decErr != nil {
			return t.errToken(start, ioerrors.New(ioerrors.CodeInvalidEscapeSequence,
				"invalid base64 content {body}", map[string]any{"body": body}))
		}
		return t.newToken(token.BINARY, token.BinaryString, data, start), nil

	case "dt", "d", "t":
		body, closed := t.readRawStringBody(quote)
		if !closed {
			return t.errToken(start, ioerrors.New(ioerrors.CodeStringNotClosed,
				"datetime literal starting at {pos} is not closed", map[string]any{"pos": start.String()}))
		}
		switch strings.ToLower(ann) {
		case "dt":
			if v, ok := datetime.ParseDateTime(body); ok {
				return t.newToken(token.DATETIME, token.DateTimeFull, v, start), nil
			}
		case "d":
			if v, ok := datetime.ParseDate(body); ok {
				return t.newToken(token.DATETIME, token.DateOnly, v, start), nil
			}
		case "t":
			if v, ok := datetime.ParseTime(body); ok {
				return t.newToken(token.DATETIME, token.TimeOnly, v, start), nil
			}
		}
		return t.errToken(start, ioerrors.New(ioerrors.CodeInvalidDatetime,
			"invalid {annotation} literal {body}", map[string]any{"annotation": ann, "body": body}))

	default:
		t.readRawStringBody(quote)
		return t.errToken(start, ioerrors.New(ioerrors.CodeUnsupportedAnnotation,
			"unsupported string annotation {annotation}", map[string]any{"annotation": ann}))
	}
}

// readRawStringBody reads verbatim text up to the closing quote, where a
// doubled quote (`''`) is an escaped literal quote (§4.11 raw form).
// Reports whether the body was properly closed.
func (t *Tokenizer) readRawStringBody(quote rune) (string, bool) {
	var sb strings.Builder
	for {
		if t.ch == 0 {
			return sb.String(), false
		}
		if t.ch == quote {
			if t.peekChar() == quote {
				sb.WriteRune(quote)
				t.readChar()
				t.readChar()
				continue
			}
			t.readChar()
			return sb.String(), true
		}
		sb.WriteRune(t.ch)
		t.readChar()
	}
}

// scanRegularString scans a plain quoted string, applying escape
// processing and whitespace coalescing, and NFC-normalising the result
// when a \u escape was used (§4.3).
func (t *Tokenizer) scanRegularString(quote rune) (token.Token, error) {
	start := t.curPos()
	t.readChar() // consume opening quote

	var decoded strings.Builder
	pendingSpace := false
	usedUnicode := false

	for {
		if t.ch == 0 {
			return t.errToken(start, ioerrors.New(ioerrors.CodeStringNotClosed,
				"string starting at {pos} is not closed", map[string]any{"pos": start.String()}))
		}
		if t.ch == quote {
			if pendingSpace {
				decoded.WriteByte(' ')
			}
			t.readChar()
			break
		}
		if t.ch == '\\' {
			if pendingSpace {
				decoded.WriteByte(' ')
				pendingSpace = false
			}
			t.readChar()
			frag, isUnicode, lexErr := t.readEscape()
			if lexErr != nil {
				if t.opts.Strict {
					return token.Token{}, lexErr.Spanning(position.NewRange(start, t.curPos()))
				}
				return t.errToken(start, lexErr)
			}
			if isUnicode {
				usedUnicode = true
			}
			decoded.WriteString(frag)
			continue
		}
		if isSpace(t.ch) {
			pendingSpace = true
			t.readChar()
			continue
		}
		if pendingSpace {
			decoded.WriteByte(' ')
			pendingSpace = false
		}
		decoded.WriteRune(t.ch)
		t.readChar()
	}

	result := decoded.String()
	if usedUnicode {
		result = norm.NFC.String(result)
	}
	return t.newToken(token.STRING, token.RegularString, result, start), nil
}

// readEscape decodes one escape sequence with the cursor positioned on
// the character right after the backslash. It reports the decoded
// fragment, whether it was a \u escape (triggers NFC normalization),
// and a lexical error for malformed \u/\x forms.
func (t *Tokenizer) readEscape() (string, bool, *ioerrors.Error) {
	switch t.ch {
	case 'b':
		t.readChar()
		return "\b", false, nil
	case 'f':
		t.readChar()
		return "\f", false, nil
	case 'n':
		t.readChar()
		return "\n", false, nil
	case 'r':
		t.readChar()
		return "\r", false, nil
	case 't':
		t.readChar()
		return "\t", false, nil
	case '\\':
		t.readChar()
		return "\\", false, nil
	case '"':
		t.readChar()
		return "\"", false, nil
	case '\'':
		t.readChar()
		return "'", false, nil
	case 'u':
		t.readChar()
		hex := make([]byte, 0, 4)
		for i := 0; i < 4; i++ {
			if !isHexDigit(t.ch) {
				return "", false, ioerrors.New(ioerrors.CodeInvalidEscapeSequence,
					"\\u escape requires exactly 4 hex digits")
			}
			hex = append(hex, byte(t.ch))
			t.readChar()
		}
		n, _ := strconv.ParseInt(string(hex), 16, 32)
		return string(rune(n)), true, nil
	case 'x':
		t.readChar()
		hex := make([]byte, 0, 2)
		for i := 0; i < 2; i++ {
			if !isHexDigit(t.ch) {
				return "", false, ioerrors.New(ioerrors.CodeInvalidEscapeSequence,
					"\\x escape requires exactly 2 hex digits")
			}
			hex = append(hex, byte(t.ch))
			t.readChar()
		}
		n, _ := strconv.ParseInt(string(hex), 16, 16)
		return string(rune(n)), false, nil
	case 0:
		return "", false, ioerrors.New(ioerrors.CodeInvalidEscapeSequence, "escape sequence at end of input")
	default:
		// Unknown escapes pass through literally (§4.3).
		lit := string(t.ch)
		t.readChar()
		return lit, false, nil
	}
}

// isOpenStringTerminator reports whether r ends an open (unquoted)
// string: a structural symbol, quote, comment marker, or collection
// marker (§4.3).
func isOpenStringTerminator(r rune) bool {
	switch r {
	case ',', ':', '{', '}', '[', ']', '"', '\'', '#', '~':
		return true
	}
	return false
}

// scanOpenString scans an unquoted value up to the next structural
// terminator, a `---` section separator, or EOF. Internal whitespace
// is preserved verbatim; only trailing whitespace is trimmed (§4.3).
func (t *Tokenizer) scanOpenString() (token.Token, error) {
	start := t.curPos()
	var decoded strings.Builder
	usedUnicode := false

	for {
		if t.ch == 0 || isOpenStringTerminator(t.ch) {
			break
		}
		if t.ch == '-' && t.peekChar() == '-' && t.peekAhead(1) == '-' {
			break
		}
		if t.ch == '\\' {
			t.readChar()
			frag, isUnicode, lexErr := t.readEscape()
			if lexErr != nil {
				if t.opts.Strict {
					return token.Token{}, lexErr.Spanning(position.NewRange(start, t.curPos()))
				}
				return t.errToken(start, lexErr)
			}
			if isUnicode {
				usedUnicode = true
			}
			decoded.WriteString(frag)
			continue
		}
		decoded.WriteRune(t.ch)
		t.readChar()
	}

	text := strings.TrimRightFunc(decoded.String(), isSpace)
	if usedUnicode {
		text = norm.NFC.String(text)
	}
	return t.newToken(token.STRING, token.OpenString, text, start), nil
}
