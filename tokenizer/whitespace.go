package tokenizer

// isExtraSpace reports whether r is one of the Unicode space characters
// the tokenizer skips at top level beyond plain ASCII whitespace (§4.3):
// U+00A0 (NBSP), U+1680 (Ogham space), U+2000-U+200A (typographic
// spaces), U+2028/U+2029 (line/paragraph separator), U+202F (narrow
// NBSP), U+205F (medium mathematical space), U+3000 (ideographic
// space), U+FEFF (BOM / zero-width no-break space).
func isExtraSpace(r rune) bool {
	switch r {
	case ' ', ' ',
		' ', ' ', ' ', ' ', ' ', ' ',
		' ', ' ', ' ', ' ', ' ',
		' ', ' ', ' ', ' ', '　', '﻿':
		return true
	}
	return false
}

// isSpace reports whether r is ASCII whitespace or one of the extra
// Unicode space characters.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return isExtraSpace(r)
}

// skipWhitespaceAndComments advances past whitespace and `#` line
// comments, which may interleave arbitrarily at top level.
func (t *Tokenizer) skipWhitespaceAndComments() {
	for {
		for isSpace(t.ch) {
			t.readChar()
		}
		if t.ch == '#' {
			for t.ch != '\n' && t.ch != 0 {
				t.readChar()
			}
			continue
		}
		break
	}
}
