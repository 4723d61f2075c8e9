// Package serializer implements the IO textual-form writer (C11, §4.11):
// for any decoded host value it picks the minimal, lossless textual
// representation and emits headers, sections, and collections back into
// source form. Grounded on the teacher's constraint-driven "pick the
// minimal safe representation, compute once" style seen across its
// formats.go/pattern.go (a fixed decision table, no backtracking).
package serializer

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maniartech/internetobject-go/decimal"
	"github.com/maniartech/internetobject-go/defs"
)

// ambiguousTokens are bare words that collide with a keyword or literal
// spelling and must never be emitted as an unquoted open string (§4.11).
var ambiguousTokens = map[string]bool{
	"null": true, "N": true, "true": true, "T": true, "false": true, "F": true,
	"Inf": true, "+Inf": true, "-Inf": true, "NaN": true, "undefined": true,
}

var (
	numberLikeRe   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?[nm]?$`)
	dateLikeRe     = regexp.MustCompile(`^\d{4}-?\d{2}-?\d{2}$`)
	timeLikeRe     = regexp.MustCompile(`^\d{2}:?\d{2}:?\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?$`)
	datetimeLikeRe = regexp.MustCompile(`^\d{4}-?\d{2}-?\d{2}T\d{2}:?\d{2}:?\d{2}(\.\d+)?(Z|[+-]\d{2}:?\d{2})?$`)
	structuralRe   = regexp.MustCompile(`[{}\[\]:,#"'\\~]`)
)

// Value renders one decoded host value in its minimal textual form
// (§4.11). null renders as "N"; an array renders as a bracketed list and
// a map as a braced object via Object. A row collection is rendered by
// Collection, not here.
func Value(v any) string {
	switch x := v.(type) {
	case nil:
		return "N"
	case string:
		return String(x)
	case bool:
		if x {
			return "T"
		}
		return "F"
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatFloat(x)
	case *big.Int:
		return x.String() + "n"
	case *decimal.Decimal:
		return x.String() + "m"
	case time.Time:
		return "dt'" + x.UTC().Format("2006-01-02T15:04:05Z") + "'"
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = Value(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		return Object(x)
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "+Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Object renders a braced object literal with keys in sorted order (the
// decoded map carries no ordering of its own).
func Object(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = String(k) + ": " + Value(m[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Collection renders an ordered list of rows as `~`-prefixed lines.
func Collection(rows []any) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			lines[i] = "~ " + Value(row)
			continue
		}
		lines[i] = "~ " + stripBraces(Object(obj))
	}
	return strings.Join(lines, "\n")
}

func stripBraces(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
}

// String picks among regular, open, and raw string forms per §4.11's
// precedence: ambiguous-token or number/date/time/datetime lookalikes go
// regular-quoted; strings with a structural character go open-escaped;
// strings with control whitespace go raw; everything else is bare open.
func String(s string) string {
	if s == "" {
		return `""`
	}
	if looksAmbiguous(s) {
		return quoteRegular(s)
	}
	if structuralRe.MatchString(s) {
		return escapeOpen(s)
	}
	if strings.ContainsAny(s, "\n\r\t") {
		return quoteRaw(s)
	}
	return s
}

func looksAmbiguous(s string) bool {
	if ambiguousTokens[s] {
		return true
	}
	return numberLikeRe.MatchString(s) || dateLikeRe.MatchString(s) ||
		timeLikeRe.MatchString(s) || datetimeLikeRe.MatchString(s)
}

func quoteRegular(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func escapeOpen(s string) string {
	var b strings.Builder
	for _, r := range s {
		if structuralRe.MatchString(string(r)) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func quoteRaw(s string) string {
	return `r"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Header renders the definitions store as a run of `~` lines, one entry
// per key, skipping nothing (callers decide whether to include it).
func Header(d *defs.Definitions) string {
	var lines []string
	for _, e := range d.Entries() {
		lines = append(lines, "~ "+String(e.Key)+": "+Value(e.Value))
	}
	return strings.Join(lines, "\n")
}

// SectionSeparator renders a `---` separator, optionally followed by
// `name[: $schema]`.
func SectionSeparator(name, schemaRef string) string {
	switch {
	case name == "" && schemaRef == "":
		return "---"
	case schemaRef == "":
		return "--- " + name
	default:
		return "--- " + name + ": $" + schemaRef
	}
}
