package infer

import "strings"

// irregulars lists the plural->singular pairs called out explicitly by
// §4.10.1, checked case-insensitively before the suffix rules.
var irregulars = map[string]string{
	"children": "child",
	"people":   "person",
	"mice":     "mouse",
	"data":     "datum",
	"criteria": "criterion",
	"analyses": "analysis",
	"indices":  "index",
}

// Singularize derives a base name from a plural property name, per
// §4.10.1: irregulars first, then `ies->y`, `ves->f`,
// `sses|xes|zes|ches|shes->strip es`, trailing non-`ss` `s->strip`.
// The leading-capital case of the input is preserved in the output.
func Singularize(name string) string {
	if name == "" {
		return name
	}
	capitalized := name[0] >= 'A' && name[0] <= 'Z'
	lower := strings.ToLower(name)

	if base, ok := irregulars[lower]; ok {
		return applyCase(base, capitalized)
	}

	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return applyCase(lower[:len(lower)-3]+"y", capitalized)
	case strings.HasSuffix(lower, "ves") && len(lower) > 3:
		return applyCase(lower[:len(lower)-3]+"f", capitalized)
	case hasAnySuffix(lower, "sses", "xes", "zes", "ches", "shes"):
		return applyCase(strings.TrimSuffix(lower, "es"), capitalized)
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 1:
		return applyCase(lower[:len(lower)-1], capitalized)
	default:
		return name
	}
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func applyCase(s string, capitalized bool) string {
	if !capitalized || s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
