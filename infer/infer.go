// Package infer implements the IO schema inferrer (C10, §4.10): given a
// host value, discovers every nested object shape, resolves naming
// conflicts, merges instances of the same shape into one MemberDef set
// per the multi-pass rules, and finalises a Definitions store plus a
// root Schema. Grounded on kaptinlin-jsonschema/utils.go's getDataType
// host-value classification, extended with the discovery/merge passes
// §4.10 spells out.
package infer

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
	"time"

	"github.com/maniartech/internetobject-go/decimal"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/schema"
)

// instance is one discovered object occurrence: the name it would be
// registered under absent conflicts, the path it was found at, and its
// decoded fields.
type instance struct {
	baseName string
	path     string
	data     map[string]any
}

// Result is the inferrer's output: a populated Definitions store (every
// resolved named schema, keyed `$name`, plus `$schema` for the root) and
// the root Schema itself.
type Result struct {
	Definitions *defs.Definitions
	RootSchema  *schema.Schema
}

// Infer runs the five phases of §4.10 against a decoded host value,
// which must be a map[string]any (the root object).
func Infer(root map[string]any) *Result {
	instances := discover(root)
	groups, pathToName := resolveConflicts(instances)

	d := defs.New()
	named := make(map[string]*schema.Schema, len(groups))
	for name, group := range groups {
		named[name] = buildSchema(name, group.instances, pathToName)
	}

	rootGroupName := groups["$schema"].resolvedName
	rootSchema := named[rootGroupName]

	for name, sch := range named {
		if name == rootGroupName || groups[name].resolvedName == "" {
			continue
		}
		d.Set("$"+name, sch)
	}
	d.Set("$schema", rootSchema)
	d.SetDefaultSchema(rootSchema)

	return &Result{Definitions: d, RootSchema: rootSchema}
}

// discover walks root depth-first, collecting one instance per nested
// object and per object found inside an array property (§4.10 phase 1).
func discover(root map[string]any) []instance {
	out := []instance{{baseName: "$schema", path: "", data: root}}
	walk(root, "", &out)
	return out
}

func walk(obj map[string]any, path string, out *[]instance) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := obj[key].(type) {
		case map[string]any:
			childPath := joinPath(path, key)
			*out = append(*out, instance{baseName: key, path: childPath, data: v})
			walk(v, childPath, out)
		case []any:
			base := Singularize(key)
			childPath := joinPath(path, key) + "[]"
			for _, item := range v {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				*out = append(*out, instance{baseName: base, path: childPath, data: m})
				walk(m, childPath, out)
			}
		}
	}
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

// group is a fully resolved schema-name bucket: the name instances were
// assigned to, and the instances themselves.
type group struct {
	resolvedName string
	instances    []instance
}

// resolveConflicts implements §4.10 phase 2: instances are first bucketed
// by baseName, then by path within that bucket. When every path's
// structural signature agrees, the whole bucket keeps baseName. Otherwise
// shorter paths keep it and longer ones get a qualified name; buckets
// whose path-groups share no keys at all are left conflicted, each
// assigned its own private (unreferenceable) bucket name so the linking
// pass in buildSchema falls back to a plain "object" member. It also
// returns a path->resolved-name map used to wire nested object/array
// members back to their schema.
func resolveConflicts(instances []instance) (map[string]*group, map[string]string) {
	byBase := make(map[string][]instance)
	for _, inst := range instances {
		byBase[inst.baseName] = append(byBase[inst.baseName], inst)
	}

	result := make(map[string]*group)
	pathToName := make(map[string]string)
	for base, insts := range byBase {
		byPath := make(map[string][]instance)
		var paths []string
		for _, inst := range insts {
			if _, ok := byPath[inst.path]; !ok {
				paths = append(paths, inst.path)
			}
			byPath[inst.path] = append(byPath[inst.path], inst)
		}

		if base == "$schema" {
			result[base] = &group{resolvedName: base, instances: insts}
			pathToName[""] = base
			continue
		}

		if len(paths) == 1 || signaturesAgree(byPath) {
			result[base] = &group{resolvedName: base, instances: insts}
			for _, p := range paths {
				pathToName[p] = base
			}
			continue
		}

		if !shareAnyKey(byPath) {
			// Conflicted: every path-group gets its own unnamed/"object"
			// bucket; no pathToName entry is recorded, so callers fall
			// back to a plain object member without a $ref.
			for i, p := range paths {
				result[fmt.Sprintf("__conflicted_%s_%d", base, i)] = &group{
					resolvedName: "", instances: byPath[p],
				}
			}
			continue
		}

		sort.Slice(paths, func(i, j int) bool { return len(paths[i]) < len(paths[j]) })
		used := map[string]bool{base: true}
		for i, p := range paths {
			name := base
			if i > 0 {
				name = qualify(p, base, used)
			}
			used[name] = true
			result[name] = &group{resolvedName: name, instances: byPath[p]}
			pathToName[p] = name
		}
	}
	return result, pathToName
}

// signaturesAgree reports whether every path-group's instances share one
// structural signature (sorted "key:type" list), and all path-groups
// agree with each other.
func signaturesAgree(byPath map[string][]instance) bool {
	var first string
	seenFirst := false
	for _, insts := range byPath {
		for _, inst := range insts {
			sig := signature(inst.data)
			if !seenFirst {
				first, seenFirst = sig, true
				continue
			}
			if sig != first {
				return false
			}
		}
	}
	return true
}

func signature(data map[string]any) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ":" + classifyType(data[k])
	}
	return strings.Join(parts, ",")
}

func shareAnyKey(byPath map[string][]instance) bool {
	var keysets []map[string]bool
	for _, insts := range byPath {
		ks := make(map[string]bool)
		for _, inst := range insts {
			for k := range inst.data {
				ks[k] = true
			}
		}
		keysets = append(keysets, ks)
	}
	for i := 0; i < len(keysets); i++ {
		for j := i + 1; j < len(keysets); j++ {
			for k := range keysets[i] {
				if keysets[j][k] {
					return true
				}
			}
		}
	}
	return len(keysets) < 2
}

// qualify builds a camelCase name from path's ancestor segments plus
// base, appending a numeric suffix on collision.
func qualify(path, base string, used map[string]bool) string {
	segs := strings.FieldsFunc(path, func(r rune) bool { return r == '.' || r == '[' || r == ']' })
	var b strings.Builder
	for i, seg := range segs {
		if i == len(segs)-1 && strings.EqualFold(seg, base) {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(strings.ToLower(seg[:1]) + seg[1:])
		} else {
			b.WriteString(strings.ToUpper(seg[:1]) + seg[1:])
		}
	}
	if b.Len() == 0 {
		b.WriteString(strings.ToLower(base[:1]) + base[1:])
	} else {
		b.WriteString(strings.ToUpper(base[:1]) + base[1:])
	}
	name := b.String()
	if !used[name] {
		return name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !used[candidate] {
			return candidate
		}
	}
}

// classifyType maps a decoded host value to the §4.10 type vocabulary.
func classifyType(v any) string {
	switch v.(type) {
	case nil:
		return "any"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, int:
		return "number"
	case *big.Int:
		return "bigint"
	case *decimal.Decimal:
		return "decimal"
	case time.Time:
		return "datetime"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "any"
	}
}
