package infer

import (
	"sort"

	"github.com/maniartech/internetobject-go/schema"
)

// memberInfo accumulates one merged member's shape across a group's
// instances, before being frozen into a *schema.MemberDef.
type memberInfo struct {
	typ      string
	optional bool
	null     bool
	isArray  bool // the underlying value was []any, vs a bare object
}

// mergeInstances applies §4.10 phase 3's six rules across a group's
// instances, in discovery order. childPath records, for every key whose
// value was itself an object or an array, the first instance path seen
// for that key, used afterward to resolve a nested schema reference.
func mergeInstances(instances []instance) (map[string]*memberInfo, map[string]string) {
	result := make(map[string]*memberInfo)
	childPath := make(map[string]string)

	for idx, inst := range instances {
		keys := make([]string, 0, len(inst.data))
		for k := range inst.data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			v := inst.data[key]
			info, exists := result[key]
			if !exists {
				if v == nil {
					info = &memberInfo{typ: "any", null: true}
				} else {
					info = &memberInfo{typ: classifyType(v)}
				}
				if idx > 0 {
					info.optional = true // Rule 2
					if v == nil {
						info.null = true // Rule 3
					}
				}
				result[key] = info
			} else if v == nil {
				info.null = true // Rule 6
			} else if t := classifyType(v); t != info.typ && info.typ != "any" {
				info.typ = "any" // Rule 5
			}

			switch arr := v.(type) {
			case map[string]any:
				if _, ok := childPath[key]; !ok {
					childPath[key] = joinPath(inst.path, key)
				}
			case []any:
				info.isArray = true
				if _, ok := childPath[key]; !ok && len(arr) > 0 {
					if _, isObj := arr[0].(map[string]any); isObj {
						childPath[key] = joinPath(inst.path, key) + "[]"
					}
				}
			}
		}

		// Rule 4: a key already known but absent from this instance.
		for key, info := range result {
			if _, present := inst.data[key]; !present {
				info.optional = true
			}
		}
	}
	return result, childPath
}

// buildSchema merges a group's instances and freezes the result into a
// Schema named name, resolving nested object/array members to the
// schema name pathToName assigns their discovery path.
func buildSchema(name string, instances []instance, pathToName map[string]string) *schema.Schema {
	merged, childPath := mergeInstances(instances)

	names := make([]string, 0, len(merged))
	for k := range merged {
		names = append(names, k)
	}
	sort.Strings(names)

	b := schema.NewBuilder(name)
	for _, key := range names {
		info := merged[key]
		def := &schema.MemberDef{Type: info.typ, Optional: info.optional, Null: info.null}

		if ref, ok := pathToName[childPath[key]]; ok && info.typ == "object" {
			def.SchemaRef = ref
		} else if info.typ == "array" {
			elem := &schema.MemberDef{Type: "any", Optional: true, Null: true}
			if ref, ok := pathToName[childPath[key]]; ok {
				elem = &schema.MemberDef{Type: "object", SchemaRef: ref}
			}
			def.Of = elem
		}
		b.Add(key, def)
	}
	built, _ := b.Build()
	return built
}
