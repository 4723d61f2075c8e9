package schema

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/position"
)

// BindMembers runs the positional-then-keyed binding pass of §4.8
// against sch's declared names: unkeyed members fill names in schema
// order until the first keyed member, after which every remaining
// member must be keyed. A member whose key sch doesn't declare is an
// extra, returned separately so the caller applies its own open-schema
// extras policy; with a closed schema any extra is an outright failure.
//
// This is shared by the top-level processor and by objectType's nested
// binder (§4.8's three-pass algorithm applies to object processing in
// general, not only to a document's top-level row).
func BindMembers(objRange position.Range, members []*ast.MemberNode, sch *Schema) (map[string]ast.Node, []*ast.MemberNode, *ioerrors.Error) {
	names := sch.Names()
	bound := make(map[string]ast.Node, len(names))

	posIdx := 0
	stopPositional := false
	var extras []*ast.MemberNode
	seenKeyed := make(map[string]bool)

	for _, m := range members {
		if m.Key == nil && !stopPositional {
			if posIdx < len(names) {
				bound[names[posIdx]] = m.Value
			} else {
				extras = append(extras, m)
			}
			posIdx++
			continue
		}
		stopPositional = true

		if m.Key == nil {
			return nil, nil, ioerrors.New(ioerrors.CodePositionalAfterKeyword,
				"positional member after a keyed member").Spanning(m.Range())
		}

		key := m.KeyName()
		if seenKeyed[key] {
			return nil, nil, ioerrors.New(ioerrors.CodeDuplicateMember, "duplicate member {key}",
				map[string]any{"key": key}).Spanning(m.Range())
		}
		seenKeyed[key] = true

		if !sch.Has(key) {
			if !sch.IsOpen() {
				return nil, nil, ioerrors.New(ioerrors.CodeUnknownMember, "unknown member {key}",
					map[string]any{"key": key}).Spanning(m.Range())
			}
			extras = append(extras, m)
			continue
		}
		bound[key] = m.Value
	}

	if len(extras) > 0 && !sch.IsOpen() {
		return nil, nil, ioerrors.New(ioerrors.CodeAdditionalValuesNotAllowed,
			"additional values are not allowed by this schema").Spanning(objRange)
	}

	return bound, extras, nil
}
