package schema

import (
	"regexp"
	"strings"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/ioerrors"
)

// TypeRegistered is supplied by the caller (the type registry, C7) so
// the compiler never imports it directly and stays free of a
// schema<->types import cycle.
type TypeRegistered func(name string) bool

// Compile turns a schema-source ObjectNode into a frozen Schema,
// following §4.6's per-member dispatch. Errors are collected, not
// raised; a member that fails to compile is simply omitted from the
// result so compilation produces a best-effort Schema. A duplicate
// member name is the exception: Build fails and the returned Schema is
// nil.
func Compile(obj *ast.ObjectNode, name string, isType TypeRegistered) (*Schema, *ioerrors.List) {
	errs := &ioerrors.List{}
	b := NewBuilder(name)

	for i, m := range obj.Members {
		if m.Key == nil {
			if tn, ok := m.Value.(*ast.TokenNode); ok && tn.Tok.Token == "*" {
				if i != len(obj.Members)-1 {
					errs.Add(ioerrors.New(ioerrors.CodeInvalidSchema,
						"open marker '*' must be the last member").At(tn.Tok.Pos()))
					continue
				}
				b.SetOpen(true)
				continue
			}
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "schema member requires a key").Spanning(m.Range()))
			continue
		}

		rawName := m.KeyName()
		memberName, optional, nullable := parseKeySuffix(rawName)

		def, sub := compileMemberValue(m.Value, isType)
		errs.Extend(sub)
		if def == nil {
			continue
		}
		def.Optional = def.Optional || optional
		def.Null = def.Null || nullable
		b.Add(memberName, def)
	}

	built, err := b.Build()
	if err != nil {
		errs.Add(ioerrors.New(ioerrors.CodeInvalidSchema, err.Error()))
	}
	return built, errs
}

// parseKeySuffix splits a schema member key's trailing `?`/`*`/`?*`/`*?`
// into (bareName, optional, nullable) (§3 "MemberDef").
func parseKeySuffix(raw string) (string, bool, bool) {
	optional, nullable := false, false
	for {
		switch {
		case strings.HasSuffix(raw, "?*") || strings.HasSuffix(raw, "*?"):
			optional, nullable = true, true
			raw = raw[:len(raw)-2]
		case strings.HasSuffix(raw, "?"):
			optional = true
			raw = raw[:len(raw)-1]
		case strings.HasSuffix(raw, "*"):
			nullable = true
			raw = raw[:len(raw)-1]
		default:
			return raw, optional, nullable
		}
	}
}

func tokenLiteral(n ast.Node) (any, bool) {
	tn, ok := n.(*ast.TokenNode)
	if !ok {
		return nil, false
	}
	return tn.Tok.Value, true
}

func compileMemberValue(value ast.Node, isType TypeRegistered) (*MemberDef, *ioerrors.List) {
	switch v := value.(type) {
	case *ast.TokenNode:
		s, ok := v.Tok.Value.(string)
		if !ok {
			s = v.Tok.Token
		}
		if strings.HasPrefix(s, "$") {
			return &MemberDef{Type: "object", SchemaRef: strings.TrimPrefix(s, "$")}, nil
		}
		if isType(s) {
			return &MemberDef{Type: s}, nil
		}
		errs := &ioerrors.List{}
		errs.Add(ioerrors.New(ioerrors.CodeInvalidType, "{name} is not a registered type", map[string]any{"name": s}).At(v.Tok.Pos()))
		return nil, errs

	case *ast.ObjectNode:
		return compileObjectValue(v, isType)

	case *ast.ArrayNode:
		switch len(v.Items) {
		case 0:
			return &MemberDef{Type: "array", Of: &MemberDef{Type: "any", Optional: true, Null: true}}, nil
		case 1:
			elemDef, sub := compileMemberValue(v.Items[0], isType)
			if elemDef == nil {
				return nil, sub
			}
			return &MemberDef{Type: "array", Of: elemDef}, sub
		default:
			errs := &ioerrors.List{}
			errs.Add(ioerrors.New(ioerrors.CodeInvalidSchema, "array schema form takes at most one element type").Spanning(v.Range()))
			return nil, errs
		}

	default:
		errs := &ioerrors.List{}
		errs.Add(ioerrors.New(ioerrors.CodeInvalidSchema, "unsupported schema value").Spanning(value.Range()))
		return nil, errs
	}
}

// compileObjectValue handles the three ObjectNode forms of §4.6: empty
// (open object), type-with-options (bare-string or `type:` leading
// member), and nested object schema.
func compileObjectValue(obj *ast.ObjectNode, isType TypeRegistered) (*MemberDef, *ioerrors.List) {
	if len(obj.Members) == 0 {
		sch, _ := NewBuilder("").SetOpen(true).Build()
		return &MemberDef{Type: "object", Schema: sch}, nil
	}

	typeName, optionMembers := detectLeadingType(obj, isType)
	if typeName != "" {
		def := &MemberDef{Type: typeName}
		errs := &ioerrors.List{}
		for _, m := range optionMembers {
			errs.Extend(applyOption(def, m))
		}
		return def, errs
	}

	nested, errs := Compile(obj, "", isType)
	return &MemberDef{Type: "object", Schema: nested}, errs
}

// detectLeadingType recognizes a bare type-name first member (`{number,
// min: 1}`) or an explicit `type: X` member, returning the remaining
// members as option members.
func detectLeadingType(obj *ast.ObjectNode, isType TypeRegistered) (string, []*ast.MemberNode) {
	first := obj.Members[0]
	if first.Key == nil {
		if tn, ok := first.Value.(*ast.TokenNode); ok {
			if s, ok2 := tn.Tok.Value.(string); ok2 && isType(s) {
				return s, obj.Members[1:]
			}
		}
		return "", obj.Members
	}
	if first.KeyName() == "type" {
		if tn, ok := first.Value.(*ast.TokenNode); ok {
			if s, ok2 := tn.Tok.Value.(string); ok2 && isType(s) {
				return s, obj.Members[1:]
			}
		}
	}
	return "", obj.Members
}

// applyOption parses one `min`/`max`/`minLength`/`maxLength`/`default`/
// `choices`/`pattern`/`null`/`optional` option member into def.
func applyOption(def *MemberDef, m *ast.MemberNode) *ioerrors.List {
	errs := &ioerrors.List{}
	key := m.KeyName()
	switch key {
	case "min", "max":
		v, ok := tokenLiteral(m.Value)
		f, fok := toFloat(v)
		if !ok || !fok {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "{key} requires a numeric literal", map[string]any{"key": key}).Spanning(m.Range()))
			return errs
		}
		if key == "min" {
			def.Min = &f
		} else {
			def.Max = &f
		}
	case "minLength", "maxLength":
		v, ok := tokenLiteral(m.Value)
		f, fok := toFloat(v)
		if !ok || !fok {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "{key} requires an integer literal", map[string]any{"key": key}).Spanning(m.Range()))
			return errs
		}
		n := int(f)
		if key == "minLength" {
			def.MinLength = &n
		} else {
			def.MaxLength = &n
		}
	case "default":
		v, ok := tokenLiteral(m.Value)
		if !ok {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "default requires a literal value").Spanning(m.Range()))
			return errs
		}
		def.HasDefault = true
		def.Default = v
	case "choices":
		arr, ok := m.Value.(*ast.ArrayNode)
		if !ok {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "choices requires an array literal").Spanning(m.Range()))
			return errs
		}
		for _, item := range arr.Items {
			v, ok := tokenLiteral(item)
			if !ok {
				errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "choices entries must be literals").Spanning(item.Range()))
				continue
			}
			def.Choices = append(def.Choices, v)
		}
	case "pattern":
		v, ok := tokenLiteral(m.Value)
		s, sok := v.(string)
		if !ok || !sok {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "pattern requires a string literal").Spanning(m.Range()))
			return errs
		}
		re, reErr := regexp.Compile(s)
		if reErr != nil {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidPattern, "invalid pattern {pattern}", map[string]any{"pattern": s}).Spanning(m.Range()))
			return errs
		}
		def.Pattern = re
	case "null":
		v, ok := tokenLiteral(m.Value)
		b, bok := v.(bool)
		if !ok || !bok {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "null requires a boolean literal").Spanning(m.Range()))
			return errs
		}
		def.Null = b
	case "optional":
		v, ok := tokenLiteral(m.Value)
		b, bok := v.(bool)
		if !ok || !bok {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "optional requires a boolean literal").Spanning(m.Range()))
			return errs
		}
		def.Optional = b
	default:
		errs.Add(ioerrors.New(ioerrors.CodeInvalidMemberDef, "unknown schema option {key}", map[string]any{"key": key}).Spanning(m.Range()))
	}
	return errs
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
