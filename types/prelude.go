package types

import (
	"strings"
	"time"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
	"github.com/maniartech/internetobject-go/token"
)

// Undefined is returned by Prelude (and so by every type's Parse) when an
// optional member was absent from the source: the caller must omit the
// key entirely rather than store it as null (§4.7 rule 2).
var Undefined = &struct{ undefined byte }{}

// Prelude runs the type-independent first steps of §4.7's parse pipeline
// shared by every type: missing/default/optional/required, explicit
// null, and `@`/`$` variable resolution. When done is true the caller
// returns (result, err) immediately; otherwise raw holds the decoded
// host value ready for type-specific coercion and constraint checks.
func Prelude(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (raw any, done bool, result any, err *ioerrors.Error) {
	if value == nil {
		if def.HasDefault {
			v, derr := resolveDefault(def, d)
			if derr != nil {
				return nil, true, nil, derr
			}
			return v, false, nil, nil
		}
		if def.Optional {
			return nil, true, Undefined, nil
		}
		return nil, true, nil, ioerrors.New(ioerrors.CodeValueRequired, "{path} is required", map[string]any{"path": def.Path})
	}

	if tn, ok := value.(*ast.TokenNode); ok && tn.Tok.Type == token.NULL {
		if def.Null {
			return nil, true, nil, nil
		}
		return nil, true, nil, ioerrors.New(ioerrors.CodeNullNotAllowed, "{path} does not allow null", map[string]any{"path": def.Path}).Spanning(value.Range())
	}

	resolved, verr := value.ToValue(d)
	if verr != nil {
		ioErr, ok := verr.(*ioerrors.Error)
		if !ok {
			ioErr = ioerrors.New(ioerrors.CodeInvalidObject, verr.Error())
		}
		return nil, true, nil, ioErr.WithPath(def.Path)
	}
	return resolved, false, nil, nil
}

// PreludeNode runs the same missing/default/null handling as Prelude but
// stops short of calling ToValue, so container types (array, object) can
// recurse into the original child nodes instead of losing them to an
// eager host-value resolution. node is non-nil exactly when the caller
// must inspect it directly; otherwise raw already holds the final value
// (a default with no corresponding source node).
func PreludeNode(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (node ast.Node, raw any, done bool, result any, err *ioerrors.Error) {
	if value == nil {
		if def.HasDefault {
			v, derr := resolveDefault(def, d)
			if derr != nil {
				return nil, nil, true, nil, derr
			}
			return nil, v, false, nil, nil
		}
		if def.Optional {
			return nil, nil, true, Undefined, nil
		}
		return nil, nil, true, nil, ioerrors.New(ioerrors.CodeValueRequired, "{path} is required", map[string]any{"path": def.Path})
	}
	if tn, ok := value.(*ast.TokenNode); ok && tn.Tok.Type == token.NULL {
		if def.Null {
			return nil, nil, true, nil, nil
		}
		return nil, nil, true, nil, ioerrors.New(ioerrors.CodeNullNotAllowed, "{path} does not allow null", map[string]any{"path": def.Path}).Spanning(value.Range())
	}
	return value, nil, false, nil, nil
}

// resolveDefault expands a compiled default value (§4.7 rule 1): a `now`
// default on a temporal type synthesizes the current time, an `@name`
// default defers to the variable's current value, and anything else is
// the literal as compiled.
func resolveDefault(def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	s, ok := def.Default.(string)
	if !ok {
		return def.Default, nil
	}
	if strings.HasPrefix(s, "@") {
		v, err := d.GetV(s)
		if err != nil {
			return nil, err.WithPath(def.Path)
		}
		return v, nil
	}
	if s == "now" && isTemporalType(def.Type) {
		return time.Now(), nil
	}
	return s, nil
}

func isTemporalType(t string) bool {
	switch t {
	case "date", "time", "datetime":
		return true
	default:
		return false
	}
}

// checkChoices validates raw against def.Choices when any are declared.
func checkChoices(raw any, def *schema.MemberDef) *ioerrors.Error {
	if len(def.Choices) == 0 {
		return nil
	}
	for _, c := range def.Choices {
		if c == raw {
			return nil
		}
	}
	return ioerrors.New(ioerrors.CodeInvalidChoice, "{path} must be one of the declared choices", map[string]any{"path": def.Path})
}
