package types

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// boolType implements the "bool" type: the `true`/`false` keyword
// literals plus the `T`/`F` shorthand strings; any other value is
// not-a-bool (§4.7, §4.1 keywords).
type boolType struct{}

func (boolType) Name() string { return "bool" }

func (boolType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}
	var b bool
	switch v := raw.(type) {
	case bool:
		b = v
	case string:
		switch v {
		case "T":
			b = true
		case "F":
			b = false
		default:
			return nil, ioerrors.New(ioerrors.CodeNotABool, "{path} must be true, false, T, or F", map[string]any{"path": def.Path}).WithPath(def.Path)
		}
	default:
		return nil, ioerrors.New(ioerrors.CodeNotABool, "{path} must be true, false, T, or F", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	if cerr := checkChoices(b, def); cerr != nil {
		return nil, cerr.WithPath(def.Path)
	}
	return b, nil
}
