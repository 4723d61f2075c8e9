package types

import (
	"math/big"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// numberType implements the "number" type: any float64 literal, plus a
// hex/octal/binary integer literal widened to float64, with min/max/
// choices constraints (§4.7).
type numberType struct{}

func (numberType) Name() string { return "number" }

func (numberType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}

	f, ok := asFloat(raw)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeNotANumber, "{path} must be a number", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	if def.Min != nil && f < *def.Min {
		return nil, ioerrors.New(ioerrors.CodeOutOfRange, "{path} must be >= {min}", map[string]any{"path": def.Path, "min": *def.Min}).WithPath(def.Path)
	}
	if def.Max != nil && f > *def.Max {
		return nil, ioerrors.New(ioerrors.CodeOutOfRange, "{path} must be <= {max}", map[string]any{"path": def.Path, "max": *def.Max}).WithPath(def.Path)
	}
	if cerr := checkChoices(f, def); cerr != nil {
		return nil, cerr.WithPath(def.Path)
	}
	return f, nil
}

// asFloat widens a NUMBER token's decoded value (float64, or *big.Int
// for a hex/octal/binary literal) to float64.
func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case *big.Int:
		f := new(big.Float).SetInt(v)
		out, _ := f.Float64()
		return out, true
	default:
		return 0, false
	}
}
