package types

import (
	"math"
	"math/big"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// intType implements the "int" type: a number literal with no
// fractional part, narrowed to a Go int (§4.7).
type intType struct{}

func (intType) Name() string { return "int" }

func (intType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}

	var n int
	switch v := raw.(type) {
	case float64:
		if math.Trunc(v) != v || math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, ioerrors.New(ioerrors.CodeNotAnInteger, "{path} must be a whole number", map[string]any{"path": def.Path}).WithPath(def.Path)
		}
		n = int(v)
	case *big.Int:
		if !v.IsInt64() {
			return nil, ioerrors.New(ioerrors.CodeOutOfRange, "{path} is out of int range", map[string]any{"path": def.Path}).WithPath(def.Path)
		}
		n = int(v.Int64())
	default:
		return nil, ioerrors.New(ioerrors.CodeNotAnInteger, "{path} must be a whole number", map[string]any{"path": def.Path}).WithPath(def.Path)
	}

	f := float64(n)
	if def.Min != nil && f < *def.Min {
		return nil, ioerrors.New(ioerrors.CodeOutOfRange, "{path} must be >= {min}", map[string]any{"path": def.Path, "min": *def.Min}).WithPath(def.Path)
	}
	if def.Max != nil && f > *def.Max {
		return nil, ioerrors.New(ioerrors.CodeOutOfRange, "{path} must be <= {max}", map[string]any{"path": def.Path, "max": *def.Max}).WithPath(def.Path)
	}
	if cerr := checkChoices(n, def); cerr != nil {
		return nil, cerr.WithPath(def.Path)
	}
	return n, nil
}
