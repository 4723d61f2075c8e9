package types

import (
	"math/big"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// bigintType implements the "bigint" type: an `n`-suffixed literal, or a
// hex/octal/binary literal, decoded as *big.Int (§4.3).
type bigintType struct{}

func (bigintType) Name() string { return "bigint" }

func (bigintType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}

	var bi *big.Int
	switch v := raw.(type) {
	case *big.Int:
		bi = v
	case float64:
		bi, _ = big.NewFloat(v).Int(nil)
	default:
		return nil, ioerrors.New(ioerrors.CodeUnsupportedNumberType, "{path} must be a bigint literal", map[string]any{"path": def.Path}).WithPath(def.Path)
	}

	f := new(big.Float).SetInt(bi)
	asFloat, _ := f.Float64()
	if def.Min != nil && asFloat < *def.Min {
		return nil, ioerrors.New(ioerrors.CodeOutOfRange, "{path} must be >= {min}", map[string]any{"path": def.Path, "min": *def.Min}).WithPath(def.Path)
	}
	if def.Max != nil && asFloat > *def.Max {
		return nil, ioerrors.New(ioerrors.CodeOutOfRange, "{path} must be <= {max}", map[string]any{"path": def.Path, "max": *def.Max}).WithPath(def.Path)
	}
	return bi, nil
}
