package types

import (
	"math/big"
	"strconv"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/decimal"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// decimalType implements the "decimal" type: an `m`-suffixed literal
// (*decimal.Decimal), or any number/bigint literal widened into one
// (§4.3, §4.7).
type decimalType struct{}

func (decimalType) Name() string { return "decimal" }

func (decimalType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}

	var dec *decimal.Decimal
	switch v := raw.(type) {
	case *decimal.Decimal:
		dec = v
	case float64:
		parsed, perr := decimal.Parse(strconv.FormatFloat(v, 'f', -1, 64))
		if perr != nil {
			return nil, ioerrors.New(ioerrors.CodeNotANumber, "{path} must be a decimal value", map[string]any{"path": def.Path}).WithPath(def.Path)
		}
		dec = parsed
	case *big.Int:
		parsed, perr := decimal.New(v, 0)
		if perr != nil {
			return nil, ioerrors.New(ioerrors.CodeNotANumber, "{path} must be a decimal value", map[string]any{"path": def.Path}).WithPath(def.Path)
		}
		dec = parsed
	default:
		return nil, ioerrors.New(ioerrors.CodeNotANumber, "{path} must be a decimal value", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	return dec, nil
}
