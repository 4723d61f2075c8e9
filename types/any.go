package types

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// anyType implements the "any" type: passes the resolved host value
// through unchanged, still honoring missing/default/optional/required
// and null handling (§4.7 rule 5, used for open-object extras and
// untyped array/object elements).
type anyType struct{}

func (anyType) Name() string { return "any" }

func (anyType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}
	return raw, nil
}
