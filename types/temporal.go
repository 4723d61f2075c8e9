package types

import (
	"time"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// dateType, timeType, and datetimeType implement the three temporal
// types (§4.2/§4.7): each accepts a time.Time decoded from a `d'…'`,
// `t'…'`, or `dt'…'` annotated-string token. They share one coercion
// helper since the tokenizer already separates the three forms by
// token subtype, not by this package.
type dateType struct{}
type timeType struct{}
type datetimeType struct{}

func (dateType) Name() string     { return "date" }
func (timeType) Name() string     { return "time" }
func (datetimeType) Name() string { return "datetime" }

func (dateType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	return parseTemporal(value, def, d)
}

func (timeType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	return parseTemporal(value, def, d)
}

func (datetimeType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	return parseTemporal(value, def, d)
}

func parseTemporal(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}
	t, ok := raw.(time.Time)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeInvalidDatetime, "{path} must be a {type} literal", map[string]any{"path": def.Path, "type": def.Type}).WithPath(def.Path)
	}
	return t, nil
}
