package types

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// stringType implements the "string" type: any scanned string form
// (regular, open, or raw) coerced to a Go string, with minLength/
// maxLength/pattern/choices constraints (§4.7).
type stringType struct{}

func (stringType) Name() string { return "string" }

func (stringType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}

	s, ok := raw.(string)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeNotAString, "{path} must be a string", map[string]any{"path": def.Path}).WithPath(def.Path)
	}

	n := len([]rune(s))
	if def.MinLength != nil && n < *def.MinLength {
		return nil, ioerrors.New(ioerrors.CodeInvalidMinLength, "{path} must be at least {min} characters", map[string]any{"path": def.Path, "min": *def.MinLength}).WithPath(def.Path)
	}
	if def.MaxLength != nil && n > *def.MaxLength {
		return nil, ioerrors.New(ioerrors.CodeInvalidMaxLength, "{path} must be at most {max} characters", map[string]any{"path": def.Path, "max": *def.MaxLength}).WithPath(def.Path)
	}
	if def.Pattern != nil && !def.Pattern.MatchString(s) {
		return nil, ioerrors.New(ioerrors.CodeInvalidPattern, "{path} does not match the declared pattern", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	if cerr := checkChoices(s, def); cerr != nil {
		return nil, cerr.WithPath(def.Path)
	}
	return s, nil
}
