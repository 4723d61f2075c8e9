// Package types implements the IO type registry and the fifteen
// built-in type defs (C7, §4.7): string, number, int, bigint, decimal,
// bool, email, url, date, time, datetime, array, object, any, id. Each
// type gets its own file, mirroring kaptinlin-jsonschema's one-file-
// per-keyword layout (enum.go, pattern.go, minlength.go, format.go).
package types

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// TypeDef implements the uniform parse contract of §4.7 for one
// registered type name.
type TypeDef interface {
	Name() string
	Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error)
}

// Registry is a closed, read-only-after-init set of type defs, safe to
// share across concurrent processing invocations (§5 "Shared
// resources... the type registry").
type Registry struct {
	defs map[string]TypeDef
}

// NewRegistry builds the standard registry with all fifteen built-in
// types (§6 "Type names (registry closed set)").
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]TypeDef)}
	for _, td := range []TypeDef{
		&stringType{}, &numberType{}, &intType{}, &bigintType{}, &decimalType{},
		&boolType{}, &emailType{}, &urlType{}, &dateType{}, &timeType{}, &datetimeType{},
		&arrayType{registry: r}, &objectType{registry: r}, &anyType{}, &idType{},
	} {
		r.defs[td.Name()] = td
	}
	return r
}

// Get returns the type def registered under name.
func (r *Registry) Get(name string) (TypeDef, bool) {
	td, ok := r.defs[name]
	return td, ok
}

// IsRegistered satisfies schema.TypeRegistered, letting the schema
// compiler validate type names without importing this package.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.defs[name]
	return ok
}

// Parse dispatches to the type def named by def.Type.
func (r *Registry) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	td, ok := r.defs[def.Type]
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeInvalidType, "{name} is not a registered type", map[string]any{"name": def.Type})
	}
	return td.Parse(value, def, d)
}
