package schema

import (
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
)

// Resolve looks up a `$name` schema reference in d (§4.8 "resolving a
// $name schema token via SchemaResolver.resolve"). Shared by the
// top-level processor (section schema-by-name) and objectType's member
// SchemaRef resolution, so both use the exact same lookup and the same
// failure codes.
func Resolve(name string, d *defs.Definitions) (*Schema, *ioerrors.Error) {
	v, ok := d.Get("$" + name)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeSchemaNotFound, "schema {name} is not defined", map[string]any{"name": name})
	}
	sch, ok := v.(*Schema)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeSchemaNotDefined, "{name} does not reference a compiled schema", map[string]any{"name": name})
	}
	return sch, nil
}
