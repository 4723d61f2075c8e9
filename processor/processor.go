// Package processor implements the IO document processor (C8, §4.8):
// binds a parsed ObjectNode or CollectionNode against a Schema, running
// the positional/keyed/missing three-pass algorithm and delegating
// per-member coercion to the type registry (C7). Grounded on
// kaptinlin-jsonschema's Compiler.Compile -> Schema.Validate pipeline
// shape: a compile-time artifact (Schema) consumed by a separate
// runtime evaluator (Processor) that never re-walks the schema source.
package processor

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
	"github.com/maniartech/internetobject-go/types"
)

// Options configures optional per-run processor behavior (§9 Design
// Notes), in the style of the teacher's Compiler fields.
type Options struct {
	// MaxSchemaRefDepth bounds nested `$name` schema-reference
	// resolution per row, guarding against a circular schema definition
	// ("a schema referencing itself" per §9). Zero uses
	// defs.DefaultMaxSchemaRefDepth.
	MaxSchemaRefDepth int
}

// Processor binds parsed AST nodes against schemas, sharing one type
// registry across every call (safe for concurrent use, §5).
type Processor struct {
	Registry *types.Registry
	Options  Options
}

// New creates a Processor backed by the standard type registry and
// default options.
func New() *Processor {
	return NewWithOptions(Options{})
}

// NewWithOptions creates a Processor backed by the standard type
// registry with explicit Options.
func NewWithOptions(opts Options) *Processor {
	return &Processor{Registry: types.NewRegistry(), Options: opts}
}

// ResolveSchema looks up a `$name` schema reference in d, or the default
// schema when name is empty (§4.8 "processSchema... resolving a $name
// schema token via SchemaResolver.resolve").
func ResolveSchema(name string, d *defs.Definitions) (*schema.Schema, *ioerrors.Error) {
	if name == "" {
		v, ok := d.DefaultSchema()
		if !ok {
			return nil, ioerrors.New(ioerrors.CodeSchemaMissing, "no default schema is defined")
		}
		sch, ok := v.(*schema.Schema)
		if !ok {
			return nil, ioerrors.New(ioerrors.CodeSchemaNotDefined, "the default schema value is not a compiled schema")
		}
		return sch, nil
	}
	return schema.Resolve(name, d)
}

// ProcessSchema dispatches on the section content's shape, resolving a
// `$name` schema reference first (§4.8).
func (p *Processor) ProcessSchema(content ast.Node, schemaName string, d *defs.Definitions) (any, *ioerrors.Error) {
	sch, err := ResolveSchema(schemaName, d)
	if err != nil {
		return nil, err
	}
	switch v := content.(type) {
	case *ast.CollectionNode:
		return p.ProcessCollection(v, sch, d), nil
	case *ast.ObjectNode:
		return p.ProcessObject(v, sch, d)
	case nil:
		return nil, nil
	default:
		return nil, ioerrors.New(ioerrors.CodeInvalidObject, "section content is neither a row nor a collection")
	}
}

// ProcessObject runs the three-pass binding algorithm of §4.8 against
// one row.
func (p *Processor) ProcessObject(obj *ast.ObjectNode, sch *schema.Schema, d *defs.Definitions) (map[string]any, *ioerrors.Error) {
	d.SetMaxSchemaRefDepth(p.Options.MaxSchemaRefDepth)
	d.ResetSchemaRefDepth()

	bound, extras, err := schema.BindMembers(obj.Range(), obj.Members, sch)
	if err != nil {
		return nil, err
	}

	names := sch.Names()
	out := make(map[string]any, len(names)+len(extras))
	for _, name := range names {
		def := sch.Get(name)
		v, err := p.Registry.Parse(bound[name], def, d)
		if err != nil {
			if err.Range.Start.IsZero() {
				err = err.Spanning(obj.Range())
			}
			return nil, err.WithPath(name)
		}
		if v == types.Undefined {
			continue
		}
		out[name] = v
	}

	extraDef := sch.ExtraMemberDef()
	for _, m := range extras {
		key := m.KeyName()
		if key == "" {
			key = m.Range().Start.String()
		}
		v, err := p.Registry.Parse(m.Value, extraDef, d)
		if err != nil {
			return nil, err.WithPath(key)
		}
		if v == types.Undefined {
			continue
		}
		out[key] = v
	}
	return out, nil
}

// CollectionResult holds one collection's bound rows plus any row-level
// errors annotated with their originating index (§4.8 "collectionIndex").
type CollectionResult struct {
	Rows   []any
	Errors *ioerrors.List
}

// ProcessCollection processes every row independently: a parser-
// originated ErrorNode is preserved as-is, and a validation failure from
// ProcessObject is converted into the row's slot plus a collection- and
// document-level error entry (§4.8).
func (p *Processor) ProcessCollection(coll *ast.CollectionNode, sch *schema.Schema, d *defs.Definitions) *CollectionResult {
	res := &CollectionResult{Rows: make([]any, len(coll.Rows)), Errors: &ioerrors.List{}}
	for i, row := range coll.Rows {
		if errNode, ok := row.(*ast.ErrorNode); ok {
			res.Rows[i] = errNode.Err
			res.Errors.Add(annotateIndex(errNode.Err, i))
			continue
		}
		obj, ok := row.(*ast.ObjectNode)
		if !ok {
			err := ioerrors.New(ioerrors.CodeInvalidObject, "collection row {index} is not an object",
				map[string]any{"index": i})
			res.Rows[i] = err
			res.Errors.Add(annotateIndex(err, i))
			continue
		}
		v, err := p.ProcessObject(obj, sch, d)
		if err != nil {
			res.Rows[i] = err
			res.Errors.Add(annotateIndex(err, i))
			continue
		}
		res.Rows[i] = v
	}
	return res
}

func annotateIndex(err *ioerrors.Error, index int) *ioerrors.Error {
	if err.Params == nil {
		err.Params = map[string]any{}
	}
	err.Params["collectionIndex"] = index
	return err
}
