package types

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// arrayType implements the "array" type: element-wise parse under `of`,
// then minLength/maxLength on the resulting slice (§4.7 rule 5 order).
// It holds a back-reference to the owning registry so nested element
// types (including further arrays/objects) resolve through the same
// closed set.
type arrayType struct {
	registry *Registry
}

func (arrayType) Name() string { return "array" }

func (a *arrayType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	node, raw, done, result, err := PreludeNode(value, def, d)
	if done {
		return result, err
	}
	if node == nil {
		return raw, nil
	}

	arr, ok := node.(*ast.ArrayNode)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeNotAnArray, "{path} must be an array", map[string]any{"path": def.Path}).WithPath(def.Path)
	}

	elemDef := def.Of
	if elemDef == nil {
		elemDef = &schema.MemberDef{Type: "any", Optional: true, Null: true}
	}

	out := make([]any, 0, len(arr.Items))
	for i, item := range arr.Items {
		v, ierr := a.registry.Parse(item, elemDef, d)
		if ierr != nil {
			return nil, ierr.WithPath(indexPath(def.Path, i))
		}
		if v == Undefined {
			continue
		}
		out = append(out, v)
	}

	if def.MinLength != nil && len(out) < *def.MinLength {
		return nil, ioerrors.New(ioerrors.CodeInvalidMinLength, "{path} must have at least {min} elements", map[string]any{"path": def.Path, "min": *def.MinLength}).WithPath(def.Path)
	}
	if def.MaxLength != nil && len(out) > *def.MaxLength {
		return nil, ioerrors.New(ioerrors.CodeInvalidMaxLength, "{path} must have at most {max} elements", map[string]any{"path": def.Path, "max": *def.MaxLength}).WithPath(def.Path)
	}
	return out, nil
}

func indexPath(base string, i int) string {
	if base == "" {
		return itoa(i)
	}
	return base + "." + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var b []byte
	for i > 0 {
		b = append([]byte{byte('0' + i%10)}, b...)
		i /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}

// objectType implements the "object" type: recursive processing against
// the nested schema carried by def.Schema, or against the schema named
// by def.SchemaRef. When the def carries neither, the object passes
// through as a plain host map (§4.7). The `{}` open-object form compiles
// to an open, empty def.Schema and so is bound, not passed through.
type objectType struct {
	registry *Registry
}

func (objectType) Name() string { return "object" }

func (o *objectType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	node, raw, done, result, err := PreludeNode(value, def, d)
	if done {
		return result, err
	}
	if node == nil {
		return raw, nil
	}

	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeInvalidObject, "{path} must be an object", map[string]any{"path": def.Path}).WithPath(def.Path)
	}

	sch := def.Schema
	if sch == nil && def.SchemaRef != "" {
		resolved, rerr := schema.Resolve(def.SchemaRef, d)
		if rerr != nil {
			return nil, rerr.WithPath(def.Path)
		}
		if rerr := d.EnterSchemaRef(def.SchemaRef); rerr != nil {
			return nil, rerr.WithPath(def.Path)
		}
		defer d.ExitSchemaRef()
		sch = resolved
	}

	if sch == nil {
		v, verr := obj.ToValue(d)
		if verr != nil {
			return nil, ioerrors.New(ioerrors.CodeInvalidObject, verr.Error()).WithPath(def.Path)
		}
		return v, nil
	}

	return o.bind(obj, def, sch, d)
}

// bind binds a braced object's members to sch using the same
// positional/keyed/missing three-pass algorithm the processor runs for
// top-level rows (§4.8), so a nested object supplied positionally
// (`home: {Main St, NYC}`) binds exactly like a top-level row would.
func (o *objectType) bind(obj *ast.ObjectNode, def *schema.MemberDef, sch *schema.Schema, d *defs.Definitions) (any, *ioerrors.Error) {
	bound, extras, err := schema.BindMembers(obj.Range(), obj.Members, sch)
	if err != nil {
		return nil, err.WithPath(def.Path)
	}

	out := make(map[string]any, sch.MemberCount()+len(extras))
	for _, name := range sch.Names() {
		memberDef := sch.Get(name)
		v, ierr := o.registry.Parse(bound[name], memberDef, d)
		if ierr != nil {
			return nil, ierr.WithPath(joinPath(def.Path, name))
		}
		if v == Undefined {
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
		v, ierr := o.registry.Parse(m.Value, extraDef, d)
		if ierr != nil {
			return nil, ierr.WithPath(joinPath(def.Path, key))
		}
		if v == Undefined {
			continue
		}
		out[key] = v
	}
	return out, nil
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}
