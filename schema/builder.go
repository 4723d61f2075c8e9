package schema

import (
	"fmt"
)

// Builder assembles a Schema incrementally, rejecting duplicate member
// names, and freezes its backing slice/map at Build() (§4.5).
type Builder struct {
	name  string
	names []string
	defs  map[string]*MemberDef
	open  any
	err   error
}

// NewBuilder starts a Builder for a schema named name (may be "").
func NewBuilder(name string) *Builder {
	return &Builder{name: name, defs: make(map[string]*MemberDef), open: false}
}

// Add appends a member definition, defaulting Path to name when absent.
// Duplicate names are recorded as a build error.
func (b *Builder) Add(name string, def *MemberDef) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := b.defs[name]; exists {
		b.err = fmt.Errorf("schema: duplicate member %q", name)
		return b
	}
	if def.Path == "" {
		def.Path = name
	}
	b.names = append(b.names, name)
	b.defs[name] = def
	return b
}

// SetOpen marks the schema open: pass true for unconstrained extras, or
// a *MemberDef to constrain them.
func (b *Builder) SetOpen(open any) *Builder {
	b.open = open
	return b
}

// Build freezes the schema. The returned slice/map are never mutated
// afterward, so sharing a *Schema across goroutines is safe (§5).
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	names := make([]string, len(b.names))
	copy(names, b.names)
	defs := make(map[string]*MemberDef, len(b.defs))
	for k, v := range b.defs {
		defs[k] = v
	}
	return &Schema{name: b.name, names: names, defs: defs, open: b.open}, nil
}
