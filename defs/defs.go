// Package defs implements the IO definitions/header store (C9, §4.9):
// an ordered, multi-namespace table of `@variable`, `$schema`, and plain
// entries threaded through parsing and processing. Grounded on
// kaptinlin-jsonschema/compiler.go's ordered schema cache, adapted from
// a single schema-by-name map to the three-way variable/schema/plain
// classification §4.9 requires.
package defs

import (
	"strings"

	"github.com/maniartech/internetobject-go/ioerrors"
)

// entry is one stored definition, classified by its key's sigil.
type entry struct {
	key        string
	isVariable bool // key starts with '@'
	isSchema   bool // key starts with '$'
	value      any
}

// Definitions is an ordered, append-and-override store. Later entries
// may reference earlier ones (resolved eagerly by the caller before
// Set); reverse references are the caller's responsibility to reject.
type Definitions struct {
	order []string
	byKey map[string]*entry

	// defaultSchema mirrors the special "$schema" key, kept alongside
	// for O(1) lookup from the processor's hot path.
	defaultSchema    any
	hasDefaultSchema bool

	// refDepth/maxRefDepth back the per-row schema-reference depth
	// counter (§9 "Cyclic graphs"): a `$name` object member resolves its
	// schema against this store on every visit rather than caching it,
	// so a self-referential schema must be bounded explicitly.
	refDepth    int
	maxRefDepth int
}

// DefaultMaxSchemaRefDepth bounds nested `$name` schema-reference
// resolution when a Definitions store has no explicit limit set.
const DefaultMaxSchemaRefDepth = 32

// New creates an empty Definitions store.
func New() *Definitions {
	return &Definitions{byKey: make(map[string]*entry)}
}

// SetMaxSchemaRefDepth configures the per-row schema-reference depth
// limit. A value <= 0 falls back to DefaultMaxSchemaRefDepth.
func (d *Definitions) SetMaxSchemaRefDepth(n int) {
	d.maxRefDepth = n
}

// ResetSchemaRefDepth zeroes the depth counter, called once per row so
// the limit bounds a single row's resolution chain rather than
// accumulating across an entire collection.
func (d *Definitions) ResetSchemaRefDepth() {
	d.refDepth = 0
}

// EnterSchemaRef increments the depth counter before resolving a
// `$name` reference, failing invalid-schema once the configured (or
// default) limit is exceeded (§9). Pair with ExitSchemaRef, typically
// via defer, so the counter unwinds on every return path.
func (d *Definitions) EnterSchemaRef(name string) *ioerrors.Error {
	max := d.maxRefDepth
	if max <= 0 {
		max = DefaultMaxSchemaRefDepth
	}
	if d.refDepth >= max {
		return ioerrors.New(ioerrors.CodeInvalidSchema,
			"schema reference {name} exceeds max depth {max}; possible circular reference",
			map[string]any{"name": name, "max": max})
	}
	d.refDepth++
	return nil
}

// ExitSchemaRef decrements the depth counter after a `$name` reference
// has finished resolving.
func (d *Definitions) ExitSchemaRef() {
	if d.refDepth > 0 {
		d.refDepth--
	}
}

func classify(key string) (isVariable, isSchema bool) {
	if strings.HasPrefix(key, "@") {
		return true, false
	}
	if strings.HasPrefix(key, "$") {
		return false, true
	}
	return false, false
}

// Set stores value under key, overwriting any prior entry but
// preserving its original position in iteration order. Setting
// "$schema" also updates DefaultSchema.
func (d *Definitions) Set(key string, value any) {
	isVariable, isSchema := classify(key)
	if e, ok := d.byKey[key]; ok {
		e.value = value
		e.isVariable, e.isSchema = isVariable, isSchema
	} else {
		d.byKey[key] = &entry{key: key, isVariable: isVariable, isSchema: isSchema, value: value}
		d.order = append(d.order, key)
	}
	if key == "$schema" {
		d.defaultSchema = value
		d.hasDefaultSchema = true
	}
}

// Get returns the raw stored value for key, unmodified by any `@`/`$`
// validation.
func (d *Definitions) Get(key string) (any, bool) {
	e, ok := d.byKey[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// GetV resolves a `@name` or `$name` reference, failing with
// variable-not-defined when the key is unknown or not itself prefixed
// (§4.9).
func (d *Definitions) GetV(key string) (any, *ioerrors.Error) {
	if key == "" || (key[0] != '@' && key[0] != '$') {
		return nil, ioerrors.New(ioerrors.CodeVariableNotDefined, "{key} is not a variable or schema reference", map[string]any{"key": key})
	}
	e, ok := d.byKey[key]
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeVariableNotDefined, "{key} is not defined", map[string]any{"key": key})
	}
	return e.value, nil
}

// Delete removes key, clearing DefaultSchema when key is "$schema".
func (d *Definitions) Delete(key string) {
	if _, ok := d.byKey[key]; !ok {
		return
	}
	delete(d.byKey, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	if key == "$schema" {
		d.defaultSchema = nil
		d.hasDefaultSchema = false
	}
}

// DefaultSchema returns the value registered under "$schema", if any.
func (d *Definitions) DefaultSchema() (any, bool) {
	return d.defaultSchema, d.hasDefaultSchema
}

// SetDefaultSchema overrides the default schema independently of the
// "$schema" entry, matching "an explicit header.schema = X overrides
// defaultSchema for subsequent lookups" (§4.9).
func (d *Definitions) SetDefaultSchema(schema any) {
	d.defaultSchema = schema
	d.hasDefaultSchema = true
}

// Merge copies every entry from other into d in its original order. When
// override is false, keys already present in d are left untouched.
func (d *Definitions) Merge(other *Definitions, override bool) {
	if other == nil {
		return
	}
	for _, key := range other.order {
		if !override {
			if _, exists := d.byKey[key]; exists {
				continue
			}
		}
		v, _ := other.Get(key)
		d.Set(key, v)
	}
}

// KeyIterator returns every key in insertion order.
func (d *Definitions) KeyIterator() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Entries returns every (key, value) pair in insertion order.
func (d *Definitions) Entries() []struct {
	Key   string
	Value any
} {
	out := make([]struct {
		Key   string
		Value any
	}, 0, len(d.order))
	for _, key := range d.order {
		e := d.byKey[key]
		out = append(out, struct {
			Key   string
			Value any
		}{e.key, e.value})
	}
	return out
}

// ToJSON renders the plain (non-variable, non-schema) entries only.
func (d *Definitions) ToJSON() map[string]any {
	out := make(map[string]any)
	for _, key := range d.order {
		e := d.byKey[key]
		if e.isVariable || e.isSchema {
			continue
		}
		out[key] = e.value
	}
	return out
}

// Len returns the number of stored entries.
func (d *Definitions) Len() int { return len(d.order) }
