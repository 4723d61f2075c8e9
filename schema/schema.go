// Package schema implements the IO schema model (C5, §4.5) and schema
// compiler (C6, §4.6): a frozen, ordered member-name-to-definition map
// compiled from a schema-source ObjectNode. Grounded on
// kaptinlin-jsonschema/schema.go's immutable Schema struct with a
// builder that freezes its backing slices/maps at Build().
package schema

import "regexp"

// MemberDef describes one schema slot (§3 "MemberDef").
type MemberDef struct {
	Type     string
	Path     string
	Optional bool
	Null     bool
	HasDefault bool
	Default  any
	Choices  []any
	Min      *float64
	Max      *float64
	MinLength *int
	MaxLength *int
	Pattern   *regexp.Regexp

	Schema    *Schema    // nested compiled schema, for type "object"
	Of        *MemberDef // element definition, for type "array"
	SchemaRef string     // pending "$name" reference, resolved at processing time
}

// Schema is an immutable, ordered member-name-to-definition map (§4.5).
// open is one of: false (closed), true (any extras allowed as `any`),
// or a *MemberDef constraining extras.
type Schema struct {
	name  string
	names []string
	defs  map[string]*MemberDef
	open  any
}

// Name returns the schema's name, or "" for an anonymous/inline schema.
func (s *Schema) Name() string { return s.name }

// Names returns the member names in declaration order. The slice must
// not be mutated by callers.
func (s *Schema) Names() []string { return s.names }

// Defs returns the full name-to-MemberDef map. The map must not be
// mutated by callers.
func (s *Schema) Defs() map[string]*MemberDef { return s.defs }

// Open reports the schema's openness: false, true, or a *MemberDef.
func (s *Schema) Open() any { return s.open }

// IsOpen reports whether any form of openness (true or a constraining
// MemberDef) is set.
func (s *Schema) IsOpen() bool {
	switch v := s.open.(type) {
	case bool:
		return v
	case *MemberDef:
		return v != nil
	default:
		return false
	}
}

// OpenMemberDef returns the MemberDef constraining extras when Open is
// a *MemberDef, or nil otherwise (including when Open is the bool true).
func (s *Schema) OpenMemberDef() *MemberDef {
	md, _ := s.open.(*MemberDef)
	return md
}

// ExtraMemberDef returns the MemberDef an open schema's unconstrained
// extras are parsed under: the explicit constraining def when Open is a
// *MemberDef, or a permissive {any, optional, null} default otherwise.
func (s *Schema) ExtraMemberDef() *MemberDef {
	if md := s.OpenMemberDef(); md != nil {
		return md
	}
	return &MemberDef{Type: "any", Optional: true, Null: true}
}

// MemberCount returns the number of declared (non-open) members.
func (s *Schema) MemberCount() int { return len(s.names) }

// Has reports whether name is a declared member.
func (s *Schema) Has(name string) bool {
	_, ok := s.defs[name]
	return ok
}

// Get returns the MemberDef for name, or nil if undeclared.
func (s *Schema) Get(name string) *MemberDef {
	return s.defs[name]
}
