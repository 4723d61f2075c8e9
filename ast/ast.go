// Package ast defines the IO Abstract Syntax Tree node model (§4.4, C4):
// a tagged-variant tree produced by the parser and consumed by the
// schema compiler and processor. Grounded on ha1tch-tsqlparser/ast/ast.go's
// marker-interface shape (Node.String()/TokenLiteral(), one struct per
// node kind, no inheritance).
package ast

import (
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/position"
	"github.com/maniartech/internetobject-go/token"
)

// Node is implemented by every AST node kind: TokenNode, ObjectNode,
// ArrayNode, MemberNode, CollectionNode, SectionNode, DocumentNode, and
// ErrorNode (§3 "AST nodes").
type Node interface {
	// Range returns the node's source span.
	Range() position.Range
	// ToValue yields a host-level value, resolving @/$ references
	// against defs and recursing into containers. Used wherever a
	// schema slot accepts `any` (§4.7 rule 5).
	ToValue(d *defs.Definitions) (any, error)
	node()
}

// TokenNode wraps a single scanned token as a leaf AST value.
type TokenNode struct {
	Tok token.Token
}

func (n *TokenNode) node() {}

func (n *TokenNode) Range() position.Range { return n.Tok.Range }

func (n *TokenNode) ToValue(d *defs.Definitions) (any, error) {
	if n.Tok.IsKeyedMarker() {
		name := n.Tok.Value.(string)
		v, err := d.GetV(name)
		if err != nil {
			return nil, err.At(n.Tok.Pos())
		}
		return v, nil
	}
	return n.Tok.Value, nil
}

// MemberNode is one `key: value` or bare `value` slot inside an Object.
type MemberNode struct {
	Key   *TokenNode // nil for a positional member
	Value Node
}

func (n *MemberNode) node() {}

func (n *MemberNode) Range() position.Range {
	if n.Key != nil {
		return position.NewRange(n.Key.Range().Start, n.Value.Range().End)
	}
	return n.Value.Range()
}

func (n *MemberNode) ToValue(d *defs.Definitions) (any, error) {
	return n.Value.ToValue(d)
}

// KeyName returns the member's raw key name, or "" for a positional member.
func (n *MemberNode) KeyName() string {
	if n.Key == nil {
		return ""
	}
	if s, ok := n.Key.Tok.Value.(string); ok {
		return s
	}
	return n.Key.Tok.Token
}

// ObjectNode is an ordered member list from `{…}` or a bare data row.
type ObjectNode struct {
	Members []*MemberNode
	Span    position.Range
	Braced  bool
}

func (n *ObjectNode) node() {}

func (n *ObjectNode) Range() position.Range { return n.Span }

// ToValue builds a plain map for keyed members; positional members are
// keyed by their ordinal index, matching the `any`-slot contract (§4.7).
func (n *ObjectNode) ToValue(d *defs.Definitions) (any, error) {
	out := make(map[string]any, len(n.Members))
	for i, m := range n.Members {
		v, err := m.ToValue(d)
		if err != nil {
			return nil, err
		}
		key := m.KeyName()
		if key == "" {
			key = positionalKey(i)
		}
		out[key] = v
	}
	return out, nil
}

func positionalKey(i int) string {
	const digits = "0123456789"
	if i < 10 {
		return string(digits[i])
	}
	// Rare: objects with >= 10 positional members in an `any` slot.
	var b []byte
	n := i
	for n > 0 {
		b = append([]byte{digits[n%10]}, b...)
		n /= 10
	}
	return string(b)
}

// ArrayNode is an ordered `[…]` value list.
type ArrayNode struct {
	Items []Node
	Span  position.Range
}

func (n *ArrayNode) node() {}

func (n *ArrayNode) Range() position.Range { return n.Span }

func (n *ArrayNode) ToValue(d *defs.Definitions) (any, error) {
	out := make([]any, len(n.Items))
	for i, item := range n.Items {
		v, err := item.ToValue(d)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// CollectionNode is an ordered list of `~`-marked rows sharing one schema.
type CollectionNode struct {
	Rows []Node // each element is an ObjectNode or ErrorNode
	Span position.Range
}

func (n *CollectionNode) node() {}

func (n *CollectionNode) Range() position.Range { return n.Span }

func (n *CollectionNode) ToValue(d *defs.Definitions) (any, error) {
	out := make([]any, len(n.Rows))
	for i, row := range n.Rows {
		v, err := row.ToValue(d)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SectionKind distinguishes a document's header from its data sections.
type SectionKind int

const (
	SectionData SectionKind = iota
	SectionHeader
)

// SectionNode is one `--- name: $schema` block (or the implicit first
// section) plus its body, which is either a single row or a collection.
type SectionNode struct {
	Name       string
	SchemaName string // without the leading '$'
	Kind       SectionKind
	Content    Node // *ObjectNode, *CollectionNode, or *ErrorNode
	Span       position.Range
	Errors     *ioerrors.List
}

func (n *SectionNode) node() {}

func (n *SectionNode) Range() position.Range { return n.Span }

func (n *SectionNode) ToValue(d *defs.Definitions) (any, error) {
	if n.Content == nil {
		return nil, nil
	}
	return n.Content.ToValue(d)
}

// DocumentNode is the root of a parsed source: an optional header plus
// an ordered list of sections.
type DocumentNode struct {
	Header   *ObjectNode
	Sections []*SectionNode
	Span     position.Range
	Errors   *ioerrors.List
}

func (n *DocumentNode) node() {}

func (n *DocumentNode) Range() position.Range { return n.Span }

func (n *DocumentNode) ToValue(d *defs.Definitions) (any, error) {
	out := make([]any, len(n.Sections))
	for i, s := range n.Sections {
		v, err := s.ToValue(d)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// ErrorNode replaces a member, row, or section that failed to parse; it
// never aborts the containing parse (§4.4).
type ErrorNode struct {
	Err  *ioerrors.Error
	Span position.Range
}

func (n *ErrorNode) node() {}

func (n *ErrorNode) Range() position.Range { return n.Span }

func (n *ErrorNode) ToValue(d *defs.Definitions) (any, error) {
	return n.Err, nil
}
