// Package parser implements the IO recursive-descent AST parser (C4,
// §4.4). Grounded on ha1tch-tsqlparser/parser/parser.go's cur/peek
// token management and error-list-on-the-parser shape, adapted to emit
// ErrorNodes inline rather than aborting the parse.
package parser

import (
	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/position"
	"github.com/maniartech/internetobject-go/token"
	"github.com/maniartech/internetobject-go/tokenizer"
)

// Parser consumes a tokenizer's output and builds a DocumentNode,
// recovering from syntactic errors by skipping to the next stable
// boundary (§4.4 "After each syntactic error...").
type Parser struct {
	tz *tokenizer.Tokenizer

	cur, peek token.Token
	errors    *ioerrors.List
}

// New creates a Parser over input.
func New(input string, opts tokenizer.Options) (*Parser, error) {
	p := &Parser{tz: tokenizer.New(input, opts), errors: &ioerrors.List{}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseDocument tokenizes and parses input in one call, the common
// entry point for callers that don't need direct tokenizer access.
func ParseDocument(input string, opts tokenizer.Options) (*ast.DocumentNode, error) {
	p, err := New(input, opts)
	if err != nil {
		return nil, err
	}
	return p.ParseDocument(), nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.tz.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *Parser) nextToken() {
	// advance() only errors in strict mode; ParseDocument's exported
	// path runs the tokenizer to completion beforehand via New, so a
	// strict-mode lexical fault already surfaced there. Non-strict mode
	// never returns an error here.
	_ = p.advance()
}

// ParseDocument parses the full token stream into a DocumentNode
// (§4.4 grammar: `Document ::= Header? ('---' Section)*`).
func (p *Parser) ParseDocument() *ast.DocumentNode {
	start := p.cur.Pos()
	header, first := p.parseHeader()

	var sections []*ast.SectionNode
	if first != nil {
		sections = append(sections, first)
	} else if p.cur.Type != token.SECTION_SEP && p.cur.Type != token.EOF {
		sections = append(sections, p.parseSection("", ""))
	}
	for p.cur.Type == token.SECTION_SEP {
		p.nextToken()
		name, schemaName := "", ""
		if p.cur.Type == token.SECTION_NAME {
			name, _ = p.cur.Value.(string)
			p.nextToken()
		}
		if p.cur.Type == token.SECTION_SCHEMA {
			schemaName, _ = p.cur.Value.(string)
			p.nextToken()
		}
		sections = append(sections, p.parseSection(name, schemaName))
	}

	return &ast.DocumentNode{
		Header:   header,
		Sections: sections,
		Span:     position.NewRange(start, p.cur.Pos()),
		Errors:   p.errors,
	}
}

// parseHeader consumes every leading `~ Member, Member...` row. When a
// `---` follows them, the rows are flattened into one header ObjectNode
// (§4.4 `Header ::= ('~' Member (',' Member)*)+`); otherwise they are
// returned as the first section's collection.
func (p *Parser) parseHeader() (*ast.ObjectNode, *ast.SectionNode) {
	if p.cur.Type != token.COLLECTION_START {
		return nil, nil
	}
	coll := p.parseCollection()
	if p.cur.Type != token.SECTION_SEP {
		return nil, &ast.SectionNode{Kind: ast.SectionData, Content: coll, Span: coll.Span, Errors: &ioerrors.List{}}
	}
	header := &ast.ObjectNode{Span: coll.Span}
	for _, row := range coll.Rows {
		header.Members = append(header.Members, row.(*ast.ObjectNode).Members...)
	}
	return header, nil
}

// parseSection parses one section body: a collection, a single row, or
// nothing (an empty section between two `---`).
func (p *Parser) parseSection(name, schemaName string) *ast.SectionNode {
	start := p.cur.Pos()
	var content ast.Node
	switch {
	case p.cur.Type == token.COLLECTION_START:
		content = p.parseCollection()
	case p.cur.Type == token.SECTION_SEP || p.cur.Type == token.EOF:
		content = nil
	default:
		content = p.parseObject(p.cur.Type == token.CURLY_OPEN)
	}
	return &ast.SectionNode{
		Name:       name,
		SchemaName: schemaName,
		Kind:       ast.SectionData,
		Content:    content,
		Span:       position.NewRange(start, p.cur.Pos()),
		Errors:     &ioerrors.List{},
	}
}

// parseCollection parses one or more `~ Row` entries (§4.4
// `Collection ::= ('~' Row)+`).
func (p *Parser) parseCollection() *ast.CollectionNode {
	start := p.cur.Pos()
	var rows []ast.Node
	for p.cur.Type == token.COLLECTION_START {
		p.nextToken()
		rows = append(rows, p.parseObject(p.cur.Type == token.CURLY_OPEN))
	}
	return &ast.CollectionNode{Rows: rows, Span: position.NewRange(start, p.cur.Pos())}
}

// isTerminator reports whether cur ends a member list regardless of the
// list's own closing delimiter.
func (p *Parser) isTerminator() bool {
	switch p.cur.Type {
	case token.EOF, token.SECTION_SEP, token.COLLECTION_START,
		token.CURLY_CLOSE, token.BRACKET_CLOSE:
		return true
	}
	return false
}

// parseObject parses `{ MemberList? }` when braced is true, or a bare
// MemberList otherwise (§4.4 `Object ::= '{' MemberList? '}' |
// MemberList`). A missing closing brace produces an `expecting-bracket`
// error anchored at the opener (§4.4).
func (p *Parser) parseObject(braced bool) *ast.ObjectNode {
	start := p.cur.Pos()
	if braced {
		p.nextToken() // consume '{'
	}
	members := p.parseMemberList()
	if !braced {
		return &ast.ObjectNode{Members: members, Span: position.NewRange(start, p.cur.Pos()), Braced: false}
	}
	if p.cur.Type == token.CURLY_CLOSE {
		end := p.cur.Range.End
		p.nextToken()
		return &ast.ObjectNode{Members: members, Span: position.NewRange(start, end), Braced: true}
	}
	err := ioerrors.New(ioerrors.CodeExpectingBracket, "expected '}' to close object opened at {pos}", map[string]any{"pos": start.String()}).
		Spanning(position.NewRange(start, p.cur.Pos()))
	p.errors.Add(err)
	members = append(members, &ast.MemberNode{Value: &ast.ErrorNode{Err: err, Span: err.Range}})
	return &ast.ObjectNode{Members: members, Span: position.NewRange(start, p.cur.Pos()), Braced: true}
}

// parseArray parses `[ ValueList? ]`.
func (p *Parser) parseArray() *ast.ArrayNode {
	start := p.cur.Pos()
	p.nextToken() // consume '['
	var items []ast.Node
	if p.cur.Type != token.BRACKET_CLOSE && !p.isTerminator() {
		for {
			items = append(items, p.parseValue())
			if p.cur.Type == token.COMMA {
				p.nextToken()
				if p.cur.Type == token.BRACKET_CLOSE {
					break
				}
				continue
			}
			break
		}
	}
	if p.cur.Type == token.BRACKET_CLOSE {
		end := p.cur.Range.End
		p.nextToken()
		return &ast.ArrayNode{Items: items, Span: position.NewRange(start, end)}
	}
	err := ioerrors.New(ioerrors.CodeExpectingBracket, "expected ']' to close array opened at {pos}", map[string]any{"pos": start.String()}).
		Spanning(position.NewRange(start, p.cur.Pos()))
	p.errors.Add(err)
	items = append(items, &ast.ErrorNode{Err: err, Span: err.Range})
	return &ast.ArrayNode{Items: items, Span: position.NewRange(start, p.cur.Pos())}
}

// parseMemberList parses `Member (',' Member)*`, tolerating a trailing
// comma and stopping at any container terminator.
func (p *Parser) parseMemberList() []*ast.MemberNode {
	var members []*ast.MemberNode
	if p.isTerminator() {
		return members
	}
	for {
		members = append(members, p.parseMember())
		if p.cur.Type == token.COMMA {
			p.nextToken()
			if p.isTerminator() {
				break
			}
			continue
		}
		break
	}
	return members
}

// isKeyLike reports whether tok could introduce a `key:` member. Keys
// are always decoded strings (regular, open, or raw forms).
func isKeyLike(tok token.Token) bool {
	return tok.Type == token.STRING
}

// parseMember parses `Key ':' Value | Value` (§4.4).
func (p *Parser) parseMember() *ast.MemberNode {
	if p.peek.Type == token.COLON && isKeyLike(p.cur) {
		keyTok := p.cur
		p.nextToken() // consume key
		p.nextToken() // consume ':'
		return &ast.MemberNode{Key: &ast.TokenNode{Tok: keyTok}, Value: p.parseValue()}
	}
	return &ast.MemberNode{Value: p.parseValue()}
}

// parseValue parses `Token | Object | Array`, emitting an unexpected-
// token ErrorNode when the current position cannot start a value.
func (p *Parser) parseValue() ast.Node {
	switch p.cur.Type {
	case token.CURLY_OPEN:
		return p.parseObject(true)
	case token.BRACKET_OPEN:
		return p.parseArray()
	case token.ERROR:
		err, _ := p.cur.Value.(*ioerrors.Error)
		if err == nil {
			err = ioerrors.New(ioerrors.CodeUnexpectedToken, "lexical error at {pos}", map[string]any{"pos": p.cur.Pos().String()}).Spanning(p.cur.Range)
		}
		p.errors.Add(err)
		node := &ast.ErrorNode{Err: err, Span: p.cur.Range}
		p.nextToken()
		return node
	case token.EOF, token.SECTION_SEP, token.COLLECTION_START, token.COMMA, token.COLON, token.CURLY_CLOSE, token.BRACKET_CLOSE:
		err := ioerrors.New(ioerrors.CodeUnexpectedToken, "unexpected token {token}", map[string]any{"token": p.cur.Text()}).Spanning(p.cur.Range)
		p.errors.Add(err)
		node := &ast.ErrorNode{Err: err, Span: p.cur.Range}
		if p.cur.Type == token.COMMA || p.cur.Type == token.COLON {
			p.nextToken()
		}
		return node
	default:
		tok := p.cur
		p.nextToken()
		return &ast.TokenNode{Tok: tok}
	}
}

// Errors returns the syntactic errors collected during parsing.
func (p *Parser) Errors() *ioerrors.List { return p.errors }
