package internetobject

import (
	"strings"

	goccyjson "github.com/goccy/go-json"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/infer"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/parser"
	"github.com/maniartech/internetobject-go/processor"
	"github.com/maniartech/internetobject-go/schema"
	"github.com/maniartech/internetobject-go/tokenizer"
)

// Document is a fully bound IO source: its header definitions plus one
// decoded value per section, in source order. A section bound to a
// schema yields a map[string]any (single row) or []any (collection,
// each element a map[string]any or, on a row-level failure, an
// *ioerrors.Error). A section with no resolvable schema is decoded as
// plain host values, with a best-effort inferred schema recorded in
// Inferred (C10).
type Document struct {
	Definitions *defs.Definitions
	Sections    []any
	Inferred    map[string]*schema.Schema
	Errors      *ioerrors.List
}

// Parse tokenizes, parses, and processes src end to end. Header `@name`
// entries and `$name` schema definitions are bound into a Definitions
// store before any section is processed, matching §4.9's "header
// precedes data" ordering. A section without an explicit or default
// schema falls back to inference (C10) rather than failing outright.
func Parse(src string, opts tokenizer.Options) (*Document, *ioerrors.Error) {
	docNode, perr := parser.ParseDocument(src, opts)
	if perr != nil {
		return nil, ioerrors.New(ioerrors.CodeInvalidSchema, perr.Error())
	}

	p := processor.New()
	d := defs.New()
	errs := &ioerrors.List{}

	if docNode.Header != nil {
		bindHeader(docNode.Header, d, p, errs)
	}

	doc := &Document{Definitions: d, Errors: errs}

	for _, sec := range docNode.Sections {
		hasSchema := sec.SchemaName != ""
		if !hasSchema {
			if _, ok := d.DefaultSchema(); ok {
				hasSchema = true
			}
		}

		if hasSchema {
			sch, err := processor.ResolveSchema(sec.SchemaName, d)
			if err != nil {
				errs.Add(err)
				doc.Sections = append(doc.Sections, nil)
				continue
			}
			switch content := sec.Content.(type) {
			case *ast.CollectionNode:
				res := p.ProcessCollection(content, sch, d)
				errs.Extend(res.Errors)
				doc.Sections = append(doc.Sections, res.Rows)
			case *ast.ObjectNode:
				row, perr := p.ProcessObject(content, sch, d)
				if perr != nil {
					errs.Add(perr)
					doc.Sections = append(doc.Sections, nil)
					continue
				}
				doc.Sections = append(doc.Sections, row)
			default:
				doc.Sections = append(doc.Sections, nil)
			}
			continue
		}

		v, err := decodeAndInfer(sec.Content, d, doc)
		if err != nil {
			errs.Add(ioerrors.New(ioerrors.CodeInvalidObject, err.Error()))
			doc.Sections = append(doc.Sections, nil)
			continue
		}
		doc.Sections = append(doc.Sections, v)
	}

	return doc, nil
}

// bindHeader compiles `$name` schema definitions and resolves `@name`
// variables in source order, so a later entry may reference an earlier
// one (§4.9).
func bindHeader(header *ast.ObjectNode, d *defs.Definitions, p *processor.Processor, errs *ioerrors.List) {
	for _, m := range header.Members {
		key := m.KeyName()
		if key == "" {
			continue
		}

		if strings.HasPrefix(key, "$") {
			body, ok := m.Value.(*ast.ObjectNode)
			if !ok {
				errs.Add(ioerrors.New(ioerrors.CodeInvalidSchema, "{key} must be a schema object", map[string]any{"key": key}).Spanning(m.Range()))
				continue
			}
			sch, sub := schema.Compile(body, strings.TrimPrefix(key, "$"), p.Registry.IsRegistered)
			errs.Extend(sub)
			if sch != nil {
				d.Set(key, sch)
			}
			continue
		}

		v, err := m.Value.ToValue(d)
		if err != nil {
			errs.Add(toIOError(err).Spanning(m.Range()))
			continue
		}
		d.Set(key, v)
	}
}

func toIOError(err error) *ioerrors.Error {
	if ioErr, ok := err.(*ioerrors.Error); ok {
		return ioErr
	}
	return ioerrors.New(ioerrors.CodeInvalidObject, err.Error())
}

// decodeAndInfer decodes a schema-less section to plain host values and
// records a best-effort inferred schema for each row shape encountered,
// without re-validating against it (C10 documents a shape, it does not
// gate one).
func decodeAndInfer(content ast.Node, d *defs.Definitions, doc *Document) (any, error) {
	if content == nil {
		return nil, nil
	}
	v, err := content.ToValue(d)
	if err != nil {
		return nil, err
	}

	switch row := v.(type) {
	case map[string]any:
		recordInference(doc, row)
	case []any:
		for _, item := range row {
			if m, ok := item.(map[string]any); ok {
				recordInference(doc, m)
			}
		}
	}
	return v, nil
}

func recordInference(doc *Document, row map[string]any) {
	res := infer.Infer(row)
	if res.RootSchema == nil {
		return
	}
	if doc.Inferred == nil {
		doc.Inferred = make(map[string]*schema.Schema)
	}
	doc.Inferred["$schema"] = res.RootSchema
	for _, key := range res.Definitions.KeyIterator() {
		v, _ := res.Definitions.Get(key)
		if sch, ok := v.(*schema.Schema); ok {
			doc.Inferred[key] = sch
		}
	}
}

// jsonView is the shape marshaled by Document.ToJSON: plain data only,
// schemas and variables are internal bookkeeping and are left out.
type jsonView struct {
	Sections []any `json:"sections"`
}

// ToJSON renders the document's decoded sections as JSON, using
// goccy/go-json for the same reason the teacher's struct (un)marshal
// path does (utils.go/unmarshal.go): its encoder avoids reflect-heavy
// allocation on the hot path and keeps json.Number round-tripping exact.
func (doc *Document) ToJSON() ([]byte, error) {
	return goccyjson.Marshal(jsonView{Sections: doc.Sections})
}
