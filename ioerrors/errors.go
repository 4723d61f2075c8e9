// Package ioerrors implements the structured, localizable error envelope
// used throughout the tokenizer, parser, schema compiler, and processor
// (§7). It mirrors kaptinlin-jsonschema's EvaluationError/EvaluationResult
// (result.go): a kebab-case Code, a templated Message with `{param}`
// placeholders, and an optional Localizer for host applications.
package ioerrors

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/go-i18n"
	"github.com/maniartech/internetobject-go/position"
)

// Error is one structured, positioned error as described by §7.
type Error struct {
	Code     string
	Message  string
	Params   map[string]any
	Position position.Position
	Range    position.Range
	Path     string // dotted member path, when applicable (§6 error envelope)
}

// New creates an Error with the given code/message template and optional
// params, matching kaptinlin-jsonschema's NewEvaluationError signature.
func New(code, message string, params ...map[string]any) *Error {
	e := &Error{Code: code, Message: message}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

// At attaches a position to the error and returns it, for fluent construction.
func (e *Error) At(pos position.Position) *Error {
	e.Position = pos
	return e
}

// Spanning attaches a range to the error and returns it.
func (e *Error) Spanning(r position.Range) *Error {
	e.Range = r
	e.Position = r.Start
	return e
}

// WithPath annotates the error with the member path it failed at.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

func (e *Error) Error() string {
	return replace(e.Message, e.Params)
}

// Localize renders the message via a go-i18n localizer keyed by Code,
// falling back to the templated Message when localizer is nil or the
// code is not registered.
func (e *Error) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	if msg := localizer.Get(e.Code, i18n.Vars(e.Params)); msg != "" {
		return msg
	}
	return e.Error()
}

// JSON renders the §6 error envelope shape for embedding inside a
// collection's JSON rendering: {__error, message, code, path?, position?}.
func (e *Error) JSON() map[string]any {
	out := map[string]any{
		"__error": true,
		"message": e.Error(),
		"code":    e.Code,
	}
	if e.Path != "" {
		out["path"] = e.Path
	}
	if !e.Position.IsZero() {
		out["position"] = map[string]any{
			"pos": e.Position.Pos,
			"row": e.Position.Row,
			"col": e.Position.Col,
		}
	}
	return out
}

// MarshalJSON encodes the error as its JSON envelope.
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.JSON())
}

func replace(template string, params map[string]any) string {
	for key, value := range params {
		template = strings.ReplaceAll(template, "{"+key+"}", fmt.Sprint(value))
	}
	return template
}
