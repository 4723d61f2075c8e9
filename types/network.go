package types

import (
	"net/mail"
	"net/url"

	"github.com/google/uuid"

	"github.com/maniartech/internetobject-go/ast"
	"github.com/maniartech/internetobject-go/defs"
	"github.com/maniartech/internetobject-go/ioerrors"
	"github.com/maniartech/internetobject-go/schema"
)

// emailType implements the "email" type: a string validated against
// RFC 5322 via net/mail (§4.7's `invalid-email`).
type emailType struct{}

func (emailType) Name() string { return "email" }

func (emailType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}
	s, ok := raw.(string)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeNotAString, "{path} must be a string", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	if _, perr := mail.ParseAddress(s); perr != nil {
		return nil, ioerrors.New(ioerrors.CodeInvalidEmail, "{path} is not a valid email address", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	return s, nil
}

// urlType implements the "url" type: a string validated as an absolute
// URL via net/url (§4.7's `invalid-url`).
type urlType struct{}

func (urlType) Name() string { return "url" }

func (urlType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}
	s, ok := raw.(string)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeNotAString, "{path} must be a string", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	u, perr := url.Parse(s)
	if perr != nil || u.Scheme == "" || u.Host == "" {
		return nil, ioerrors.New(ioerrors.CodeInvalidURL, "{path} is not a valid URL", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	return s, nil
}

// idType implements the "id" type: a string validated as a UUID via
// google/uuid, returned as its canonical lowercase-hyphenated form.
type idType struct{}

func (idType) Name() string { return "id" }

func (idType) Parse(value ast.Node, def *schema.MemberDef, d *defs.Definitions) (any, *ioerrors.Error) {
	raw, done, result, err := Prelude(value, def, d)
	if done {
		return result, err
	}
	s, ok := raw.(string)
	if !ok {
		return nil, ioerrors.New(ioerrors.CodeNotAString, "{path} must be a string", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	id, perr := uuid.Parse(s)
	if perr != nil {
		return nil, ioerrors.New(ioerrors.CodeInvalidObject, "{path} is not a valid id", map[string]any{"path": def.Path}).WithPath(def.Path)
	}
	return id.String(), nil
}
