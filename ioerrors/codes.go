package ioerrors

// Error codes from §7's taxonomy, grouped the way kaptinlin-jsonschema
// groups its sentinel errors by concern in errors.go.

// Lexical.
const (
	CodeStringNotClosed       = "string-not-closed"
	CodeInvalidEscapeSequence = "invalid-escape-sequence"
	CodeUnsupportedAnnotation = "unsupported-annotation"
	CodeInvalidDatetime       = "invalid-datetime"
)

// Syntactic.
const (
	CodeUnexpectedToken           = "unexpected-token"
	CodeExpectingBracket           = "expecting-bracket"
	CodeUnexpectedPositionalMember = "unexpected-positional-member"
	CodeInvalidKey                 = "invalid-key"
	CodeSchemaMissing              = "schema-missing"
	CodeInvalidDefinition          = "invalid-definition"
)

// Schema.
const (
	CodeInvalidSchema     = "invalid-schema"
	CodeSchemaNotFound    = "schema-not-found"
	CodeSchemaNotDefined  = "schema-not-defined"
	CodeInvalidSchemaName = "invalid-schema-name"
	CodeEmptyMemberDef    = "empty-memberdef"
	CodeInvalidMemberDef  = "invalid-memberdef"
	CodeInvalidType       = "invalid-type"
)

// Validation.
const (
	CodeValueRequired              = "value-required"
	CodeInvalidObject              = "invalid-object"
	CodeUnknownMember              = "unknown-member"
	CodeDuplicateMember            = "duplicate-member"
	CodeAdditionalValuesNotAllowed = "additional-values-not-allowed"
	CodeInvalidArray               = "invalid-array"
	CodeNotAnArray                 = "not-an-array"
	CodeNotAString                 = "not-a-string"
	CodeInvalidEmail               = "invalid-email"
	CodeInvalidURL                 = "invalid-url"
	CodeInvalidLength               = "invalid-length"
	CodeInvalidMinLength           = "invalid-min-length"
	CodeInvalidMaxLength           = "invalid-max-length"
	CodeInvalidPattern             = "invalid-pattern"
	CodeNotANumber                 = "not-a-number"
	CodeNotAnInteger               = "not-an-integer"
	CodeOutOfRange                 = "out-of-range"
	CodeInvalidRange               = "invalid-range"
	CodeNotABool                   = "not-a-bool"
	CodeInvalidChoice              = "invalid-choice"
	CodeVariableNotDefined         = "variable-not-defined"
	CodeNullNotAllowed             = "null-not-allowed"
	CodeUnsupportedNumberType      = "unsupported-number-type"
	CodePositionalAfterKeyword     = "positional-after-keyword"
)
