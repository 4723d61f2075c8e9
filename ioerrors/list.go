package ioerrors

// List is an ordered, appendable collection of structured errors,
// mirroring kaptinlin-jsonschema's EvaluationResult error aggregation
// (result.go). Documents, sections, and collections each own one.
type List struct {
	items []*Error
}

// Add appends err to the list. A nil err is ignored, so call sites can
// add the result of a fallible helper without an extra nil check.
func (l *List) Add(err *Error) *List {
	if err == nil {
		return l
	}
	l.items = append(l.items, err)
	return l
}

// Extend appends every error from other onto l.
func (l *List) Extend(other *List) *List {
	if other == nil {
		return l
	}
	l.items = append(l.items, other.items...)
	return l
}

// Valid reports whether the list has no errors.
func (l *List) Valid() bool {
	return l == nil || len(l.items) == 0
}

// Len returns the number of errors collected.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns the errors in insertion order. The returned slice must
// not be mutated by callers.
func (l *List) Items() []*Error {
	if l == nil {
		return nil
	}
	return l.items
}
