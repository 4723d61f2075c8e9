// Package internetobject implements the Internet Object (IO) textual
// data format: a compact, schema-driven alternative to JSON tuned for
// large homogeneous row collections. It ties together tokenizing (C3),
// parsing (C4), schema compilation (C5/C6), type processing (C7/C8),
// schema inference (C10), and serialization (C11) behind one entry
// point, Parse.
package internetobject
