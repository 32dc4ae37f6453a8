// Package typespace is a concrete, minimal stand-in for the schema-to-type
// compiler spec.md §1 names as an external collaborator ("TypeSpace") and
// explicitly places out of scope. The generator needs *something* behind
// that interface to run end-to-end, so this package interns JSON Schema
// fragments into TypeIDs "by structural identity and name hint" (spec.md
// §9 DESIGN NOTES) and exposes enough Kind detail for internal/emitter to
// render a Go type declaration.
package typespace

import "github.com/genclient/genclient/internal/ir"

// Kind is the shape of a compiled type.
type Kind int

const (
	KindString Kind = iota
	KindUUID   // string, format: uuid -> github.com/google/uuid.UUID
	KindInteger
	KindNumber
	KindBoolean
	KindStruct
	KindOption // wraps Elem; emitted as *Elem
	KindVec    // wraps Elem; emitted as []Elem
	KindMap    // wraps Elem; emitted as map[string]Elem
	KindEnum   // string enum with fixed Variants
	KindRaw    // untyped passthrough (json.RawValue)
)

// Field is one property of a KindStruct type.
type Field struct {
	Name     string // Go field name (Pascal)
	APIName  string // wire name, used for the JSON struct tag
	Type     ir.TypeID
	Optional bool
}

// Type is a single compiled type-space entry.
type Type struct {
	ID   ir.TypeID
	Name string // Go type name, exported
	Kind Kind

	Elem   ir.TypeID // KindOption/KindVec/KindMap
	Fields []Field   // KindStruct, ordered
	Variants []string // KindEnum

	// BuilderName is the optional "builder companion" name spec.md §9
	// mentions TypeSpace may expose; empty when the type has none.
	BuilderName string
}
