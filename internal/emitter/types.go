package emitter

import (
	"fmt"

	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/typespace"
)

// TypeExpr renders the Go type expression for a compiled type, e.g.
// "string", "*Widget", "[]string", "uuid.UUID".
func TypeExpr(space *typespace.Space, id ir.TypeID) string {
	t, ok := space.Lookup(id)
	if !ok {
		return "any"
	}
	return typeExpr(space, t)
}

func typeExpr(space *typespace.Space, t *typespace.Type) string {
	switch t.Kind {
	case typespace.KindString:
		return "string"
	case typespace.KindUUID:
		return "uuid.UUID"
	case typespace.KindInteger:
		return "int64"
	case typespace.KindNumber:
		return "float64"
	case typespace.KindBoolean:
		return "bool"
	case typespace.KindRaw:
		return "json.RawValue"
	case typespace.KindEnum:
		return t.Name
	case typespace.KindStruct:
		return t.Name
	case typespace.KindOption:
		elem, _ := space.Lookup(t.Elem)
		return "*" + typeExpr(space, elem)
	case typespace.KindVec:
		elem, _ := space.Lookup(t.Elem)
		return "[]" + typeExpr(space, elem)
	case typespace.KindMap:
		elem, _ := space.Lookup(t.Elem)
		return "map[string]" + typeExpr(space, elem)
	default:
		return "any"
	}
}

// FieldTypeExpr renders the Go type expression for a struct field, wrapping
// the underlying type in a pointer when optional is true (unless it is
// already a slice or map, which are nil-able on their own).
func FieldTypeExpr(space *typespace.Space, id ir.TypeID, optional bool) string {
	t, ok := space.Lookup(id)
	if !ok {
		return "any"
	}
	expr := typeExpr(space, t)
	if optional && t.Kind != typespace.KindVec && t.Kind != typespace.KindMap {
		return "*" + expr
	}
	return expr
}

// EmitTypeDecls emits a Go type declaration for every struct and enum type
// in space, in deterministic (sorted-by-TypeID) order.
func EmitTypeDecls(e *Emitter, space *typespace.Space) {
	for _, t := range space.All() {
		switch t.Kind {
		case typespace.KindStruct:
			emitStruct(e, space, t)
		case typespace.KindEnum:
			emitEnum(e, t)
		}
	}
}

func emitStruct(e *Emitter, space *typespace.Space, t *typespace.Type) {
	e.Doc("%s is generated from the corresponding OpenAPI schema.", t.Name)
	e.Block("type %s struct", t.Name)
	for _, f := range t.Fields {
		expr := FieldTypeExpr(space, f.Type, f.Optional)
		tag := fmt.Sprintf("`json:\"%s", f.APIName)
		if f.Optional {
			tag += ",omitempty"
		}
		tag += "\"`"
		e.Line("%s %s %s", f.Name, expr, tag)
	}
	e.EndBlock()
	e.Blank()
}

func emitEnum(e *Emitter, t *typespace.Type) {
	e.Doc("%s is a fixed string enum generated from the corresponding OpenAPI schema.", t.Name)
	e.Line("type %s string", t.Name)
	e.Blank()
	e.Block("const")
	for _, v := range t.Variants {
		e.Line("%s%s %s = %q", t.Name, exportedVariant(v), t.Name, v)
	}
	e.EndBlock()
	e.Blank()
}

func exportedVariant(v string) string {
	if v == "" {
		return "Unknown"
	}
	r := []rune(v)
	r[0] = upperRune(r[0])
	return string(r)
}

func upperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
