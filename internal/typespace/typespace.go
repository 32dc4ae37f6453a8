package typespace

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/dlclark/regexp2"
	"github.com/go-json-experiment/json"
	"github.com/zeebo/xxh3"

	"github.com/genclient/genclient/internal/diagnostic"
	"github.com/genclient/genclient/internal/identifier"
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/oapi"
)

// Space interns compiled types by structural identity, following spec.md
// §9's description of TypeSpace: "schemas are interned by structural
// identity and name hint." Two schemas with identical canonical JSON (after
// $ref resolution) produce the same TypeID even if reached from different
// paths in the document.
type Space struct {
	byHash map[string]ir.TypeID
	types  map[ir.TypeID]*Type
	names  map[string]bool // Go type names already assigned, for collision avoidance
	sink   *diagnostic.Sink
}

// New creates an empty Space. sink may be nil.
func New(sink *diagnostic.Sink) *Space {
	return &Space{
		byHash: map[string]ir.TypeID{},
		types:  map[ir.TypeID]*Type{},
		names:  map[string]bool{},
		sink:   sink,
	}
}

// Lookup returns the compiled Type for id, if any.
func (s *Space) Lookup(id ir.TypeID) (*Type, bool) {
	t, ok := s.types[id]
	return t, ok
}

// All returns every compiled type, sorted by TypeID for deterministic
// emission order.
func (s *Space) All() []*Type {
	out := make([]*Type, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Compile interns schema under nameHint (used to name the Go type if one
// must be synthesized, e.g. for an inline object) and returns its TypeID.
// operation names the operation being compiled, for diagnostics only.
func (s *Space) Compile(schema *oapi.Schema, nameHint, operation string) (ir.TypeID, error) {
	if schema == nil {
		return "", fmt.Errorf("cannot compile a nil schema")
	}

	canon, err := canonicalize(schema)
	if err != nil {
		return "", fmt.Errorf("canonicalizing schema for %q: %w", nameHint, err)
	}
	hash := strconv.FormatUint(xxh3.HashString(canon), 16)

	if id, ok := s.byHash[hash]; ok {
		return id, nil
	}

	id := ir.TypeID(hash)
	goName := s.uniqueName(identifier.Sanitize(nameHint, identifier.CasePascal))

	t := &Type{ID: id, Name: goName}
	s.types[id] = t
	s.byHash[hash] = id

	if err := s.fill(t, schema, operation); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Space) uniqueName(base string) string {
	name := identifier.UniqueFrom(base, s.names)
	s.names[name] = true
	return name
}

func (s *Space) fill(t *Type, schema *oapi.Schema, operation string) error {
	s.validatePattern(schema, t.Name, operation)

	switch {
	case schema.Nullable:
		// An Option wrapper is never itself declared (EmitTypeDecls only
		// renders Struct/Enum kinds, and typeExpr inlines "*" for
		// KindOption), so the nice name reserved for it would otherwise go
		// to waste. Release it back and let the inner, non-nullable schema
		// claim it instead.
		delete(s.names, t.Name)
		inner := *schema
		inner.Nullable = false
		elemID, err := s.Compile(&inner, t.Name, operation)
		if err != nil {
			return err
		}
		t.Kind = KindOption
		t.Elem = elemID
		return nil
	case len(schema.Enum) > 0:
		t.Kind = KindEnum
		t.Variants = append([]string(nil), schema.Enum...)
		return nil
	case schema.Type == "string" && schema.Format == "uuid":
		t.Kind = KindUUID
		return nil
	case schema.Type == "string":
		t.Kind = KindString
		return nil
	case schema.Type == "integer":
		t.Kind = KindInteger
		return nil
	case schema.Type == "number":
		t.Kind = KindNumber
		return nil
	case schema.Type == "boolean":
		t.Kind = KindBoolean
		return nil
	case schema.Type == "array":
		t.Kind = KindVec
		elemID, err := s.Compile(schema.Items, t.Name+"Item", operation)
		if err != nil {
			return err
		}
		t.Elem = elemID
		return nil
	case schema.Type == "object" && schema.AdditionalProperties != nil && len(schema.Properties) == 0:
		t.Kind = KindMap
		elemID, err := s.Compile(schema.AdditionalProperties, t.Name+"Value", operation)
		if err != nil {
			return err
		}
		t.Elem = elemID
		return nil
	case schema.Type == "object" || len(schema.Properties) > 0:
		t.Kind = KindStruct
		required := map[string]bool{}
		for _, r := range schema.Required {
			required[r] = true
		}
		var names []string
		for name := range schema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			propID, err := s.Compile(schema.Properties[name], t.Name+identifier.Sanitize(name, identifier.CasePascal), operation)
			if err != nil {
				return err
			}
			t.Fields = append(t.Fields, Field{
				Name:     identifier.Sanitize(name, identifier.CasePascal),
				APIName:  name,
				Type:     propID,
				Optional: !required[name],
			})
		}
		return nil
	default:
		// anyOf/oneOf/allOf and any schema shape not otherwise recognized
		// falls back to a raw passthrough rather than failing generation;
		// spec.md places schema-level type synthesis for unions out of
		// scope (§1 Non-goals).
		t.Kind = KindRaw
		return nil
	}
}

// validatePattern checks a string schema's "pattern" constraint compiles
// under regexp2, which (unlike Go's RE2-based regexp) supports the
// PCRE-style lookaheads and backreferences JSON Schema authors commonly
// write. A failure is a diagnostic, never fatal, per SPEC_FULL.md.
func (s *Space) validatePattern(schema *oapi.Schema, typeName, operation string) {
	if schema.Pattern == "" {
		return
	}
	if _, err := regexp2.Compile(schema.Pattern, regexp2.None); err != nil {
		s.sink.WarnWithHint(diagnostic.CategoryInvalidPattern, operation,
			fmt.Sprintf("type %s: pattern %q failed to compile: %v", typeName, schema.Pattern, err),
			"the generated field will carry no compile-time pattern validation")
	}
}

// canonicalize produces a stable JSON encoding of schema for hashing.
// The Deterministic option makes go-json-experiment/json sort map keys
// (e.g. Properties), which is exactly the property structural interning
// needs.
func canonicalize(schema *oapi.Schema) (string, error) {
	data, err := json.Marshal(schema, json.Deterministic(true))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
