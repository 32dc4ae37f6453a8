package oapi

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Dereference resolves the schema $refs in doc, both internal
// ("#/components/schemas/Foo") and external ("common.yaml#/Foo"), rewriting
// each *Schema in place. baseDir anchors relative external refs. A $ref set
// on a Parameter or Response object itself is left unresolved.
//
// External files are loaded concurrently (golang.org/x/sync/errgroup) since
// a document can reference many sibling files, but are then visited in a
// fixed, sorted order when inlining so two runs over the same input always
// produce byte-identical output (spec.md §5: emission order is derived from
// sorted, stable keys, never map iteration order).
func Dereference(doc *Document, baseDir string) error {
	externalFiles := collectExternalFiles(doc)
	sort.Strings(externalFiles)

	loaded := make(map[string]map[string]any, len(externalFiles))
	if len(externalFiles) > 0 {
		var g errgroup.Group
		results := make([]map[string]any, len(externalFiles))
		for i, f := range externalFiles {
			i, f := i, f
			g.Go(func() error {
				data, err := loadGeneric(filepath.Join(baseDir, f))
				if err != nil {
					return fmt.Errorf("loading external ref target %q: %w", f, err)
				}
				results[i] = data
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for i, f := range externalFiles {
			loaded[f] = results[i]
		}
	}

	resolver := &derefState{
		doc:      doc,
		external: loaded,
		visiting: map[string]bool{},
	}
	var paths []string
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		item := doc.Paths[p]
		if item == nil {
			continue
		}
		for _, pair := range item.Operations() {
			if err := resolver.walkOperation(pair.Operation); err != nil {
				return err
			}
		}
		for _, p := range item.Parameters {
			if err := resolver.resolveParameter(p); err != nil {
				return err
			}
		}
	}
	var names []string
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := resolver.resolveSchema(doc.Components.Schemas[name]); err != nil {
			return err
		}
	}
	return nil
}

type derefState struct {
	doc      *Document
	external map[string]map[string]any
	visiting map[string]bool
}

func (d *derefState) walkOperation(op *Operation) error {
	if op == nil {
		return nil
	}
	for _, p := range op.Parameters {
		if err := d.resolveParameter(p); err != nil {
			return err
		}
	}
	if op.RequestBody != nil {
		var keys []string
		for k := range op.RequestBody.Content {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := d.resolveSchema(op.RequestBody.Content[k].Schema); err != nil {
				return err
			}
		}
	}
	var statuses []string
	for k := range op.Responses {
		statuses = append(statuses, k)
	}
	sort.Strings(statuses)
	for _, k := range statuses {
		resp := op.Responses[k]
		if resp == nil {
			continue
		}
		var ctKeys []string
		for k := range resp.Content {
			ctKeys = append(ctKeys, k)
		}
		sort.Strings(ctKeys)
		for _, ck := range ctKeys {
			if err := d.resolveSchema(resp.Content[ck].Schema); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *derefState) resolveParameter(p *Parameter) error {
	if p == nil {
		return nil
	}
	return d.resolveSchema(p.Schema)
}

// resolveSchema resolves s.Ref in place (copying the target's fields onto
// s and clearing Ref) and then recurses into the schema's own nested
// schemas (properties, items, composition members).
func (d *derefState) resolveSchema(s *Schema) error {
	if s == nil {
		return nil
	}
	if s.Ref != "" {
		ref := s.Ref
		if d.visiting[ref] {
			return fmt.Errorf("cyclic $ref detected at %q", ref)
		}
		d.visiting[ref] = true
		resolved, err := d.lookupSchemaRef(ref)
		delete(d.visiting, ref)
		if err != nil {
			return err
		}
		*s = *resolved
		s.Ref = ""
	}

	var propNames []string
	for name := range s.Properties {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)
	for _, name := range propNames {
		if err := d.resolveSchema(s.Properties[name]); err != nil {
			return err
		}
	}
	if err := d.resolveSchema(s.Items); err != nil {
		return err
	}
	if err := d.resolveSchema(s.AdditionalProperties); err != nil {
		return err
	}
	for _, sub := range s.AnyOf {
		if err := d.resolveSchema(sub); err != nil {
			return err
		}
	}
	for _, sub := range s.OneOf {
		if err := d.resolveSchema(sub); err != nil {
			return err
		}
	}
	for _, sub := range s.AllOf {
		if err := d.resolveSchema(sub); err != nil {
			return err
		}
	}
	return nil
}

func (d *derefState) lookupSchemaRef(ref string) (*Schema, error) {
	file, pointer, external := splitRef(ref)
	if !external {
		name := strings.TrimPrefix(pointer, "#/components/schemas/")
		if name == pointer {
			return nil, fmt.Errorf("unsupported internal $ref %q (only #/components/schemas/* is resolved)", ref)
		}
		target, ok := d.doc.Components.Schemas[name]
		if !ok {
			return nil, fmt.Errorf("$ref %q: schema %q not found in components.schemas", ref, name)
		}
		if err := d.resolveSchema(target); err != nil {
			return nil, err
		}
		return target, nil
	}

	root, ok := d.external[file]
	if !ok {
		return nil, fmt.Errorf("$ref %q: external file %q was not loaded", ref, file)
	}
	value, err := navigatePointer(root, pointer)
	if err != nil {
		return nil, fmt.Errorf("$ref %q: %w", ref, err)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("$ref %q: re-encoding resolved value: %w", ref, err)
	}
	var schema Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("$ref %q: decoding resolved value as schema: %w", ref, err)
	}
	return &schema, nil
}

// splitRef splits a $ref string into (file, jsonPointer, isExternal).
// Internal refs ("#/a/b") have file == "" and isExternal == false.
func splitRef(ref string) (file string, pointer string, external bool) {
	i := strings.IndexByte(ref, '#')
	if i < 0 {
		return ref, "", true
	}
	file = ref[:i]
	pointer = ref[i:]
	return file, pointer, file != ""
}

func navigatePointer(root map[string]any, pointer string) (any, error) {
	pointer = strings.TrimPrefix(pointer, "#/")
	if pointer == "#" || pointer == "" {
		return root, nil
	}
	var cur any = root
	for _, tok := range strings.Split(pointer, "/") {
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		switch v := cur.(type) {
		case map[string]any:
			next, ok := v[tok]
			if !ok {
				return nil, fmt.Errorf("pointer segment %q not found", tok)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(tok)
			if err != nil || idx < 0 || idx >= len(v) {
				return nil, fmt.Errorf("pointer segment %q is not a valid array index", tok)
			}
			cur = v[idx]
		default:
			return nil, fmt.Errorf("pointer segment %q: cannot descend into non-container value", tok)
		}
	}
	return cur, nil
}

func collectExternalFiles(doc *Document) []string {
	seen := map[string]bool{}
	var add func(s *Schema)
	add = func(s *Schema) {
		if s == nil {
			return
		}
		if s.Ref != "" {
			if file, _, external := splitRef(s.Ref); external {
				seen[file] = true
			}
		}
		for _, p := range s.Properties {
			add(p)
		}
		add(s.Items)
		add(s.AdditionalProperties)
		for _, sub := range s.AnyOf {
			add(sub)
		}
		for _, sub := range s.OneOf {
			add(sub)
		}
		for _, sub := range s.AllOf {
			add(sub)
		}
	}
	for _, item := range doc.Paths {
		if item == nil {
			continue
		}
		for _, pair := range item.Operations() {
			op := pair.Operation
			if op == nil {
				continue
			}
			for _, p := range op.Parameters {
				if p != nil {
					add(p.Schema)
				}
			}
			if op.RequestBody != nil {
				for _, mt := range op.RequestBody.Content {
					add(mt.Schema)
				}
			}
			for _, resp := range op.Responses {
				if resp == nil {
					continue
				}
				for _, mt := range resp.Content {
					add(mt.Schema)
				}
			}
		}
	}
	for _, s := range doc.Components.Schemas {
		add(s)
	}

	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	return out
}

func loadGeneric(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
