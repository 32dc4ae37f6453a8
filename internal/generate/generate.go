// Package generate drives the full pipeline described in spec.md §2:
// oapi.Load → per-operation lowering.Lower → classify.Classify →
// paginate.Detect → emitter.EmitFile, writing the final Go source through
// golang.org/x/tools/imports before it touches disk.
package generate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/tools/imports"

	"github.com/genclient/genclient/internal/classify"
	"github.com/genclient/genclient/internal/config"
	"github.com/genclient/genclient/internal/diagnostic"
	"github.com/genclient/genclient/internal/emitter"
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/lowering"
	"github.com/genclient/genclient/internal/oapi"
	"github.com/genclient/genclient/internal/paginate"
	"github.com/genclient/genclient/internal/typespace"
)

// Result is the outcome of a successful generation run.
type Result struct {
	Source      string
	Diagnostics []diagnostic.Diagnostic
}

// Options carries the resolved generation settings, built from
// config.Config plus any CLI overrides.
type Options struct {
	RuntimeImportPath string
}

// IRDump is the --dump-ir debug payload: every lowered, classified, and
// paginated operation plus the compiled type table, standing in for
// progenitor's internal generator state that has no other external
// surface.
type IRDump struct {
	Operations []*ir.OperationIR `json:"operations"`
	Types      []*typespace.Type `json:"types"`
}

// LowerForDump runs the pipeline through classification and pagination
// detection (stopping short of emission) and returns the result for
// --dump-ir.
func LowerForDump(cfg *config.Config) (*IRDump, error) {
	doc, err := oapi.Load(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.Input, err)
	}
	sink := diagnostic.NewSink()
	space := typespace.New(sink)
	operations, err := lowerAll(doc, space, sink)
	if err != nil {
		return nil, err
	}
	return &IRDump{Operations: operations, Types: space.All()}, nil
}

// Run executes the full pipeline against the OpenAPI document at
// cfg.Input and returns the generated Go source for cfg.Output.
func Run(cfg *config.Config, opts Options) (*Result, error) {
	doc, err := oapi.Load(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", cfg.Input, err)
	}

	sink := diagnostic.NewSink()
	space := typespace.New(sink)

	operations, err := lowerAll(doc, space, sink)
	if err != nil {
		return nil, err
	}

	src, err := emitter.EmitFile(space, operations, emitter.Config{
		Package:     cfg.Package,
		ClientType:  cfg.ClientType,
		RuntimePath: opts.RuntimeImportPath,
		TagRouting:  cfg.TagRouting,
	})
	if err != nil {
		return nil, fmt.Errorf("emitting source: %w", err)
	}

	formatted, err := imports.Process(cfg.Output, []byte(src), nil)
	if err != nil {
		// Fall back to the unformatted source rather than failing the
		// whole run: a malformed intermediate is still useful for
		// debugging, and imports.Process is sensitive to
		// transient parse errors on otherwise-valid snippets.
		sink.Warn(diagnostic.CategoryNonStandardBodySchema, "", fmt.Sprintf("goimports formatting failed: %v", err))
		formatted = []byte(src)
	}

	return &Result{Source: string(formatted), Diagnostics: sink.Diagnostics()}, nil
}

// lowerAll walks every path/method in doc, producing one OperationIR per
// operation in a deterministic order (sorted by path, then by the fixed
// HTTP-method priority oapi.PathItem.Operations already applies).
func lowerAll(doc *oapi.Document, space *typespace.Space, sink *diagnostic.Sink) ([]*ir.OperationIR, error) {
	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var operations []*ir.OperationIR
	for _, p := range paths {
		item := doc.Paths[p]
		for _, entry := range item.Operations() {
			method, ok := parseMethod(entry.Method)
			if !ok {
				continue
			}
			opIR, err := lowering.Lower(entry.Operation.OperationID, method, p, entry.Operation, item.Parameters, space, sink)
			if err != nil {
				return nil, fmt.Errorf("lowering %s %s: %w", entry.Method, p, err)
			}
			opIR.Responses = classify.Classify(opIR.OperationID, opIR.Responses)
			opIR.Pagination = paginate.Detect(entry.Operation, opIR.Params, opIR.Responses, opIR.Websocket, space)
			operations = append(operations, opIR)
		}
	}
	return operations, nil
}

func parseMethod(s string) (ir.HTTPMethod, bool) {
	switch ir.HTTPMethod(s) {
	case ir.MethodGet, ir.MethodPost, ir.MethodPut, ir.MethodDelete, ir.MethodPatch, ir.MethodHead, ir.MethodOptions, ir.MethodTrace:
		return ir.HTTPMethod(s), true
	default:
		return "", false
	}
}

// WriteOutput writes src to cfg.Output, creating parent directories as
// needed.
func WriteOutput(cfg *config.Config, src string) error {
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(cfg.Output, []byte(src), 0o644)
}
