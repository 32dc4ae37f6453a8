package emitter

import (
	"sort"

	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/typespace"
)

// Config controls the shape of the emitted client, mirroring
// internal/config.Config's generation-relevant fields.
type Config struct {
	Package     string
	ClientType  string
	RuntimePath string // import path of the runtime support package
	TagRouting  string // "flat", "tagged", or "both"
}

// EmitFile renders the complete generated Go source file: package clause,
// imports, the Client struct and constructor, every type declaration,
// every response enum, every positional method, and (per TagRouting) the
// per-tag extension interfaces. Output is not required to be gofmt-clean;
// internal/generate.Run pipes it through golang.org/x/tools/imports.
func EmitFile(space *typespace.Space, operations []*ir.OperationIR, cfg Config) (string, error) {
	ops := append([]*ir.OperationIR(nil), operations...)
	sortOperationsByID(ops)

	e := New()
	e.Line("// Code generated by genclient. DO NOT EDIT.")
	e.Blank()
	e.Line("package %s", cfg.Package)
	e.Blank()
	emitImports(e, space, cfg)
	e.Blank()

	emitClientType(e, cfg.ClientType)
	EmitTypeDecls(e, space)
	EmitResponseEnums(e, space, ops)

	for _, op := range ops {
		if err := EmitPositionalMethod(e, space, cfg.ClientType, op); err != nil {
			return "", err
		}
		if op.Pagination != nil {
			EmitPaginationStream(e, space, cfg.ClientType, op)
		}
		if err := EmitBuilder(e, space, cfg.ClientType, op); err != nil {
			return "", err
		}
	}

	if cfg.TagRouting == "tagged" || cfg.TagRouting == "both" {
		emitTagExtensions(e, space, cfg.ClientType, ops)
	}

	return e.String(), nil
}

func emitImports(e *Emitter, space *typespace.Space, cfg Config) {
	e.Block("import")
	e.Line("%q", "bytes")
	e.Line("%q", "context")
	e.Line("%q", "io")
	e.Line("%q", "net/http")
	e.Line("%q", "net/url")
	e.Blank()
	e.Line("%q", "github.com/go-json-experiment/json")
	if usesUUID(space) {
		e.Line("%q", "github.com/google/uuid")
	}
	e.Line("%q", cfg.RuntimePath)
	e.EndBlock()
}

func usesUUID(space *typespace.Space) bool {
	for _, t := range space.All() {
		if t.Kind == typespace.KindUUID {
			return true
		}
	}
	return false
}

func emitClientType(e *Emitter, clientType string) {
	e.Doc("%s is a generated client for the described API.", clientType)
	e.Block("type %s struct", clientType)
	e.Line("baseURL string")
	e.Line("httpClient *http.Client")
	e.EndBlock()
	e.Blank()

	e.Doc("New%s constructs a client rooted at baseURL. A nil httpClient defaults to http.DefaultClient.", clientType)
	e.Block("func New%s(baseURL string, httpClient *http.Client) *%s", clientType, clientType)
	e.Block("if httpClient == nil")
	e.Line("httpClient = http.DefaultClient")
	e.EndBlock()
	e.Line("return &%s{baseURL: baseURL, httpClient: httpClient}", clientType)
	e.EndBlock()
	e.Blank()
}

// emitTagExtensions emits, per spec.md §4.7, one "Client{Tag}Ext" interface
// per distinct operation tag, listing the positional method signatures of
// every operation carrying that tag. The base Client type satisfies every
// such interface by construction, since all positional methods are defined
// directly on it; the interfaces exist purely so tag-scoped consumers can
// depend on a narrower surface.
func emitTagExtensions(e *Emitter, space *typespace.Space, clientType string, ops []*ir.OperationIR) {
	byTag := map[string][]*ir.OperationIR{}
	for _, op := range ops {
		for _, tag := range op.Tags {
			byTag[tag] = append(byTag[tag], op)
		}
	}
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		ifaceName := clientType + pascal(tag) + "Ext"
		e.Doc("%s exposes the %q-tagged operations of %s. %s satisfies it directly.", ifaceName, tag, clientType, clientType)
		e.Block("type %s interface", ifaceName)
		for _, op := range byTag[tag] {
			success, ok := successType(op)
			if !ok {
				continue
			}
			e.Line("%s(ctx context.Context%s) (*runtime.ResponseValue[%s], error)", MethodName(op), buildSignature(space, op), successReturnExpr(space, success))
		}
		e.EndBlock()
		e.Blank()
	}
}
