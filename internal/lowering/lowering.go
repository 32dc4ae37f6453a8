// Package lowering implements OperationLowering (spec.md §2.4/§4.1): it
// turns one *oapi.Operation plus its enclosing path-item context into a
// normalized ir.OperationIR, merging path-item and operation-level
// parameters, gating request bodies per HTTP method, and lowering each
// response entry. Grounded on progenitor-impl's method.rs
// Generator::process_operation.
package lowering

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/genclient/genclient/internal/diagnostic"
	"github.com/genclient/genclient/internal/identifier"
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/oapi"
	"github.com/genclient/genclient/internal/pathtemplate"
	"github.com/genclient/genclient/internal/typespace"
)

// ErrorKind distinguishes generator-fatal error classes.
type ErrorKind int

const (
	// InternalError is an invariant violation in the generator itself.
	InternalError ErrorKind = iota
	// UnexpectedFormat is a document shape the generator cannot lower
	// (e.g. a parameter with neither schema nor content).
	UnexpectedFormat
	// InvalidExtension is a conflicting or malformed vendor extension,
	// e.g. an operation that is both a websocket upgrade and paginated.
	InvalidExtension
)

func (k ErrorKind) String() string {
	switch k {
	case InternalError:
		return "internal error"
	case UnexpectedFormat:
		return "unexpected format"
	case InvalidExtension:
		return "invalid extension"
	default:
		return "unknown error"
	}
}

// Error is the single fatal error type OperationLowering raises, carrying
// which operation failed and why. Following the teacher's own convention
// (see internal/diagnostic for the non-fatal counterpart), this wraps a
// plain Kind enum rather than reaching for a third-party errors package.
type Error struct {
	Kind      ErrorKind
	Operation string
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Operation, e.Kind, e.Message)
}

// Is supports errors.Is(err, &lowering.Error{Kind: lowering.InternalError})
// style comparisons by matching on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Lower normalizes one operation into an ir.OperationIR. pathParams are the
// path-item-level parameters; Lower merges them with op's own parameters by
// name+in, operation-level taking precedence, per OpenAPI 3.0 semantics.
func Lower(opID string, method ir.HTTPMethod, path string, op *oapi.Operation, pathParams []*oapi.Parameter, space *typespace.Space, sink *diagnostic.Sink) (*ir.OperationIR, error) {
	if op.OperationID == "" {
		return nil, &Error{Kind: UnexpectedFormat, Operation: opID, Message: "operation is missing operationId"}
	}

	merged := mergeParameters(pathParams, op.Parameters)

	out := &ir.OperationIR{
		OperationID: op.OperationID,
		Tags:        append([]string(nil), op.Tags...),
		Method:      method,
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Websocket:   isWebsocket(op),
	}
	if out.Websocket {
		if _, ok := op.Extensions["x-dropshot-pagination"]; ok {
			return nil, &Error{Kind: InvalidExtension, Operation: op.OperationID, Message: "operation is both a websocket upgrade and paginated"}
		}
	}

	taken := map[string]bool{}
	for _, p := range merged {
		if p.Ref != "" {
			return nil, &Error{Kind: UnexpectedFormat, Operation: op.OperationID, Message: fmt.Sprintf("parameter %q still has an unresolved $ref", p.Name)}
		}
		kind, ok := paramKind(p.In)
		if !ok {
			return nil, &Error{Kind: UnexpectedFormat, Operation: op.OperationID, Message: fmt.Sprintf("parameter %q has unsupported location %q", p.Name, p.In)}
		}
		goName := identifier.UniqueFrom(identifier.Sanitize(p.Name, identifier.CaseSnake), taken)
		taken[goName] = true

		typeID, err := space.Compile(p.Schema, op.OperationID+identifier.Sanitize(p.Name, identifier.CasePascal), op.OperationID)
		if err != nil {
			return nil, &Error{Kind: InternalError, Operation: op.OperationID, Message: err.Error()}
		}

		required := p.Required || kind == ir.ParamPath

		// A query parameter TypeSpace reports as an Option collapses to
		// required=false and is carried as its inner type, per
		// method.rs:374-389: the Option-ness is already expressed by the
		// pointer FieldTypeExpr renders for a non-required parameter, so
		// keeping both would double-wrap it.
		if kind == ir.ParamQuery {
			if t, ok := space.Lookup(typeID); ok && t.Kind == typespace.KindOption {
				typeID = t.Elem
				required = false
			}
		}

		out.Params = append(out.Params, ir.OperationParameter{
			Name:     goName,
			APIName:  p.Name,
			Kind:     kind,
			Required: required,
			TypeRef:  ir.ParamTypeRef{Type: typeID},
		})
	}

	if body, ok, err := lowerBody(op, method, space, sink); err != nil {
		return nil, err
	} else if ok {
		out.Params = append(out.Params, *body)
	}

	if err := sortParams(op.OperationID, path, out); err != nil {
		return nil, err
	}

	responses, err := lowerResponses(op, space, sink)
	if err != nil {
		return nil, err
	}
	out.Responses = responses

	return out, nil
}

// sortParams reorders out.Params in place into spec's mandated
// path(positional)→query(lex by APIName)→header(lex by APIName)→body
// order, per spec.md §4.1's parameter ordering rule. Path parameters are
// ordered by their position in the URL template (via
// pathtemplate.PlaceholderNames); a path parameter named in Params but
// missing from the template is a fatal UnexpectedFormat error.
func sortParams(operationID, path string, out *ir.OperationIR) error {
	tmpl, err := pathtemplate.Parse(path)
	if err != nil {
		return &Error{Kind: UnexpectedFormat, Operation: operationID, Message: err.Error()}
	}
	placeholderOrder := map[string]int{}
	for i, name := range tmpl.PlaceholderNames() {
		placeholderOrder[name] = i
	}

	var pathParams, queryParams, headerParams, bodyParams []ir.OperationParameter
	for _, p := range out.Params {
		switch p.Kind {
		case ir.ParamPath:
			if _, ok := placeholderOrder[p.APIName]; !ok {
				return &Error{Kind: UnexpectedFormat, Operation: operationID,
					Message: fmt.Sprintf("path parameter %q has no matching placeholder in path %q", p.APIName, path)}
			}
			pathParams = append(pathParams, p)
		case ir.ParamQuery:
			queryParams = append(queryParams, p)
		case ir.ParamHeader:
			headerParams = append(headerParams, p)
		default:
			bodyParams = append(bodyParams, p)
		}
	}

	sort.SliceStable(pathParams, func(i, j int) bool {
		return placeholderOrder[pathParams[i].APIName] < placeholderOrder[pathParams[j].APIName]
	})
	sort.SliceStable(queryParams, func(i, j int) bool { return queryParams[i].APIName < queryParams[j].APIName })
	sort.SliceStable(headerParams, func(i, j int) bool { return headerParams[i].APIName < headerParams[j].APIName })

	sorted := make([]ir.OperationParameter, 0, len(out.Params))
	sorted = append(sorted, pathParams...)
	sorted = append(sorted, queryParams...)
	sorted = append(sorted, headerParams...)
	sorted = append(sorted, bodyParams...)
	out.Params = sorted
	return nil
}

// mergeParameters combines path-item-level parameters with operation-level
// ones, operation-level taking precedence for the same (name, in) pair,
// matching OpenAPI 3.0's inheritance rule for path-item parameters.
func mergeParameters(pathParams, opParams []*oapi.Parameter) []*oapi.Parameter {
	type key struct{ name, in string }
	byKey := map[key]*oapi.Parameter{}
	var order []key

	for _, p := range pathParams {
		k := key{p.Name, p.In}
		if _, exists := byKey[k]; !exists {
			order = append(order, k)
		}
		byKey[k] = p
	}
	for _, p := range opParams {
		k := key{p.Name, p.In}
		if _, exists := byKey[k]; !exists {
			order = append(order, k)
		}
		byKey[k] = p
	}

	out := make([]*oapi.Parameter, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

func paramKind(in string) (ir.ParamKind, bool) {
	switch in {
	case "path":
		return ir.ParamPath, true
	case "query":
		return ir.ParamQuery, true
	case "header":
		return ir.ParamHeader, true
	default:
		return 0, false
	}
}

// lowerBody gates the request body per HTTP method, reproducing the
// original's "unreachable-arm defensiveness": GET/HEAD/OPTIONS never carry
// a body even if one is declared, and DELETE drops a declared-but-vacuous
// application/json {} schema. Both are non-fatal: a diagnostic is raised
// and the body is simply dropped, never an error.
func lowerBody(op *oapi.Operation, method ir.HTTPMethod, space *typespace.Space, sink *diagnostic.Sink) (*ir.OperationParameter, bool, error) {
	if op.RequestBody == nil {
		return nil, false, nil
	}

	switch method {
	case ir.MethodGet, ir.MethodHead, ir.MethodOptions:
		sink.Warn(diagnostic.CategoryNonStandardBodySchema, op.OperationID,
			fmt.Sprintf("%s operation declares a request body; dropping it", method))
		return nil, false, nil
	}

	mediaType, content := pickContentType(op.RequestBody.Content)
	if content == nil {
		return nil, false, nil
	}

	if method == ir.MethodDelete && isVacuousJSONObject(mediaType, content) {
		sink.Warn(diagnostic.CategoryNonStandardBodySchema, op.OperationID,
			"DELETE operation declares a vacuous application/json {} body; dropping it")
		return nil, false, nil
	}

	bct, ok := ir.ParseBodyContentType(mediaType)
	if !ok {
		sink.Warn(diagnostic.CategoryUnknownContentType, op.OperationID,
			fmt.Sprintf("unrecognized request body content type %q, falling back to octet-stream", mediaType))
	}
	if bct.Kind == ir.BodyText && content.Schema != nil && content.Schema.Format == "binary" {
		sink.Warn(diagnostic.CategoryRawTextPattern, op.OperationID,
			fmt.Sprintf("content type %q pairs a text/* media type with format: binary", mediaType))
	}

	param := &ir.OperationParameter{
		Name:            "body",
		APIName:         "body",
		Kind:            ir.ParamBody,
		Required:        op.RequestBody.Required,
		BodyContentType: bct,
	}

	switch bct.Kind {
	case ir.BodyJSON:
		typeID, err := space.Compile(content.Schema, op.OperationID+"Body", op.OperationID)
		if err != nil {
			return nil, false, &Error{Kind: InternalError, Operation: op.OperationID, Message: err.Error()}
		}
		param.TypeRef = ir.ParamTypeRef{Type: typeID}
	default:
		param.TypeRef = ir.ParamTypeRef{IsRawBody: true}
	}

	return param, true, nil
}

func pickContentType(content map[string]*oapi.MediaType) (string, *oapi.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	var keys []string
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	// application/json takes priority when present, matching the
	// original's body_func preference order.
	for _, k := range keys {
		if k == "application/json" {
			return k, content[k]
		}
	}
	return keys[0], content[keys[0]]
}

func isVacuousJSONObject(mediaType string, mt *oapi.MediaType) bool {
	if mediaType != "application/json" || mt.Schema == nil {
		return false
	}
	s := mt.Schema
	return s.Type == "object" && len(s.Properties) == 0 && s.AdditionalProperties == nil
}

func lowerResponses(op *oapi.Operation, space *typespace.Space, sink *diagnostic.Sink) ([]ir.OperationResponse, error) {
	var out []ir.OperationResponse

	var keys []string
	for k := range op.Responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		status, err := parseStatus(key)
		if err != nil {
			return nil, &Error{Kind: UnexpectedFormat, Operation: op.OperationID, Message: err.Error()}
		}
		resp := op.Responses[key]
		kind, typeID, err := lowerResponseKind(op, resp, space, sink)
		if err != nil {
			return nil, err
		}
		out = append(out, ir.OperationResponse{Status: status, Kind: kind, Type: typeID})
	}

	ir.SortResponses(out)
	return out, nil
}

func parseStatus(key string) (ir.ResponseStatus, error) {
	if key == "default" {
		return ir.ResponseStatus{Kind: ir.StatusDefault}, nil
	}
	if len(key) == 3 && (key[1] == 'X' || key[1] == 'x') && (key[2] == 'X' || key[2] == 'x') {
		first := key[0]
		if first < '2' || first > '5' {
			return ir.ResponseStatus{}, fmt.Errorf("unsupported status range %q", key)
		}
		return ir.ResponseStatus{Kind: ir.StatusRange, Range: first - '0'}, nil
	}
	code, err := strconv.Atoi(key)
	if err != nil {
		return ir.ResponseStatus{}, fmt.Errorf("invalid status key %q", key)
	}
	return ir.ResponseStatus{Kind: ir.StatusCode, Code: uint16(code)}, nil
}

func lowerResponseKind(op *oapi.Operation, resp *oapi.Response, space *typespace.Space, sink *diagnostic.Sink) (ir.ResponseKind, ir.TypeID, error) {
	if resp == nil || len(resp.Content) == 0 {
		if isWebsocket(op) {
			return ir.ResponseKindUpgrade, "", nil
		}
		return ir.ResponseKindNone, "", nil
	}

	mediaType, mt := pickContentType(resp.Content)
	if mt.Schema == nil {
		return ir.ResponseKindNone, "", nil
	}

	bct, ok := ir.ParseBodyContentType(mediaType)
	if !ok {
		sink.Warn(diagnostic.CategoryUnknownContentType, op.OperationID,
			fmt.Sprintf("unrecognized response content type %q, falling back to octet-stream", mediaType))
	}
	if bct.Kind != ir.BodyJSON {
		return ir.ResponseKindRaw, "", nil
	}

	typeID, err := space.Compile(mt.Schema, op.OperationID+"Response", op.OperationID)
	if err != nil {
		return 0, "", &Error{Kind: InternalError, Operation: op.OperationID, Message: err.Error()}
	}
	return ir.ResponseKindType, typeID, nil
}

func isWebsocket(op *oapi.Operation) bool {
	raw, ok := op.Extensions["x-dropshot-websocket"]
	if !ok {
		return false
	}
	s := strings.TrimSpace(string(raw))
	return s == "true"
}
