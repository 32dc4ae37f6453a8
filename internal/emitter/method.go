package emitter

import (
	"fmt"
	"strings"

	"github.com/genclient/genclient/internal/classify"
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/pathtemplate"
	"github.com/genclient/genclient/internal/typespace"
)

// successType returns the first response whose status is 2xx or default,
// whatever its kind, used as the positional method's success return type.
func successType(op *ir.OperationIR) (ir.OperationResponse, bool) {
	for _, r := range op.Responses {
		if r.Status.IsSuccessOrDefault() {
			switch r.Kind {
			case ir.ResponseKindType, ir.ResponseKindMultiple, ir.ResponseKindNone, ir.ResponseKindRaw, ir.ResponseKindUpgrade:
				return r, true
			}
		}
	}
	return ir.OperationResponse{}, false
}

// successReturnExpr renders the Go type of the positional method's success
// return value (before it's wrapped in *runtime.ResponseValue[T]).
func successReturnExpr(space *typespace.Space, r ir.OperationResponse) string {
	switch r.Kind {
	case ir.ResponseKindType:
		return TypeExpr(space, r.Type)
	case ir.ResponseKindMultiple:
		return r.EnumName
	case ir.ResponseKindNone:
		return "struct{}"
	case ir.ResponseKindRaw:
		return "[]byte"
	case ir.ResponseKindUpgrade:
		return "runtime.Upgraded"
	default:
		return "any"
	}
}

// errorTypeExpr finds the operation's representative error type for the
// generic parameter of runtime.Error[E]. classify.Classify always
// synthesizes a dedicated "{OperationId}Error" Multiple enum (marked
// HasUnknownValue) whenever the operation declares at least one error
// response, so that enum is preferred whenever present; otherwise the
// first non-success Type response's bare type is used, falling back to
// json.RawValue when there is none.
func errorTypeExpr(space *typespace.Space, op *ir.OperationIR) string {
	for _, r := range op.Responses {
		if r.Kind == ir.ResponseKindMultiple && r.HasUnknownValue {
			return r.EnumName
		}
	}
	for _, r := range op.Responses {
		if r.Status.IsSuccessOrDefault() && !r.Status.IsErrorOrDefault() {
			continue
		}
		if r.Kind == ir.ResponseKindType {
			return TypeExpr(space, r.Type)
		}
	}
	return "json.RawValue"
}

// MethodName returns the exported Go method name for an operation,
// PascalCase of its operationId.
func MethodName(op *ir.OperationIR) string {
	return pascal(op.OperationID)
}

func pascal(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = upperRune(r[0])
	return string(r)
}

// EmitPositionalMethod emits the positional-argument client method for op,
// per spec.md §4.4: one parameter per path/query/header/body param in
// declared order, returning (*runtime.ResponseValue[Success], error).
func EmitPositionalMethod(e *Emitter, space *typespace.Space, clientType string, op *ir.OperationIR) error {
	success, ok := successType(op)
	if !ok {
		return fmt.Errorf("operation %s has no success response", op.OperationID)
	}
	successGo := successReturnExpr(space, success)
	errorGo := errorTypeExpr(space, op)

	if op.Summary != "" {
		e.Doc("%s %s", MethodName(op), op.Summary)
	} else if op.Description != "" {
		e.Doc("%s %s", MethodName(op), op.Description)
	}

	sig := buildSignature(space, op)
	e.Block("func (c *%s) %s(ctx context.Context%s) (*runtime.ResponseValue[%s], error)", clientType, MethodName(op), sig, successGo)

	emitMethodBody(e, space, op, successGo, errorGo)

	e.EndBlock()
	e.Blank()
	return nil
}

func buildSignature(space *typespace.Space, op *ir.OperationIR) string {
	var sb strings.Builder
	for _, p := range op.Params {
		sb.WriteString(", ")
		sb.WriteString(p.Name)
		sb.WriteString(" ")
		sb.WriteString(paramTypeExpr(space, p))
	}
	return sb.String()
}

func paramTypeExpr(space *typespace.Space, p ir.OperationParameter) string {
	if p.Kind == ir.ParamBody && p.TypeRef.IsRawBody {
		return "io.Reader"
	}
	return FieldTypeExpr(space, p.TypeRef.Type, !p.Required)
}

func emitMethodBody(e *Emitter, space *typespace.Space, op *ir.OperationIR, successGo, errorGo string) {
	tmpl, err := pathtemplate.Parse(op.Path)
	rename := map[string]string{}
	for _, p := range op.Params {
		if p.Kind == ir.ParamPath {
			rename[p.APIName] = p.Name
		}
	}
	var pathExpr string
	if err == nil {
		pathExpr, err = tmpl.Compile(rename)
	}
	if err != nil {
		e.Line("// path template error: %s", err.Error())
		pathExpr = fmt.Sprintf("%q", op.Path)
	}

	e.Line("urlPath := c.baseURL + %s", pathExpr)
	e.Blank()

	hasQuery := false
	for _, p := range op.Params {
		if p.Kind == ir.ParamQuery {
			hasQuery = true
			break
		}
	}
	if hasQuery {
		e.Line("query := url.Values{}")
		for _, p := range op.Params {
			if p.Kind != ir.ParamQuery {
				continue
			}
			if p.Required {
				e.Line("query.Set(%q, runtime.QueryParam(%s))", p.APIName, p.Name)
			} else {
				e.Block("if %s != nil", p.Name)
				e.Line("query.Set(%q, runtime.QueryParam(*%s))", p.APIName, p.Name)
				e.EndBlock()
			}
		}
		e.Block("if len(query) > 0")
		e.Line(`urlPath += "?" + query.Encode()`)
		e.EndBlock()
		e.Blank()
	}

	var bodyParam *ir.OperationParameter
	for i := range op.Params {
		if op.Params[i].Kind == ir.ParamBody {
			bodyParam = &op.Params[i]
		}
	}

	e.Line("var bodyReader io.Reader")
	if bodyParam != nil {
		switch bodyParam.BodyContentType.Kind {
		case ir.BodyJSON:
			e.Line("bodyBytes, err := json.Marshal(%s)", bodyParam.Name)
			e.Block("if err != nil")
			e.Line("return nil, &runtime.Error[%s]{Kind: runtime.ErrInvalidRequest, InvalidRequest: err.Error()}", errorGo)
			e.EndBlock()
			e.Line("bodyReader = bytes.NewReader(bodyBytes)")
		default:
			e.Line("bodyReader = %s", bodyParam.Name)
		}
	}
	e.Blank()

	e.Line("req, err := http.NewRequestWithContext(ctx, %q, urlPath, bodyReader)", string(op.Method))
	e.Block("if err != nil")
	e.Line("return nil, &runtime.Error[%s]{Kind: runtime.ErrInvalidRequest, InvalidRequest: err.Error()}", errorGo)
	e.EndBlock()
	e.Blank()

	if bodyParam != nil && bodyParam.BodyContentType.Kind == ir.BodyJSON {
		e.Line(`req.Header.Set("Content-Type", "application/json")`)
	}
	for _, p := range op.Params {
		if p.Kind != ir.ParamHeader {
			continue
		}
		if p.Required {
			e.Line("req.Header.Set(%q, runtime.QueryParam(%s))", p.APIName, p.Name)
		} else {
			e.Block("if %s != nil", p.Name)
			e.Line("req.Header.Set(%q, runtime.QueryParam(*%s))", p.APIName, p.Name)
			e.EndBlock()
		}
	}
	e.Blank()

	e.Line("resp, err := c.httpClient.Do(req)")
	e.Block("if err != nil")
	e.Line("return nil, &runtime.Error[%s]{Kind: runtime.ErrTransport, Err: err}", errorGo)
	e.EndBlock()
	e.Blank()

	e.Block("switch")
	emitResponseArms(e, space, op, successGo, errorGo)
	e.EndBlock()
}

// emitResponseArms emits a tagless-switch body (switch { case cond: ... }),
// since ResponseStatus ranges ("4xx") have no direct Go switch-case syntax.
func emitResponseArms(e *Emitter, space *typespace.Space, op *ir.OperationIR, successGo, errorGo string) {
	var defaultResp *ir.OperationResponse
	for i := range op.Responses {
		r := &op.Responses[i]
		if r.Status.Kind == ir.StatusDefault {
			defaultResp = r
			continue
		}
		cond, ok := caseCond(r)
		if !ok {
			continue
		}
		e.Line("case %s:", cond)
		e.Indent()
		emitResponseArmBody(e, space, *r, successGo, errorGo)
		e.Dedent()
	}
	e.Line("default:")
	e.Indent()
	if defaultResp != nil {
		emitResponseArmBody(e, space, *defaultResp, successGo, errorGo)
	} else {
		e.Line("return nil, &runtime.Error[%s]{Kind: runtime.ErrUnexpectedResponse, UnexpectedResponse: resp}", errorGo)
	}
	e.Dedent()
}

// caseCondForStatus renders the boolean condition for a tagless switch case
// matching this status against resp.StatusCode.
func caseCondForStatus(s ir.ResponseStatus) (string, bool) {
	switch s.Kind {
	case ir.StatusCode:
		return fmt.Sprintf("resp.StatusCode == %d", s.Code), true
	case ir.StatusRange:
		return fmt.Sprintf("resp.StatusCode/100 == %d", s.Range), true
	default:
		return "", false
	}
}

// caseCond renders the top-level case condition for one response entry. A
// Multiple entry represents every one of its variants' statuses, not just
// the representative Status it was synthesized under, so its case lists
// every variant's condition — a tagless switch's case list is an OR,
// matching if any listed expression is true — ensuring every status the
// synthesized enum covers actually reaches its shared decode body.
func caseCond(r *ir.OperationResponse) (string, bool) {
	if r.Kind != ir.ResponseKindMultiple {
		return caseCondForStatus(r.Status)
	}
	var conds []string
	for _, v := range r.Variants {
		if cond, ok := caseCondForStatus(v.Status); ok {
			conds = append(conds, cond)
		}
	}
	if len(conds) == 0 {
		return "", false
	}
	return strings.Join(conds, ", "), true
}

func emitResponseArmBody(e *Emitter, space *typespace.Space, r ir.OperationResponse, successGo, errorGo string) {
	isSuccess := r.Status.IsSuccessOrDefault() && !r.Status.IsErrorOrDefault()
	switch r.Kind {
	case ir.ResponseKindNone:
		e.Line("return &runtime.ResponseValue[%s]{HTTPResponse: resp}, nil", successGo)
	case ir.ResponseKindRaw:
		e.Line("return runtime.ResponseValueFromRaw(resp)")
	case ir.ResponseKindUpgrade:
		e.Line("return runtime.ResponseValueFromUpgrade(resp)")
	case ir.ResponseKindType:
		if isSuccess {
			e.Line("return runtime.ResponseValueFromJSON[%s](resp)", successGo)
		} else {
			e.Line("var errBody %s", TypeExpr(space, r.Type))
			e.Line("_ = json.UnmarshalRead(resp.Body, &errBody)")
			e.Line("return nil, &runtime.Error[%s]{Kind: runtime.ErrErrorResponse, ErrorResponse: &runtime.ResponseValue[%s]{Inner: errBody, HTTPResponse: resp}}", errorGo, errorGo)
		}
	case ir.ResponseKindMultiple:
		e.Line("var variant %s", r.EnumName)
		e.Line("variant.HTTPResponse = resp")
		e.Block("switch")
		for _, v := range r.Variants {
			fieldName := classify.VariantFieldName(v.Status)
			if cond, ok := caseCondForStatus(v.Status); ok {
				e.Line("case %s:", cond)
				e.Indent()
				emitVariantDecode(e, space, fieldName, v)
				e.Dedent()
			}
		}
		if r.HasUnknownValue {
			e.Line("default:")
			e.Indent()
			e.Line("var raw json.RawValue")
			e.Line("_ = json.UnmarshalRead(resp.Body, &raw)")
			e.Line("variant.UnknownValue = raw")
			e.Dedent()
		}
		e.EndBlock()
		if isSuccess {
			e.Line("return &runtime.ResponseValue[%s]{Inner: variant, HTTPResponse: resp}, nil", successGo)
		} else {
			e.Line("return nil, &runtime.Error[%s]{Kind: runtime.ErrErrorResponse, ErrorResponse: &runtime.ResponseValue[%s]{Inner: variant, HTTPResponse: resp}}", errorGo, errorGo)
		}
	}
}

// emitVariantDecode fills one Multiple-variant pointer field from resp,
// dispatching on the variant's own kind: a Type(_) variant decodes JSON, a
// None variant just marks presence, a Raw variant captures the body bytes,
// and an Upgrade variant captures the hijacked connection.
func emitVariantDecode(e *Emitter, space *typespace.Space, fieldName string, v ir.ResponseVariant) {
	switch v.Kind {
	case ir.ResponseKindType:
		e.Line("var val %s", TypeExpr(space, v.Type))
		e.Line("_ = json.UnmarshalRead(resp.Body, &val)")
		e.Line("variant.%s = &val", fieldName)
	case ir.ResponseKindNone:
		e.Line("variant.%s = &struct{}{}", fieldName)
	case ir.ResponseKindRaw:
		e.Line("data, _ := io.ReadAll(resp.Body)")
		e.Line("variant.%s = &data", fieldName)
	case ir.ResponseKindUpgrade:
		e.Line("upgraded, _ := runtime.ResponseValueFromUpgrade(resp)")
		e.Line("variant.%s = upgraded", fieldName)
	}
}
