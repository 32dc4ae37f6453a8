package emitter

import (
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/typespace"
)

// EmitPaginationStream emits a "{MethodName}Stream" method alongside an
// operation's positional method when it carries ir.PaginationInfo: it
// drives runtime.Paginate, repeatedly calling the positional method with an
// advancing page_token query parameter and yielding one item at a time
// until next_page comes back empty. Grounded on progenitor-impl's
// generated *Stream helpers built over futures::Stream.
func EmitPaginationStream(e *Emitter, space *typespace.Space, clientType string, op *ir.OperationIR) {
	if op.Pagination == nil {
		return
	}
	itemGo := TypeExpr(space, op.Pagination.ItemType)
	pageParam := findPageTokenParam(op)
	if pageParam == nil {
		return
	}

	e.Doc("%sStream pages through results, yielding one item at a time until the source is exhausted.", MethodName(op))
	e.Block("func (c *%s) %sStream(ctx context.Context%s) *runtime.Stream[%s]", clientType, MethodName(op), buildStreamSignature(space, op), itemGo)
	e.Block("return runtime.NewStream(func(pageToken *string) ([]%s, *string, error)", itemGo)
	e.Line("%s := pageToken", pageParam.Name)
	for _, p := range op.Params {
		if p.Kind != ir.ParamQuery || p.Required || p.APIName == "page_token" || p.APIName == "limit" {
			continue
		}
		// Every subsequent-page call forces non-limit query parameters
		// back to None, per spec.md §4.6 / method.rs:680-699's
		// step_params: only page_token and limit ever vary across calls.
		e.Line("%s := %s", p.Name, p.Name)
		e.Block("if pageToken != nil")
		e.Line("%s = nil", p.Name)
		e.EndBlock()
	}
	e.Line("page, err := c.%s(ctx%s)", MethodName(op), streamCallArgs(op))
	e.Block("if err != nil")
	e.Line("return nil, nil, err")
	e.EndBlock()
	e.Line("return page.Inner.Items, page.Inner.NextPage, nil")
	e.EndBlockSuffix(")")
	e.EndBlock()
	e.Blank()
}

func findPageTokenParam(op *ir.OperationIR) *ir.OperationParameter {
	for i := range op.Params {
		if op.Params[i].APIName == "page_token" {
			return &op.Params[i]
		}
	}
	return nil
}

func buildStreamSignature(space *typespace.Space, op *ir.OperationIR) string {
	var sig string
	for _, p := range op.Params {
		if p.APIName == "page_token" {
			continue
		}
		sig += ", " + p.Name + " " + paramTypeExpr(space, p)
	}
	return sig
}

// streamCallArgs forwards each parameter's Go name verbatim: page_token was
// already reassigned from the closure's pageToken argument, non-limit query
// parameters were already shadowed to nil on subsequent pages above, and
// every other parameter (limit, path, header) carries the value captured
// from the stream method's own signature unchanged across every call.
func streamCallArgs(op *ir.OperationIR) string {
	var args string
	for _, p := range op.Params {
		args += ", " + p.Name
	}
	return args
}
