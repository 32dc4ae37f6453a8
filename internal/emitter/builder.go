package emitter

import (
	"fmt"

	"github.com/genclient/genclient/internal/identifier"
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/typespace"
)

// EmitBuilder emits the Builder Form for op (spec.md §1, §4.5): a
// "{Method}Builder" struct with one runtime.Result field per parameter,
// a constructor method on the client, chained setters, an optional Clone,
// and a Send method that resolves every field and runs the same
// request/response handling emitMethodBody gives the positional method.
// Grounded on progenitor-impl's per-operation Builder<'_>, translated from
// its TryFrom-based setters and Result<T, String> fields into Go's
// runtime.Result[T].
func EmitBuilder(e *Emitter, space *typespace.Space, clientType string, op *ir.OperationIR) error {
	success, ok := successType(op)
	if !ok {
		return fmt.Errorf("operation %s has no success response", op.OperationID)
	}
	successGo := successReturnExpr(space, success)
	errorGo := errorTypeExpr(space, op)
	builderName := MethodName(op) + "Builder"

	emitBuilderStruct(e, space, clientType, builderName, op)
	emitBuilderConstructor(e, space, clientType, builderName, op)
	emitBuilderSetters(e, space, builderName, op)
	if builderCloneable(op) {
		emitBuilderClone(e, builderName)
	}
	emitBuilderSend(e, space, builderName, op, successGo, errorGo)
	return nil
}

func emitBuilderStruct(e *Emitter, space *typespace.Space, clientType, builderName string, op *ir.OperationIR) {
	e.Doc("%s holds %s's deferred-validation parameters. Each field resolves independently; Send reports the first unresolved one as an invalid-request error.", builderName, MethodName(op))
	e.Block("type %s struct", builderName)
	e.Line("client *%s", clientType)
	for _, p := range op.Params {
		e.Line("%s runtime.Result[%s]", p.Name, paramTypeExpr(space, p))
	}
	e.EndBlock()
	e.Blank()
}

func emitBuilderConstructor(e *Emitter, space *typespace.Space, clientType, builderName string, op *ir.OperationIR) {
	e.Doc("%s starts the builder form of %s. Required fields begin in an error state until set; optional fields default to unset.", builderName, MethodName(op))
	e.Block("func (c *%s) %s() *%s", clientType, builderName, builderName)
	e.Block("return &%s", builderName)
	e.Line("client: c,")
	for _, p := range op.Params {
		t := paramTypeExpr(space, p)
		if p.Required {
			e.Line("%s: runtime.Err[%s](%q),", p.Name, t, p.APIName+" was not initialized")
		} else {
			e.Line("%s: runtime.Ok[%s](nil),", p.Name, t)
		}
	}
	e.EndBlock()
	e.EndBlock()
	e.Blank()
}

func emitBuilderSetters(e *Emitter, space *typespace.Space, builderName string, op *ir.OperationIR) {
	for _, p := range op.Params {
		t := paramTypeExpr(space, p)
		name := identifier.Sanitize(p.APIName, identifier.CasePascal)

		e.Doc("%s sets the %q parameter.", name, p.APIName)
		e.Block("func (b *%s) %s(v %s) *%s", builderName, name, t, builderName)
		e.Line("b.%s.Set(v)", p.Name)
		e.Line("return b")
		e.EndBlock()
		e.Blank()

		if p.Kind != ir.ParamBody || p.TypeRef.IsRawBody {
			continue
		}
		bt, ok := space.Lookup(p.TypeRef.Type)
		if !ok || bt.BuilderName == "" {
			continue
		}
		e.Doc("BodyMap applies f to the current body value before resolving it, for incremental construction via %s's builder companion.", bt.Name)
		e.Block("func (b *%s) BodyMap(f func(%s) %s) *%s", builderName, t, t, builderName)
		e.Line("cur, _ := b.%s.Resolve()", p.Name)
		e.Line("b.%s.Set(f(cur))", p.Name)
		e.Line("return b")
		e.EndBlock()
		e.Blank()
	}
}

// builderCloneable reports whether op's builder can derive Clone: it
// cannot when any field is a RawBody (an io.Reader can only be read once),
// per spec.md §4.5's "clone iff no field is RawBody" rule.
func builderCloneable(op *ir.OperationIR) bool {
	for _, p := range op.Params {
		if p.TypeRef.IsRawBody {
			return false
		}
	}
	return true
}

func emitBuilderClone(e *Emitter, builderName string) {
	e.Doc("Clone returns an independent copy of the builder.")
	e.Block("func (b *%s) Clone() *%s", builderName, builderName)
	e.Line("cp := *b")
	e.Line("return &cp")
	e.EndBlock()
	e.Blank()
}

// emitBuilderSend resolves every field into a local variable named exactly
// like its OperationParameter.Name, propagating the first resolution error
// as an ErrInvalidRequest, then falls through to emitMethodBody: since the
// positional method body only ever references parameters by that same
// Name, the resolved locals satisfy it without any further translation.
func emitBuilderSend(e *Emitter, space *typespace.Space, builderName string, op *ir.OperationIR, successGo, errorGo string) {
	e.Doc("Send resolves every field and performs the request, identical in behavior to %s's positional method.", MethodName(op))
	e.Block("func (b *%s) Send(ctx context.Context) (*runtime.ResponseValue[%s], error)", builderName, successGo)
	e.Line("c := b.client")
	for _, p := range op.Params {
		e.Line("%s, err := b.%s.Resolve()", p.Name, p.Name)
		e.Block("if err != nil")
		e.Line("return nil, &runtime.Error[%s]{Kind: runtime.ErrInvalidRequest, InvalidRequest: err.Error()}", errorGo)
		e.EndBlock()
	}
	emitMethodBody(e, space, op, successGo, errorGo)
	e.EndBlock()
	e.Blank()
}
