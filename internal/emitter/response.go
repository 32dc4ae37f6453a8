package emitter

import (
	"github.com/genclient/genclient/internal/classify"
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/typespace"
)

// EmitResponseEnums emits one Go struct per operation whose classified
// response is ir.ResponseKindMultiple: a struct with one pointer field per
// distinct status variant plus an HTTPResponse field, named per
// classify.Classify's EnumName ("{OperationId}Response" or
// "{OperationId}Error"). Operations are visited in OperationID order for
// deterministic output; an enum name already emitted for an earlier
// operation is not re-emitted, whatever its variants.
func EmitResponseEnums(e *Emitter, space *typespace.Space, operations []*ir.OperationIR) {
	seen := map[string]bool{}
	ops := append([]*ir.OperationIR(nil), operations...)
	sortOperationsByID(ops)
	for _, op := range ops {
		for _, r := range op.Responses {
			if r.Kind != ir.ResponseKindMultiple || seen[r.EnumName] {
				continue
			}
			seen[r.EnumName] = true
			emitResponseEnum(e, space, r)
		}
	}
}

func emitResponseEnum(e *Emitter, space *typespace.Space, r ir.OperationResponse) {
	e.Doc("%s holds exactly one populated variant, selected by the response's HTTP status.", r.EnumName)
	e.Block("type %s struct", r.EnumName)
	e.Line("HTTPResponse *http.Response")
	for _, v := range r.Variants {
		field := classify.VariantFieldName(v.Status)
		e.Line("%s %s", field, variantFieldType(space, v))
	}
	if r.HasUnknownValue {
		e.Doc("UnknownValue holds the raw response body for a status code the document never declared.")
		e.Line("UnknownValue json.RawValue")
	}
	e.EndBlock()
	e.Blank()
}

// variantFieldType renders a Multiple-variant's pointer field type,
// dispatching on the variant's own response kind rather than assuming
// every variant decodes JSON.
func variantFieldType(space *typespace.Space, v ir.ResponseVariant) string {
	switch v.Kind {
	case ir.ResponseKindType:
		return "*" + TypeExpr(space, v.Type)
	case ir.ResponseKindNone:
		return "*struct{}"
	case ir.ResponseKindRaw:
		return "*[]byte"
	case ir.ResponseKindUpgrade:
		return "*runtime.Upgraded"
	default:
		return "any"
	}
}

func sortOperationsByID(ops []*ir.OperationIR) {
	for i := 1; i < len(ops); i++ {
		for j := i; j > 0 && ops[j-1].OperationID > ops[j].OperationID; j-- {
			ops[j-1], ops[j] = ops[j], ops[j-1]
		}
	}
}
