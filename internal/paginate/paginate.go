// Package paginate implements PaginationDetector (spec.md §2.6/§4.6): a
// six-gate check that decides whether an operation is a dropshot-style
// paginated listing, and if so extracts its PaginationInfo. Grounded on
// progenitor-impl's Generator::dropshot_pagination_data.
package paginate

import (
	"github.com/go-json-experiment/json"

	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/oapi"
	"github.com/genclient/genclient/internal/typespace"
)

// paginationExtension is the shape of the x-dropshot-pagination vendor
// extension. Required is advisory only (SPEC_FULL.md "Supplemented
// features"): it is attached to PaginationInfo verbatim and never checked
// against the operation's actual parameter list.
type paginationExtension struct {
	Required []string `json:"required"`
}

// Detect runs the six gates against op and its already-lowered params. On a
// pass, it returns a non-nil *ir.PaginationInfo; on any gate failure it
// returns nil (never an error — failing a gate just means "not
// paginated", not a malformed document).
func Detect(op *oapi.Operation, params []ir.OperationParameter, responses []ir.OperationResponse, websocket bool, space *typespace.Space) *ir.PaginationInfo {
	// Gate 1: x-dropshot-pagination extension present.
	raw, ok := op.Extensions["x-dropshot-pagination"]
	if !ok {
		return nil
	}

	// Gate 6: never also a websocket upgrade.
	if websocket {
		return nil
	}

	var pageToken, limit *ir.OperationParameter
	var queryCount int
	for i := range params {
		p := &params[i]
		if p.Kind != ir.ParamQuery {
			continue
		}
		queryCount++
		// Gate 3: all query params optional.
		if p.Required {
			return nil
		}
		switch p.APIName {
		case "page_token":
			pageToken = p
		case "limit":
			limit = p
		}
	}
	// Gate 2: exactly page_token + limit, both present as query-optional.
	if pageToken == nil || limit == nil || queryCount != 2 {
		return nil
	}

	// Gate 4: no RawBody param.
	for _, p := range params {
		if p.Kind == ir.ParamBody && p.TypeRef.IsRawBody {
			return nil
		}
	}

	// Gate 5: exactly one success Type response shaped {items: [...], next_page: string?}.
	itemType, ok := successListType(responses, space)
	if !ok {
		return nil
	}

	var ext paginationExtension
	_ = json.Unmarshal([]byte(raw), &ext) // best-effort; zero value on failure

	return &ir.PaginationInfo{
		ItemType:        itemType,
		FirstPageParams: ext.Required,
	}
}

// successListType finds the operation's single success-status Type
// response and checks its compiled type is a struct with exactly two
// properties, "items" (a vec) and "next_page" (an optional string),
// returning the items element's TypeID.
func successListType(responses []ir.OperationResponse, space *typespace.Space) (ir.TypeID, bool) {
	var candidate *ir.OperationResponse
	for i := range responses {
		r := &responses[i]
		if r.Kind != ir.ResponseKindType || !r.Status.IsSuccessOrDefault() {
			continue
		}
		if candidate != nil {
			return "", false // more than one success Type response
		}
		candidate = r
	}
	if candidate == nil {
		return "", false
	}

	typ, ok := space.Lookup(candidate.Type)
	if !ok || typ.Kind != typespace.KindStruct || len(typ.Fields) != 2 {
		return "", false
	}

	var items, nextPage *typespace.Field
	for i := range typ.Fields {
		f := &typ.Fields[i]
		switch f.APIName {
		case "items":
			items = f
		case "next_page":
			nextPage = f
		}
	}
	if items == nil || nextPage == nil || !nextPage.Optional {
		return "", false
	}

	itemsType, ok := space.Lookup(items.Type)
	if !ok || itemsType.Kind != typespace.KindVec {
		return "", false
	}
	nextPageType, ok := space.Lookup(nextPage.Type)
	if !ok || nextPageType.Kind != typespace.KindString {
		return "", false
	}

	return itemsType.Elem, true
}
