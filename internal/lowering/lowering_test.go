package lowering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genclient/genclient/internal/diagnostic"
	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/oapi"
	"github.com/genclient/genclient/internal/typespace"
)

func TestLowerMergesPathAndOperationParams(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()

	pathParams := []*oapi.Parameter{
		{Name: "silence_id", In: "path", Required: true, Schema: &oapi.Schema{Type: "string", Format: "uuid"}},
	}
	op := &oapi.Operation{
		OperationID: "getSilence",
		Parameters: []*oapi.Parameter{
			{Name: "verbose", In: "query", Schema: &oapi.Schema{Type: "boolean"}},
		},
		Responses: map[string]*oapi.Response{
			"200": {Description: "ok", Content: map[string]*oapi.MediaType{
				"application/json": {Schema: &oapi.Schema{Type: "object", Properties: map[string]*oapi.Schema{
					"id": {Type: "string"},
				}}},
			}},
		},
	}

	out, err := Lower("getSilence", ir.MethodGet, "/silence/{silence_id}", op, pathParams, space, sink)
	require.NoError(t, err)
	require.Len(t, out.Params, 2)
	assert.Equal(t, ir.ParamPath, out.Params[0].Kind)
	assert.True(t, out.Params[0].Required)
	assert.Equal(t, ir.ParamQuery, out.Params[1].Kind)
	assert.False(t, out.Params[1].Required)

	require.Len(t, out.Responses, 1)
	assert.Equal(t, ir.ResponseKindType, out.Responses[0].Kind)
}

func TestLowerDropsBodyOnGet(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()

	op := &oapi.Operation{
		OperationID: "listSilences",
		RequestBody: &oapi.RequestBody{
			Content: map[string]*oapi.MediaType{"application/json": {Schema: &oapi.Schema{Type: "object"}}},
		},
		Responses: map[string]*oapi.Response{
			"200": {Description: "ok"},
		},
	}

	out, err := Lower("listSilences", ir.MethodGet, "/silences", op, nil, space, sink)
	require.NoError(t, err)
	for _, p := range out.Params {
		assert.NotEqual(t, ir.ParamBody, p.Kind)
	}
	assert.NotEmpty(t, sink.Diagnostics())
}

func TestLowerDropsVacuousDeleteBody(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()

	op := &oapi.Operation{
		OperationID: "deleteSilence",
		RequestBody: &oapi.RequestBody{
			Content: map[string]*oapi.MediaType{"application/json": {Schema: &oapi.Schema{Type: "object"}}},
		},
		Responses: map[string]*oapi.Response{
			"204": {Description: "deleted"},
		},
	}

	out, err := Lower("deleteSilence", ir.MethodDelete, "/silence/{silence_id}", op, nil, space, sink)
	require.NoError(t, err)
	for _, p := range out.Params {
		assert.NotEqual(t, ir.ParamBody, p.Kind)
	}
}

func TestLowerKeepsNonVacuousDeleteBody(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()

	op := &oapi.Operation{
		OperationID: "bulkDeleteSilences",
		RequestBody: &oapi.RequestBody{
			Content: map[string]*oapi.MediaType{"application/json": {Schema: &oapi.Schema{
				Type: "object",
				Properties: map[string]*oapi.Schema{
					"ids": {Type: "array", Items: &oapi.Schema{Type: "string"}},
				},
			}}},
		},
		Responses: map[string]*oapi.Response{"204": {Description: "deleted"}},
	}

	out, err := Lower("bulkDeleteSilences", ir.MethodDelete, "/silences", op, nil, space, sink)
	require.NoError(t, err)
	var found bool
	for _, p := range out.Params {
		if p.Kind == ir.ParamBody {
			found = true
		}
	}
	assert.True(t, found)
}

// TestLowerOrdersParamsPathQueryHeaderBody reproduces spec.md §8's
// "Parameter order stability" property with an operation whose document
// declares a header parameter before a query parameter, and two query
// parameters out of lex order — neither declaration order should survive
// into Params.
func TestLowerOrdersParamsPathQueryHeaderBody(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()

	op := &oapi.Operation{
		OperationID: "listSilences",
		Parameters: []*oapi.Parameter{
			{Name: "x-trace-id", In: "header", Schema: &oapi.Schema{Type: "string"}},
			{Name: "zoo", In: "query", Schema: &oapi.Schema{Type: "string"}},
			{Name: "alpha", In: "query", Schema: &oapi.Schema{Type: "string"}},
			{Name: "silence_id", In: "path", Required: true, Schema: &oapi.Schema{Type: "string"}},
		},
		RequestBody: &oapi.RequestBody{
			Content: map[string]*oapi.MediaType{"application/json": {Schema: &oapi.Schema{
				Type:       "object",
				Properties: map[string]*oapi.Schema{"note": {Type: "string"}},
			}}},
		},
		Responses: map[string]*oapi.Response{"200": {Description: "ok"}},
	}

	out, err := Lower("listSilences", ir.MethodPost, "/silence/{silence_id}", op, nil, space, sink)
	require.NoError(t, err)
	require.Len(t, out.Params, 5)

	assert.Equal(t, ir.ParamPath, out.Params[0].Kind)
	assert.Equal(t, "silence_id", out.Params[0].APIName)

	assert.Equal(t, ir.ParamQuery, out.Params[1].Kind)
	assert.Equal(t, "alpha", out.Params[1].APIName)
	assert.Equal(t, ir.ParamQuery, out.Params[2].Kind)
	assert.Equal(t, "zoo", out.Params[2].APIName)

	assert.Equal(t, ir.ParamHeader, out.Params[3].Kind)
	assert.Equal(t, "x-trace-id", out.Params[3].APIName)

	assert.Equal(t, ir.ParamBody, out.Params[4].Kind)
}

func TestLowerRejectsPathParamMissingFromTemplate(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()

	pathParams := []*oapi.Parameter{
		{Name: "silence_id", In: "path", Required: true, Schema: &oapi.Schema{Type: "string"}},
	}
	op := &oapi.Operation{
		OperationID: "getSilence",
		Responses:   map[string]*oapi.Response{"200": {Description: "ok"}},
	}

	_, err := Lower("getSilence", ir.MethodGet, "/silences", op, pathParams, space, sink)
	require.Error(t, err)
	var lowerErr *Error
	require.ErrorAs(t, err, &lowerErr)
	assert.Equal(t, UnexpectedFormat, lowerErr.Kind)
}

// TestLowerCollapsesNullableQueryParamToOptional reproduces method.rs's
// Option-substitution invariant: a required, nullable query parameter
// collapses to required=false and is carried as its inner (non-nullable)
// type, not the Option wrapper.
func TestLowerCollapsesNullableQueryParamToOptional(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()

	op := &oapi.Operation{
		OperationID: "listSilences",
		Parameters: []*oapi.Parameter{
			{Name: "since", In: "query", Required: true, Schema: &oapi.Schema{Type: "string", Nullable: true}},
		},
		Responses: map[string]*oapi.Response{"200": {Description: "ok"}},
	}

	out, err := Lower("listSilences", ir.MethodGet, "/silences", op, nil, space, sink)
	require.NoError(t, err)
	require.Len(t, out.Params, 1)
	assert.False(t, out.Params[0].Required)

	typ, ok := space.Lookup(out.Params[0].TypeRef.Type)
	require.True(t, ok)
	assert.Equal(t, typespace.KindString, typ.Kind, "the Option wrapper is unwrapped to its inner type")
}

func TestLowerRejectsMissingOperationID(t *testing.T) {
	space := typespace.New(nil)
	sink := diagnostic.NewSink()
	op := &oapi.Operation{Responses: map[string]*oapi.Response{"200": {Description: "ok"}}}

	_, err := Lower("opID", ir.MethodGet, "/x", op, nil, space, sink)
	require.Error(t, err)
	var lowerErr *Error
	require.ErrorAs(t, err, &lowerErr)
	assert.Equal(t, UnexpectedFormat, lowerErr.Kind)
}

func TestParseStatusRange(t *testing.T) {
	s, err := parseStatus("4XX")
	require.NoError(t, err)
	assert.Equal(t, ir.StatusRange, s.Kind)
	assert.Equal(t, uint8(4), s.Range)

	s, err = parseStatus("default")
	require.NoError(t, err)
	assert.Equal(t, ir.StatusDefault, s.Kind)

	s, err = parseStatus("200")
	require.NoError(t, err)
	assert.Equal(t, ir.StatusCode, s.Kind)
	assert.Equal(t, uint16(200), s.Code)
}
