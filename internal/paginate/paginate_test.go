package paginate

import (
	"testing"

	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genclient/genclient/internal/ir"
	"github.com/genclient/genclient/internal/oapi"
	"github.com/genclient/genclient/internal/typespace"
)

func buildListResponse(t *testing.T, space *typespace.Space) (ir.TypeID, ir.TypeID) {
	t.Helper()
	itemSchema := &oapi.Schema{Type: "object", Properties: map[string]*oapi.Schema{
		"id": {Type: "string"},
	}}
	listSchema := &oapi.Schema{
		Type:     "object",
		Required: []string{"items"},
		Properties: map[string]*oapi.Schema{
			"items":      {Type: "array", Items: itemSchema},
			"next_page": {Type: "string"},
		},
	}
	listID, err := space.Compile(listSchema, "SilencePage", "listSilences")
	require.NoError(t, err)
	listType, _ := space.Lookup(listID)
	itemsField := listType.Fields[0]
	return listID, itemsField.Type
}

func TestDetectPassesAllGates(t *testing.T) {
	space := typespace.New(nil)
	listID, _ := buildListResponse(t, space)

	op := &oapi.Operation{
		OperationID: "listSilences",
		Extensions: map[string]jsontext.Value{
			"x-dropshot-pagination": jsontext.Value(`{"required":["limit"]}`),
		},
	}
	params := []ir.OperationParameter{
		{Name: "pageToken", APIName: "page_token", Kind: ir.ParamQuery, Required: false},
		{Name: "limit", APIName: "limit", Kind: ir.ParamQuery, Required: false},
	}
	responses := []ir.OperationResponse{
		{Status: ir.ResponseStatus{Kind: ir.StatusCode, Code: 200}, Kind: ir.ResponseKindType, Type: listID},
	}

	info := Detect(op, params, responses, false, space)
	require.NotNil(t, info)
	assert.Equal(t, []string{"limit"}, info.FirstPageParams)
}

func TestDetectFailsWithoutExtension(t *testing.T) {
	space := typespace.New(nil)
	listID, _ := buildListResponse(t, space)

	op := &oapi.Operation{OperationID: "listSilences"}
	params := []ir.OperationParameter{
		{Name: "pageToken", APIName: "page_token", Kind: ir.ParamQuery},
		{Name: "limit", APIName: "limit", Kind: ir.ParamQuery},
	}
	responses := []ir.OperationResponse{
		{Status: ir.ResponseStatus{Kind: ir.StatusCode, Code: 200}, Kind: ir.ResponseKindType, Type: listID},
	}

	assert.Nil(t, Detect(op, params, responses, false, space))
}

func TestDetectFailsWhenWebsocket(t *testing.T) {
	space := typespace.New(nil)
	listID, _ := buildListResponse(t, space)

	op := &oapi.Operation{
		OperationID: "listSilences",
		Extensions:  map[string]jsontext.Value{"x-dropshot-pagination": jsontext.Value(`{}`)},
	}
	params := []ir.OperationParameter{
		{Name: "pageToken", APIName: "page_token", Kind: ir.ParamQuery},
		{Name: "limit", APIName: "limit", Kind: ir.ParamQuery},
	}
	responses := []ir.OperationResponse{
		{Status: ir.ResponseStatus{Kind: ir.StatusCode, Code: 200}, Kind: ir.ResponseKindType, Type: listID},
	}

	assert.Nil(t, Detect(op, params, responses, true, space))
}

func TestDetectFailsWithRequiredQueryParam(t *testing.T) {
	space := typespace.New(nil)
	listID, _ := buildListResponse(t, space)

	op := &oapi.Operation{
		OperationID: "listSilences",
		Extensions:  map[string]jsontext.Value{"x-dropshot-pagination": jsontext.Value(`{}`)},
	}
	params := []ir.OperationParameter{
		{Name: "pageToken", APIName: "page_token", Kind: ir.ParamQuery, Required: true},
		{Name: "limit", APIName: "limit", Kind: ir.ParamQuery},
	}
	responses := []ir.OperationResponse{
		{Status: ir.ResponseStatus{Kind: ir.StatusCode, Code: 200}, Kind: ir.ResponseKindType, Type: listID},
	}

	assert.Nil(t, Detect(op, params, responses, false, space))
}
