package typespace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genclient/genclient/internal/oapi"
)

func TestCompileStruct(t *testing.T) {
	space := New(nil)
	schema := &oapi.Schema{
		Type:     "object",
		Required: []string{"id"},
		Properties: map[string]*oapi.Schema{
			"id":      {Type: "string", Format: "uuid"},
			"comment": {Type: "string"},
		},
	}

	id, err := space.Compile(schema, "Silence", "getSilence")
	require.NoError(t, err)

	typ, ok := space.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, KindStruct, typ.Kind)
	require.Len(t, typ.Fields, 2)

	byName := map[string]Field{}
	for _, f := range typ.Fields {
		byName[f.APIName] = f
	}
	assert.False(t, byName["id"].Optional)
	assert.True(t, byName["comment"].Optional)

	idType, ok := space.Lookup(byName["id"].Type)
	require.True(t, ok)
	assert.Equal(t, KindUUID, idType.Kind)
}

func TestCompileInternsIdenticalSchemas(t *testing.T) {
	space := New(nil)
	a := &oapi.Schema{Type: "string", Format: "uuid"}
	b := &oapi.Schema{Type: "string", Format: "uuid"}

	idA, err := space.Compile(a, "SilenceID", "op1")
	require.NoError(t, err)
	idB, err := space.Compile(b, "OtherID", "op2")
	require.NoError(t, err)

	assert.Equal(t, idA, idB, "structurally identical schemas should intern to the same TypeID")
}

func TestCompileArray(t *testing.T) {
	space := New(nil)
	schema := &oapi.Schema{
		Type:  "array",
		Items: &oapi.Schema{Type: "string"},
	}
	id, err := space.Compile(schema, "Tags", "listSilences")
	require.NoError(t, err)

	typ, ok := space.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, KindVec, typ.Kind)

	elem, ok := space.Lookup(typ.Elem)
	require.True(t, ok)
	assert.Equal(t, KindString, elem.Kind)
}

func TestCompileEnum(t *testing.T) {
	space := New(nil)
	schema := &oapi.Schema{Type: "string", Enum: []string{"active", "expired"}}
	id, err := space.Compile(schema, "SilenceStatus", "getSilence")
	require.NoError(t, err)

	typ, ok := space.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, KindEnum, typ.Kind)
	assert.Equal(t, []string{"active", "expired"}, typ.Variants)
}

func TestCompileNullableProducesOption(t *testing.T) {
	space := New(nil)
	schema := &oapi.Schema{Type: "string", Nullable: true}
	id, err := space.Compile(schema, "Comment", "getSilence")
	require.NoError(t, err)

	typ, ok := space.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, KindOption, typ.Kind)

	elem, ok := space.Lookup(typ.Elem)
	require.True(t, ok)
	assert.Equal(t, KindString, elem.Kind)
	assert.Equal(t, "Comment", elem.Name, "the nullable wrapper's reserved name is released to its inner type")
}

func TestCompileInvalidPatternDiagnosesNotFails(t *testing.T) {
	space := New(nil)
	schema := &oapi.Schema{Type: "string", Pattern: "(unbalanced"}
	_, err := space.Compile(schema, "BadPattern", "op")
	require.NoError(t, err, "an invalid pattern must never fail generation")
}
