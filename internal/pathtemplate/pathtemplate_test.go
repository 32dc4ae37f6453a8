package pathtemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteralAndPlaceholder(t *testing.T) {
	tmpl, err := Parse("/silence/{silence_id}")
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 2)
	assert.Equal(t, SegmentLiteral, tmpl.Segments[0].Kind)
	assert.Equal(t, "/silence/", tmpl.Segments[0].Value)
	assert.Equal(t, SegmentPlaceholder, tmpl.Segments[1].Kind)
	assert.Equal(t, "silence_id", tmpl.Segments[1].Value)
	assert.Equal(t, []string{"silence_id"}, tmpl.PlaceholderNames())
}

func TestParseMultiplePlaceholders(t *testing.T) {
	tmpl, err := Parse("/orgs/{org_id}/silences/{silence_id}")
	require.NoError(t, err)
	assert.Equal(t, []string{"org_id", "silence_id"}, tmpl.PlaceholderNames())
}

func TestParseUnterminated(t *testing.T) {
	_, err := Parse("/silence/{silence_id")
	assert.Error(t, err)
}

func TestParseEmptyPlaceholder(t *testing.T) {
	_, err := Parse("/silence/{}")
	assert.Error(t, err)
}

func TestCompile(t *testing.T) {
	tmpl, err := Parse("/orgs/{org_id}/silences/{silence_id}")
	require.NoError(t, err)

	expr, err := tmpl.Compile(map[string]string{
		"org_id":     "orgID",
		"silence_id": "silenceID",
	})
	require.NoError(t, err)
	assert.Equal(t, `"/orgs/" + url.PathEscape(orgID) + "/silences/" + url.PathEscape(silenceID)`, expr)
}

func TestCompileMissingRename(t *testing.T) {
	tmpl, err := Parse("/silence/{silence_id}")
	require.NoError(t, err)
	_, err = tmpl.Compile(map[string]string{})
	assert.Error(t, err)
}

func TestSubstitute(t *testing.T) {
	tmpl, err := Parse("/silence/{silence_id}")
	require.NoError(t, err)
	out, err := tmpl.Substitute(map[string]string{"silence_id": "a b/c"})
	require.NoError(t, err)
	assert.Equal(t, "/silence/a%20b%2Fc", out)
}

func TestCompileNoPlaceholders(t *testing.T) {
	tmpl, err := Parse("/healthz")
	require.NoError(t, err)
	expr, err := tmpl.Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, `"/healthz"`, expr)
}
