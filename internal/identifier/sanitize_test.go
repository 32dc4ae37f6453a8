package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePascal(t *testing.T) {
	cases := map[string]string{
		"page_token":   "PageToken",
		"pageToken":    "PageToken",
		"next-page":    "NextPage",
		"silence_id":   "SilenceId",
		"+1":           "Plus1",
		"-1":           "Minus1",
		"2fa-code":     "_2FaCode",
		"x-api-version": "XApiVersion",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in, CasePascal), "input %q", in)
	}
}

func TestSanitizeSnake(t *testing.T) {
	assert.Equal(t, "page_token", Sanitize("pageToken", CaseSnake))
	assert.Equal(t, "plus1", Sanitize("+1", CaseSnake))
}

func TestSanitizeNeverProducesKeyword(t *testing.T) {
	out := Sanitize("type", CaseSnake)
	assert.NotEqual(t, "type", out)
	assert.Equal(t, "type_", out)
}

func TestUniqueFrom(t *testing.T) {
	taken := map[string]bool{"id": true, "_id": true}
	assert.Equal(t, "__id", UniqueFrom("id", taken))
	assert.Equal(t, "name", UniqueFrom("name", taken))
}
