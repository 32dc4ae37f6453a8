package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinkNilIsNoOp(t *testing.T) {
	var s *Sink
	s.Warn(CategoryUnknownContentType, "GetWidget", "boom")
	assert.Nil(t, s.Diagnostics())
	assert.Equal(t, "no issues", s.Summary())
}

func TestSinkAccumulates(t *testing.T) {
	s := NewSink()
	s.Warn(CategoryUnknownContentType, "GetWidget", "unrecognized content type image/png")
	s.WarnWithHint(CategoryRawTextPattern, "DownloadLog", "text/plain with format: binary", "verify server actually returns text")
	s.Info(CategoryNonStandardBodySchema, "DeleteWidget", "dropping vacuous json body on DELETE")

	require.Len(t, s.Diagnostics(), 3)
	assert.Equal(t, "2 warning(s), 1 info", s.Summary())

	out := s.FormatAll()
	assert.Contains(t, out, "GetWidget")
	assert.Contains(t, out, "hint: verify server actually returns text")
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Severity:  SeverityWarning,
		Category:  CategoryUnknownContentType,
		Operation: "GetWidget",
		Message:   "unrecognized content type",
	}
	s := d.String()
	assert.Contains(t, s, "GetWidget: warning: [unknown-content-type] unrecognized content type")
}
