// Package diagnostic collects non-fatal generator diagnostics: unknown
// content types, schema shapes the generator falls back on, and similar
// observations a caller may want to see without aborting generation.
package diagnostic

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Category classifies diagnostics for filtering.
type Category string

const (
	// CategoryUnknownContentType fires when a media type string does not
	// match any BodyContentType prefix and falls back to OctetStream.
	CategoryUnknownContentType Category = "unknown-content-type"
	// CategoryNonStandardBodySchema fires on the GET/HEAD/OPTIONS and
	// DELETE body-gating defensiveness described in SPEC_FULL.md.
	CategoryNonStandardBodySchema Category = "non-standard-body-schema"
	// CategoryRawTextPattern fires when a text/* media type is paired
	// with format: binary, the inconsistency spec.md leaves unresolved.
	CategoryRawTextPattern Category = "raw-text-pattern"
	// CategoryInvalidPattern fires when a JSON Schema pattern constraint
	// fails to compile under regexp2.
	CategoryInvalidPattern Category = "invalid-pattern"
)

// Diagnostic is a single structured, non-fatal observation.
type Diagnostic struct {
	Severity  Severity
	Category  Category
	Operation string // operation_id the diagnostic was raised for, if any
	Message   string
	Hint      string
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.Operation != "" {
		sb.WriteString(d.Operation)
		sb.WriteString(": ")
	}
	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	if d.Category != "" {
		sb.WriteString("[")
		sb.WriteString(string(d.Category))
		sb.WriteString("] ")
	}
	sb.WriteString(d.Message)
	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}
	return sb.String()
}

// Sink accumulates diagnostics raised during a single generation run.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink creates an empty diagnostic sink.
func NewSink() *Sink {
	return &Sink{}
}

// Warn records a warning-level diagnostic. A nil sink is a no-op, so
// components can take a *Sink that may not have been constructed by a
// caller that doesn't care about diagnostics.
func (s *Sink) Warn(category Category, operation, message string) {
	if s == nil {
		return
	}
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity:  SeverityWarning,
		Category:  category,
		Operation: operation,
		Message:   message,
	})
}

// WarnWithHint records a warning with a suggested fix.
func (s *Sink) WarnWithHint(category Category, operation, message, hint string) {
	if s == nil {
		return
	}
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity:  SeverityWarning,
		Category:  category,
		Operation: operation,
		Message:   message,
		Hint:      hint,
	})
}

// Info records an informational diagnostic.
func (s *Sink) Info(category Category, operation, message string) {
	if s == nil {
		return
	}
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity:  SeverityInfo,
		Category:  category,
		Operation: operation,
		Message:   message,
	})
}

// Diagnostics returns all diagnostics recorded so far.
func (s *Sink) Diagnostics() []Diagnostic {
	if s == nil {
		return nil
	}
	return s.diagnostics
}

// FormatAll renders every diagnostic as a multi-line string.
func (s *Sink) FormatAll() string {
	if s == nil || len(s.diagnostics) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range s.diagnostics {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Summary returns a one-line count like "2 warning(s), 1 info".
func (s *Sink) Summary() string {
	if s == nil || len(s.diagnostics) == 0 {
		return "no issues"
	}
	var warnings, infos int
	for _, d := range s.diagnostics {
		switch d.Severity {
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	parts := []string{}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if infos > 0 {
		parts = append(parts, fmt.Sprintf("%d info", infos))
	}
	return strings.Join(parts, ", ")
}
