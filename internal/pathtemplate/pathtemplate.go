// Package pathtemplate implements PathTemplate from spec.md §2.1/§4.2: an
// OpenAPI path string broken into a literal/placeholder sequence, with
// percent-encoded substitution and placeholder renaming at emit time.
// Grounded on progenitor-impl's PathTemplate (method.rs, compile()).
package pathtemplate

import (
	"fmt"
	"net/url"
	"strings"
)

// SegmentKind distinguishes literal path text from a {placeholder}.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentPlaceholder
)

// Segment is one piece of a parsed path template.
type Segment struct {
	Kind  SegmentKind
	Value string // literal text, or the placeholder's original name
}

// Template is an OpenAPI path string parsed into literal/placeholder
// segments, e.g. "/silence/{silence_id}" becomes
// [Literal("/silence/"), Placeholder("silence_id")].
type Template struct {
	Segments []Segment
}

// Parse splits an OpenAPI path string on "{" / "}" boundaries.
func Parse(path string) (Template, error) {
	var segs []Segment
	var lit strings.Builder
	i := 0
	for i < len(path) {
		if path[i] == '{' {
			if lit.Len() > 0 {
				segs = append(segs, Segment{Kind: SegmentLiteral, Value: lit.String()})
				lit.Reset()
			}
			end := strings.IndexByte(path[i:], '}')
			if end < 0 {
				return Template{}, fmt.Errorf("unterminated placeholder in path %q", path)
			}
			name := path[i+1 : i+end]
			if name == "" {
				return Template{}, fmt.Errorf("empty placeholder in path %q", path)
			}
			segs = append(segs, Segment{Kind: SegmentPlaceholder, Value: name})
			i += end + 1
			continue
		}
		lit.WriteByte(path[i])
		i++
	}
	if lit.Len() > 0 {
		segs = append(segs, Segment{Kind: SegmentLiteral, Value: lit.String()})
	}
	return Template{Segments: segs}, nil
}

// PlaceholderNames returns the original placeholder names in path order.
func (t Template) PlaceholderNames() []string {
	var names []string
	for _, s := range t.Segments {
		if s.Kind == SegmentPlaceholder {
			names = append(names, s.Value)
		}
	}
	return names
}

// Compile renders the template as a Go format-string body joined with "+"
// operators, where rename maps each placeholder's original name to the
// emitted parameter identifier. Every substituted value is wrapped in a
// call to url.PathEscape so generated code never needs to reason about
// percent-encoding itself.
//
// The returned string is a Go expression, e.g. for
// "/silence/{silence_id}" with rename={"silence_id":"silenceID"}:
//
//	"/silence/" + url.PathEscape(silenceID)
func (t Template) Compile(rename map[string]string) (string, error) {
	if len(t.Segments) == 0 {
		return `""`, nil
	}
	var parts []string
	for _, s := range t.Segments {
		switch s.Kind {
		case SegmentLiteral:
			parts = append(parts, fmt.Sprintf("%q", s.Value))
		case SegmentPlaceholder:
			ident, ok := rename[s.Value]
			if !ok {
				return "", fmt.Errorf("no renamed identifier supplied for placeholder %q", s.Value)
			}
			parts = append(parts, fmt.Sprintf("url.PathEscape(%s)", ident))
		}
	}
	return strings.Join(parts, " + "), nil
}

// Substitute performs the actual percent-encoded substitution at generation
// time for tests and tooling that want a concrete string rather than an
// emitted Go expression.
func (t Template) Substitute(values map[string]string) (string, error) {
	var sb strings.Builder
	for _, s := range t.Segments {
		switch s.Kind {
		case SegmentLiteral:
			sb.WriteString(s.Value)
		case SegmentPlaceholder:
			v, ok := values[s.Value]
			if !ok {
				return "", fmt.Errorf("missing value for placeholder %q", s.Value)
			}
			sb.WriteString(url.PathEscape(v))
		}
	}
	return sb.String(), nil
}
