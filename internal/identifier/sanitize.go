// Package identifier turns arbitrary OpenAPI names (parameter names, schema
// names, operationIds) into valid, idiomatically-cased Go identifiers. It is
// the Go realization of the NameSanitizer component from spec.md §2.2,
// grounded on progenitor-impl's util.rs sanitize()/unique_ident_from().
package identifier

import (
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case selects the target identifier casing.
type Case int

const (
	// CasePascal produces PascalCase, used for exported types and methods.
	CasePascal Case = iota
	// CaseSnake produces snake_case, used for the Go names internal/lowering
	// gives operation parameters.
	CaseSnake
)

var titleCaser = cases.Title(language.Und)

// Sanitize converts input into a valid Go identifier in the requested case.
// It mirrors util.rs's sanitize(): numeric sign words get spelled out,
// non-identifier runes become separators, case conversion is applied across
// the separated words, and the result is guaranteed to be a syntactically
// valid Go identifier (prepending "_" if it would otherwise start with a
// digit, appending "_" if it collides with a Go keyword).
func Sanitize(input string, c Case) string {
	switch input {
	case "+1":
		input = "plus1"
	case "-1":
		input = "minus1"
	}

	words := splitWords(input)
	if len(words) == 0 {
		words = []string{"field"}
	}

	var out string
	switch c {
	case CaseSnake:
		lowered := make([]string, len(words))
		for i, w := range words {
			lowered[i] = strings.ToLower(w)
		}
		out = strings.Join(lowered, "_")
	default: // CasePascal
		var sb strings.Builder
		for _, w := range words {
			sb.WriteString(titleCaser.String(strings.ToLower(w)))
		}
		out = sb.String()
	}

	if out == "" {
		out = "_"
	}

	r := []rune(out)
	if !isIdentStart(r[0]) {
		out = "_" + out
		r = []rune(out)
	}

	if token.IsKeyword(out) || !token.IsIdentifier(out) {
		out = out + "_"
	}

	return out
}

// isIdentStart reports whether r is valid as the first rune of a Go
// identifier (letter or underscore).
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// splitWords breaks input on any rune that isn't a letter or digit,
// discarding empty fragments. A letter that follows a digit also starts a
// new word, so "2fa" splits into ["2", "fa"]; a digit that follows a letter
// does not, so "v2" stays one word.
func splitWords(input string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	var prevKind int // 0 = none, 1 = letter, 2 = digit
	for _, r := range input {
		switch {
		case unicode.IsLetter(r):
			if prevKind == 2 {
				flush()
			}
			cur.WriteRune(r)
			prevKind = 1
		case unicode.IsDigit(r):
			cur.WriteRune(r)
			prevKind = 2
		case r == '\'':
			// apostrophes are dropped, not treated as a separator
		default:
			flush()
			prevKind = 0
		}
	}
	flush()
	return splitCamel(words)
}

// splitCamel further splits each word on internal case boundaries
// ("pageToken" -> "page", "Token") so PascalCase re-assembly round-trips
// existing camelCase OpenAPI field names cleanly.
func splitCamel(words []string) []string {
	var out []string
	for _, w := range words {
		runes := []rune(w)
		start := 0
		for i := 1; i < len(runes); i++ {
			if unicode.IsUpper(runes[i]) && unicode.IsLower(runes[i-1]) {
				out = append(out, string(runes[start:i]))
				start = i
			}
		}
		out = append(out, string(runes[start:]))
	}
	return out
}

// UniqueFrom returns a name derived from base that doesn't collide with any
// entry in taken, by prepending underscores until unique. Grounded on
// util.rs's unique_ident_from, which prepends rather than appends.
func UniqueFrom(base string, taken map[string]bool) string {
	name := base
	for taken[name] {
		name = "_" + name
	}
	return name
}
