package config

import (
	"fmt"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if c.Input == "" {
		result.Errors = append(result.Errors, "input: OpenAPI document path is required")
	}
	if c.Output == "" {
		result.Errors = append(result.Errors, "output: generated Go file path is required")
	}

	switch c.TagRouting {
	case "", "flat", "tagged", "both":
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("tagRouting: must be one of \"flat\", \"tagged\", \"both\", got %q", c.TagRouting))
	}

	if c.Package != "" && !isValidPackageName(c.Package) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("package: %q doesn't look like a valid Go package identifier", c.Package))
	}

	return result
}

func isValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		isDigit := r >= '0' && r <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
