package oapi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Load reads an OpenAPI document from path (JSON or YAML, by extension),
// validates its declared version is 3.0.x, and dereferences its schema $refs
// (internal and external; see Dereference) before returning it. The returned Document is
// ready for internal/lowering to walk directly.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading openapi document %q: %w", path, err)
	}

	doc, err := decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("parsing openapi document %q: %w", path, err)
	}

	if err := validateVersion(doc.OpenAPI); err != nil {
		return nil, fmt.Errorf("openapi document %q: %w", path, err)
	}

	if err := Dereference(doc, filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("dereferencing openapi document %q: %w", path, err)
	}

	return doc, nil
}

func decode(path string, data []byte) (*Document, error) {
	var doc Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported document extension %q (expected .json, .yaml, or .yml)", ext)
	}
	return &doc, nil
}

// validateVersion rejects anything that isn't a semver-comparable 3.0.x
// release. This generator does not attempt Swagger 2.0 up-conversion
// (spec.md §1 Non-goals): that must have already happened upstream.
func validateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("missing openapi version field")
	}
	v := "v" + version
	if !semver.IsValid(v) {
		return fmt.Errorf("openapi version %q is not a valid semantic version", version)
	}
	if semver.Major(v) != "v3" || semver.MajorMinor(v) != "v3.0" {
		return fmt.Errorf("unsupported openapi version %q (only 3.0.x is supported)", version)
	}
	return nil
}
