// Package config holds generator configuration: where the OpenAPI document
// comes from, where generated Go source goes, and the handful of naming and
// hook knobs the generator exposes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"
)

// Config is the genclient generator configuration.
type Config struct {
	// Input is the path to the OpenAPI document (JSON or YAML).
	Input string `json:"input" yaml:"input"`
	// Output is the path to the generated Go source file.
	Output string `json:"output" yaml:"output"`
	// Package is the package name for the generated file (default "client").
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	// ClientType is the generated client struct name (default "Client").
	ClientType string `json:"clientType,omitempty" yaml:"clientType,omitempty"`
	// TagRouting controls whether per-tag extension traits are emitted
	// in addition to the flat client ("flat", "tagged", or "both";
	// default "both" per spec.md §4.7).
	TagRouting string `json:"tagRouting,omitempty" yaml:"tagRouting,omitempty"`
	// Hooks names pre/post hook functions by qualified Go identifier (e.g.
	// "myapp/hooks.BeforeSend"). It is only loaded from the config file:
	// the emitter does not read it, and generated code calls no hooks.
	Hooks HooksConfig `json:"hooks,omitempty" yaml:"hooks,omitempty"`
}

// HooksConfig names optional pre/post request hook functions.
type HooksConfig struct {
	PreHook  string `json:"preHook,omitempty" yaml:"preHook,omitempty"`
	PostHook string `json:"postHook,omitempty" yaml:"postHook,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Package:    "client",
		ClientType: "Client",
		TagRouting: "both",
	}
}

// Discover searches dir for a genclient config file, checking in priority
// order genclient.config.json then genclient.config.yaml.
func Discover(dir string) string {
	candidates := []string{
		filepath.Join(dir, "genclient.config.json"),
		filepath.Join(dir, "genclient.config.yaml"),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads and parses a genclient config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	cfg := DefaultConfig()
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (expected .json, .yaml, or .yml)", filepath.Ext(path))
	}

	if vr := cfg.ValidateDetailed(); !vr.IsValid() {
		return nil, fmt.Errorf("invalid config in %q: %v", path, vr.Errors)
	}

	return &cfg, nil
}
