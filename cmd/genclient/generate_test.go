package main

import (
	"testing"

	"github.com/genclient/genclient/internal/config"
)

func TestResolveConfig_FlagsOverrideDefaults(t *testing.T) {
	cfgResult := &ConfigResult{Dir: "/proj"}
	cfg := resolveConfig(cfgResult, "api.json", "out/client.go", "widgets", "WidgetClient", "flat")

	if cfg.Input != "api.json" {
		t.Errorf("Input = %q, want %q", cfg.Input, "api.json")
	}
	if cfg.Output != "out/client.go" {
		t.Errorf("Output = %q, want %q", cfg.Output, "out/client.go")
	}
	if cfg.Package != "widgets" {
		t.Errorf("Package = %q, want %q", cfg.Package, "widgets")
	}
	if cfg.ClientType != "WidgetClient" {
		t.Errorf("ClientType = %q, want %q", cfg.ClientType, "WidgetClient")
	}
	if cfg.TagRouting != "flat" {
		t.Errorf("TagRouting = %q, want %q", cfg.TagRouting, "flat")
	}
}

func TestResolveConfig_DefaultsWhenNoFlagsOrConfig(t *testing.T) {
	cfgResult := &ConfigResult{Dir: "/proj"}
	cfg := resolveConfig(cfgResult, "", "", "", "", "")

	if cfg.Package != "client" {
		t.Errorf("Package = %q, want default %q", cfg.Package, "client")
	}
	if cfg.ClientType != "Client" {
		t.Errorf("ClientType = %q, want default %q", cfg.ClientType, "Client")
	}
	if cfg.TagRouting != "both" {
		t.Errorf("TagRouting = %q, want default %q", cfg.TagRouting, "both")
	}
}

func TestResolveConfig_RelativePathsResolvedAgainstConfigDir(t *testing.T) {
	cfgResult := &ConfigResult{
		Dir: "/proj/sub",
		Config: &config.Config{
			Input:  "api.json",
			Output: "out/client.go",
		},
	}
	cfg := resolveConfig(cfgResult, "", "", "", "", "")

	if cfg.Input != "/proj/sub/api.json" {
		t.Errorf("Input = %q, want %q", cfg.Input, "/proj/sub/api.json")
	}
	if cfg.Output != "/proj/sub/out/client.go" {
		t.Errorf("Output = %q, want %q", cfg.Output, "/proj/sub/out/client.go")
	}
}

func TestResolveConfig_AbsolutePathsFromConfigLeftAsIs(t *testing.T) {
	cfgResult := &ConfigResult{
		Dir: "/proj/sub",
		Config: &config.Config{
			Input:  "/abs/api.json",
			Output: "/abs/client.go",
		},
	}
	cfg := resolveConfig(cfgResult, "", "", "", "", "")

	if cfg.Input != "/abs/api.json" {
		t.Errorf("Input = %q, want unchanged %q", cfg.Input, "/abs/api.json")
	}
	if cfg.Output != "/abs/client.go" {
		t.Errorf("Output = %q, want unchanged %q", cfg.Output, "/abs/client.go")
	}
}

func TestResolveConfig_FlagInputWinsOverConfigFile(t *testing.T) {
	cfgResult := &ConfigResult{
		Dir: "/proj",
		Config: &config.Config{
			Input:  "from-config.json",
			Output: "from-config.go",
		},
	}
	cfg := resolveConfig(cfgResult, "from-flag.json", "", "", "", "")

	if cfg.Input != "from-flag.json" {
		t.Errorf("Input = %q, want flag value %q", cfg.Input, "from-flag.json")
	}
}
