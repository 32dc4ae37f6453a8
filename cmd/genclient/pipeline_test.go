package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrDiscoverConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "genclient.config.json")
	os.WriteFile(cfgPath, []byte(`{"input":"api.json","output":"out/client.go"}`), 0o644)

	result, err := loadOrDiscoverConfig(cfgPath, dir)
	if err != nil {
		t.Fatalf("loadOrDiscoverConfig error: %v", err)
	}
	if result.Config == nil {
		t.Fatal("expected a loaded config")
	}
	if result.Config.Input != "api.json" {
		t.Errorf("Input = %q, want %q", result.Config.Input, "api.json")
	}
	if result.Path != cfgPath {
		t.Errorf("Path = %q, want %q", result.Path, cfgPath)
	}
}

func TestLoadOrDiscoverConfig_RelativePath(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "genclient.config.json"), []byte(`{"input":"api.json","output":"client.go"}`), 0o644)

	result, err := loadOrDiscoverConfig("genclient.config.json", dir)
	if err != nil {
		t.Fatalf("loadOrDiscoverConfig error: %v", err)
	}
	if result.Dir != dir {
		t.Errorf("Dir = %q, want %q", result.Dir, dir)
	}
}

func TestLoadOrDiscoverConfig_AutoDiscover(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "genclient.config.json"), []byte(`{"input":"discovered.json","output":"client.go"}`), 0o644)

	result, err := loadOrDiscoverConfig("", dir)
	if err != nil {
		t.Fatalf("loadOrDiscoverConfig error: %v", err)
	}
	if result.Config == nil || result.Config.Input != "discovered.json" {
		t.Fatalf("expected auto-discovered config, got %+v", result.Config)
	}
}

func TestLoadOrDiscoverConfig_NoConfigFound(t *testing.T) {
	dir := t.TempDir()
	result, err := loadOrDiscoverConfig("", dir)
	if err != nil {
		t.Fatalf("loadOrDiscoverConfig error: %v", err)
	}
	if result.Config != nil {
		t.Errorf("expected nil Config when nothing discovered, got %+v", result.Config)
	}
	if result.Dir != dir {
		t.Errorf("Dir = %q, want %q", result.Dir, dir)
	}
}

func TestLoadOrDiscoverConfig_MissingExplicitPath(t *testing.T) {
	dir := t.TempDir()
	_, err := loadOrDiscoverConfig(filepath.Join(dir, "nope.json"), dir)
	if err == nil {
		t.Error("expected error for missing explicit config path")
	}
}
