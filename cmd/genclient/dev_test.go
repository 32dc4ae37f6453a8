package main

import (
	"sort"
	"testing"

	"github.com/genclient/genclient/internal/config"
)

func TestDirOf(t *testing.T) {
	cases := map[string]string{
		"/a/b/c.json": "/a/b",
		"api.json":    ".",
		"/api.json":   "",
	}
	for in, want := range cases {
		if got := dirOf(in); got != want {
			t.Errorf("dirOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWatchDirs_DedupsDirectories(t *testing.T) {
	got := watchDirs([]string{"/a/one.json", "/a/two.yaml", "/b/three.json"})
	sort.Strings(got)
	want := []string{"/a", "/b"}
	if len(got) != len(want) {
		t.Fatalf("watchDirs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("watchDirs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFlattenFlags_EmitsFlagValuePairs(t *testing.T) {
	cfg := &config.Config{
		Input:      "api.json",
		Output:     "client.go",
		Package:    "widgets",
		ClientType: "WidgetClient",
		TagRouting: "tagged",
	}
	flags := flattenFlags(cfg)

	fs := make(map[string]string)
	for i := 0; i+1 < len(flags); i += 2 {
		fs[flags[i]] = flags[i+1]
	}
	if fs["--input"] != "api.json" {
		t.Errorf("--input = %q, want %q", fs["--input"], "api.json")
	}
	if fs["--tag-routing"] != "tagged" {
		t.Errorf("--tag-routing = %q, want %q", fs["--tag-routing"], "tagged")
	}
}
