package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genclient/genclient/internal/config"
	"github.com/genclient/genclient/internal/watcher"
)

// runDev watches the OpenAPI input document (and the config file, if any)
// for changes and regenerates on every change, using the same
// polling-based watcher as the teacher's build pipeline rather than an
// OS-specific filesystem-notification library.
func runDev(args []string) int {
	fs := flag.NewFlagSet("dev", flag.ContinueOnError)
	input := fs.String("input", "", "Path to the OpenAPI document (JSON or YAML)")
	output := fs.String("output", "", "Output path for the generated Go file")
	configPath := fs.String("config", "", "Path to genclient.config.json/.yaml")
	pkg := fs.String("package", "", "Generated package name")
	clientType := fs.String("client-type", "", "Generated client struct name")
	tagRouting := fs.String("tag-routing", "", "flat | tagged | both")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	cwd, _ := os.Getwd()
	cfgResult, err := loadOrDiscoverConfig(*configPath, cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	cfg := resolveConfig(cfgResult, *input, *output, *pkg, *clientType, *tagRouting)

	if res := cfg.ValidateDetailed(); !res.IsValid() {
		for _, e := range res.Errors {
			fmt.Fprintf(os.Stderr, "error: %s\n", e)
		}
		return 1
	}

	watched := []string{cfg.Input}
	if cfgResult.Path != "" {
		watched = append(watched, cfgResult.Path)
	}

	regenerate := func() {
		if runGenerate(flattenFlags(cfg)) != 0 {
			fmt.Fprintln(os.Stderr, "genclient dev: regeneration failed, waiting for next change")
		}
	}

	fmt.Fprintf(os.Stderr, "genclient dev: watching %s\n", cfg.Input)
	regenerate()

	w := watcher.New(watchDirs(watched), []string{".json", ".yaml", ".yml"}, 200*time.Millisecond, func(events []watcher.Event) {
		for _, ev := range events {
			fmt.Fprintf(os.Stderr, "genclient dev: %s %s\n", ev.Op, ev.Path)
		}
		regenerate()
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		w.Stop()
	}()

	if err := w.Watch(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func watchDirs(files []string) []string {
	dirs := map[string]bool{}
	for _, f := range files {
		dirs[dirOf(f)] = true
	}
	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	return out
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i]
		}
	}
	return "."
}

// flattenFlags re-renders a resolved config as an explicit flag slice, so
// each regeneration pass goes through the same runGenerate flag-parsing
// path as a one-shot invocation.
func flattenFlags(cfg *config.Config) []string {
	return []string{
		"--input", cfg.Input,
		"--output", cfg.Output,
		"--package", cfg.Package,
		"--client-type", cfg.ClientType,
		"--tag-routing", cfg.TagRouting,
	}
}
