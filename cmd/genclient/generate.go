package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"

	"github.com/genclient/genclient/internal/config"
	"github.com/genclient/genclient/internal/generate"
)

const defaultRuntimeImportPath = "github.com/genclient/genclient/runtime"

// runGenerate is the default subcommand: it resolves config + flags into a
// config.Config, runs the full pipeline, and writes the formatted Go
// source to disk (or dumps the lowered IR to stdout with --dump-ir).
func runGenerate(args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	input := fs.String("input", "", "Path to the OpenAPI document (JSON or YAML)")
	output := fs.String("output", "", "Output path for the generated Go file")
	configPath := fs.String("config", "", "Path to genclient.config.json/.yaml")
	pkg := fs.String("package", "", "Generated package name")
	clientType := fs.String("client-type", "", "Generated client struct name")
	tagRouting := fs.String("tag-routing", "", "flat | tagged | both")
	dumpIR := fs.Bool("dump-ir", false, "Dump the lowered operation IR as JSON to stdout")
	noCache := fs.Bool("no-cache", false, "Ignore the incremental generation cache")

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

	if *dumpIR {
		return runDumpIR(cfg)
	}

	cachePath := generate.CachePath(cfg.Output)
	configHash := ""
	if cfgResult.Path != "" {
		configHash = generate.HashFile(cfgResult.Path)
	}
	inputHash := generate.HashFile(cfg.Input)

	if !*noCache {
		if c := generate.Load(cachePath); c.IsValid(configHash, inputHash) {
			fmt.Fprintf(os.Stderr, "genclient: %s is up to date\n", cfg.Output)
			return 0
		}
	}

	result, err := generate.Run(cfg, generate.Options{RuntimeImportPath: defaultRuntimeImportPath})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}

	if err := generate.WriteOutput(cfg, result.Source); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if !*noCache {
		_ = generate.Save(cachePath, generate.New(configHash, inputHash, cfg.Output))
	}

	fmt.Printf("generated %s\n", cfg.Output)
	return 0
}

// resolveConfig layers CLI flags over a discovered config file over
// config.DefaultConfig, in that priority order (flags win).
func resolveConfig(cfgResult *ConfigResult, input, output, pkg, clientType, tagRouting string) *config.Config {
	defaults := config.DefaultConfig()
	cfg := &defaults
	if cfgResult.Config != nil {
		cfg = cfgResult.Config
	}

	if input != "" {
		cfg.Input = input
	} else if cfg.Input != "" && !filepath.IsAbs(cfg.Input) {
		cfg.Input = filepath.Join(cfgResult.Dir, cfg.Input)
	}
	if output != "" {
		cfg.Output = output
	} else if cfg.Output != "" && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(cfgResult.Dir, cfg.Output)
	}
	if pkg != "" {
		cfg.Package = pkg
	}
	if clientType != "" {
		cfg.ClientType = clientType
	}
	if tagRouting != "" {
		cfg.TagRouting = tagRouting
	}
	return cfg
}

func runDumpIR(cfg *config.Config) int {
	dump, err := generate.LowerForDump(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	enc, err := json.Marshal(dump)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding IR: %v\n", err)
		return 1
	}
	os.Stdout.Write(enc)
	fmt.Println()
	return 0
}
