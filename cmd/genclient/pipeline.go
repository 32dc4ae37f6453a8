package main

import (
	"path/filepath"

	"github.com/genclient/genclient/internal/config"
)

// ConfigResult carries a loaded (or auto-discovered) config plus its
// location, so relative Input/Output paths in the config can be resolved
// against the directory the config file actually lives in.
type ConfigResult struct {
	Config *config.Config
	Path   string
	Dir    string
}

// loadOrDiscoverConfig loads a genclient config from the given path, or
// auto-discovers one in cwd if configPath is empty. Shared across
// generate and dev.
func loadOrDiscoverConfig(configPath, cwd string) (*ConfigResult, error) {
	result := &ConfigResult{Dir: cwd}

	if configPath != "" {
		resolved := configPath
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(cwd, resolved)
		}
		cfg, err := config.Load(resolved)
		if err != nil {
			return nil, err
		}
		result.Config = cfg
		result.Path = resolved
		result.Dir = filepath.Dir(resolved)
		return result, nil
	}

	if p := config.Discover(cwd); p != "" {
		cfg, err := config.Load(p)
		if err != nil {
			return nil, err
		}
		result.Config = cfg
		result.Path = p
		result.Dir = filepath.Dir(p)
		return result, nil
	}

	return result, nil
}
