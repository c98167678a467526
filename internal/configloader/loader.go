// Package configloader discovers, loads, merges, and validates gowikitext
// configuration from files, environment variables, and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gowikitext/internal/logging"
	"github.com/yaklabco/gowikitext/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to start project config discovery from.
	// Empty means the current working directory.
	WorkingDir string

	// ExplicitPath is a config file given via --config. When set, project
	// config discovery is skipped and the file must exist.
	ExplicitPath string

	// IgnoreSystemConfig skips the system-wide config.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips the user-level config.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips project config discovery.
	IgnoreProjectConfig bool

	// IgnoreEnv skips GOWIKITEXT_* environment variables.
	IgnoreEnv bool

	// Verbose logs each config source as it is considered.
	Verbose bool

	// CLIConfig carries values from command-line flags. It has the highest
	// precedence.
	CLIConfig *config.Config
}

// LoadResult holds the merged configuration and where it came from.
type LoadResult struct {
	// Config is the fully merged and validated configuration.
	Config *config.Config

	// Paths are the config file paths that were discovered.
	Paths *ConfigPaths

	// LoadedFrom lists the file paths that actually contributed, in order
	// of increasing precedence.
	LoadedFrom []string

	// Warnings are non-fatal validation messages.
	Warnings []string
}

// Load builds the effective configuration. Sources are merged in order of
// increasing precedence: defaults, system config, user config, project or
// explicit config, environment variables, CLI flags.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	paths, err := discoverSources(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Paths: paths}

	var layers []*config.Config
	addFileLayer := func(path string) error {
		if path == "" {
			return nil
		}
		cfg, loadErr := loadConfigFile(path)
		if loadErr != nil {
			return loadErr
		}
		if opts.Verbose {
			logger.Debug("loaded config file", logging.FieldPath, path)
		}
		layers = append(layers, cfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
		return nil
	}

	if err := addFileLayer(paths.System); err != nil {
		return nil, err
	}
	if err := addFileLayer(paths.User); err != nil {
		return nil, err
	}
	if paths.Explicit != "" {
		if err := addFileLayer(paths.Explicit); err != nil {
			return nil, err
		}
	} else if err := addFileLayer(paths.Project); err != nil {
		return nil, err
	}

	if !opts.IgnoreEnv {
		layers = append(layers, LoadFromEnv())
	}
	if opts.CLIConfig != nil {
		layers = append(layers, opts.CLIConfig)
	}

	merged := MergeAll(layers...)

	validationPath := paths.Explicit
	if validationPath == "" {
		validationPath = paths.Project
	}
	validation := Validate(merged, validationPath)
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}
	if !validation.Valid() {
		return nil, fmt.Errorf("invalid configuration: %s", validation.Errors[0].Error())
	}

	result.Config = merged
	return result, nil
}

// discoverSources resolves the config file paths to consider, honoring the
// Ignore* options and any explicit --config path.
func discoverSources(ctx context.Context, opts LoadOptions) (*ConfigPaths, error) {
	paths := &ConfigPaths{}

	if opts.ExplicitPath != "" {
		if !fileExists(opts.ExplicitPath) {
			return nil, fmt.Errorf("config file not found: %s", opts.ExplicitPath)
		}
		paths.Explicit = opts.ExplicitPath
	}

	discovered, err := DiscoverPaths(ctx, opts.WorkingDir)
	if err != nil {
		return nil, err
	}

	if !opts.IgnoreSystemConfig {
		paths.System = discovered.System
	}
	if !opts.IgnoreUserConfig {
		paths.User = discovered.User
	}
	if !opts.IgnoreProjectConfig && paths.Explicit == "" {
		paths.Project = discovered.Project
	}

	return paths, nil
}

// loadConfigFile reads and parses a YAML config file.
func loadConfigFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// WriteConfig writes a config file to path, refusing to overwrite an
// existing file unless force is set. Used by the init command.
func WriteConfig(path string, data []byte, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}

	return nil
}
