package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single configuration layer without applying defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads a testharness.yaml file, overlays it on the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	layer, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg, err := Merge(Default(), layer)
	if err != nil {
		return nil, fmt.Errorf("merging config %s: %w", path, err)
	}

	if errs := Validate(cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return cfg, nil
}

// HierarchicalOptions controls layered config loading.
type HierarchicalOptions struct {
	ProjectPath      string
	SystemConfigPath string
	UserConfigPath   string
	NoInherit        bool
}

// HierarchicalResult is the merged config plus per-layer load status.
type HierarchicalResult struct {
	Config *Config
	Layers []ConfigLayerInfo
}

// LoadHierarchical discovers the system, user and project layers, merges the
// ones that exist over the defaults and validates the result. Missing layer
// files are skipped.
func LoadHierarchical(opts HierarchicalOptions) (*HierarchicalResult, error) {
	layers := DiscoverPaths(DiscoverOptions{
		ProjectPath:      opts.ProjectPath,
		SystemConfigPath: opts.SystemConfigPath,
		UserConfigPath:   opts.UserConfigPath,
		NoInherit:        opts.NoInherit,
	})
	configs := []*Config{Default()}

	for i := range layers {
		data, err := os.ReadFile(layers[i].Path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			layers[i].Err = err
			return nil, fmt.Errorf("reading %s config %s: %w", layers[i].Level, layers[i].Path, err)
		}

		layer, err := Parse(data)
		if err != nil {
			layers[i].Err = err
			return nil, fmt.Errorf("parsing %s config %s: %w", layers[i].Level, layers[i].Path, err)
		}

		configs = append(configs, layer)
		layers[i].Loaded = true
	}

	merged, err := MergeAll(configs)
	if err != nil {
		return nil, fmt.Errorf("merging config layers: %w", err)
	}

	if errs := Validate(merged); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &HierarchicalResult{Config: merged, Layers: layers}, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	for i, ext := range cfg.ImageExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Sprintf("image_extensions[%d]: '%s' must start with '.' — e.g. '.png'", i, ext))
		}
	}

	if cfg.Git.DefaultBranch == "" {
		errs = append(errs, "git: 'default_branch' is required")
	}

	if cfg.Build.Script == "" {
		errs = append(errs, "build: 'script' is required")
	}
	if cfg.Build.MakeTool == "" {
		errs = append(errs, "build: 'make_tool' is required")
	}
	if cfg.Build.PreBuildJobs < 1 {
		errs = append(errs, fmt.Sprintf("build: 'prebuild_jobs' must be at least 1, got %d", cfg.Build.PreBuildJobs))
	}
	if cfg.Build.AllJobs < 1 {
		errs = append(errs, fmt.Sprintf("build: 'all_jobs' must be at least 1, got %d", cfg.Build.AllJobs))
	}

	if cfg.Directories.RemoveHelper == "" {
		errs = append(errs, "directories: 'remove_helper' is required")
	}

	if cfg.Mail.WindowsTool == "" || cfg.Mail.UnixTool == "" {
		errs = append(errs, "mail: 'windows_tool' and 'unix_tool' are required")
	}

	return errs
}
