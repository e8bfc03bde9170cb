// Package testharness provides the public Go library API for the test
// harness helpers.
//
// A Client loads layered configuration once and exposes the operations a
// test driver needs: preparing directories, cloning a branch, building the
// clone, mirroring reference data and reporting results.
//
// # Basic Usage
//
//	client, err := testharness.New(testharness.Options{
//	    ConfigPath: "testharness.yaml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Clone a branch into a clean destination
//	_, err = client.Clone(ctx, "https://example.com/falcor.git", "master", "/work/falcor")
//
//	// Build it
//	result, err := client.Build(ctx, testharness.BuildRequest{
//	    ClonedDir:     "/work/falcor",
//	    SolutionPath:  "Falcor.sln",
//	    Configuration: "ReleaseD3D12",
//	})
package testharness

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/build"
	"github.com/bianoble/testharness/internal/config"
	"github.com/bianoble/testharness/internal/dirs"
	"github.com/bianoble/testharness/internal/logging"
	"github.com/bianoble/testharness/internal/replicate"
	"github.com/bianoble/testharness/internal/repo"
	"github.com/bianoble/testharness/internal/report"
	"github.com/bianoble/testharness/internal/runner"
)

// DefaultConfigPath is the project config file name.
const DefaultConfigPath = "testharness.yaml"

// Options configures a Client.
type Options struct {
	// ConfigPath is the project-level config file. Default: "testharness.yaml".
	// A missing file means built-in defaults.
	ConfigPath string

	// NoInherit skips the system and user config layers.
	// TESTHARNESS_NO_INHERIT has the same effect.
	NoInherit bool

	// SystemConfigPath and UserConfigPath override the discovered layer paths.
	SystemConfigPath string
	UserConfigPath   string

	// GOOS selects platform behavior. Default: runtime.GOOS.
	GOOS string

	// Runner executes external tools. Default: os/exec.
	Runner Runner

	// StrictCopy makes Copy refuse destination paths that resolve outside the
	// destination directory instead of writing through symlinks under it.
	StrictCopy bool

	// Logger receives structured logs. Default: no logging.
	Logger *zap.Logger
}

// Client is the main entry point for the library.
type Client struct {
	cfg    *config.Config
	layers []config.ConfigLayerInfo
	goos   string
	strict bool
	runner runner.Runner
	logger *zap.Logger
	dirs   *dirs.Manager
}

// New loads configuration and returns a ready Client.
func New(opts Options) (*Client, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = DefaultConfigPath
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	loaded, err := config.LoadHierarchical(config.HierarchicalOptions{
		ProjectPath:      opts.ConfigPath,
		SystemConfigPath: opts.SystemConfigPath,
		UserConfigPath:   opts.UserConfigPath,
		NoInherit:        opts.NoInherit || config.EnvNoInherit(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	r := opts.Runner
	if r == nil {
		r = &runner.Exec{Logger: logging.Component(logger, "runner")}
	}

	return &Client{
		cfg:    loaded.Config,
		layers: loaded.Layers,
		goos:   opts.GOOS,
		strict: opts.StrictCopy,
		runner: r,
		logger: logger,
		dirs: &dirs.Manager{
			Runner:       r,
			GOOS:         opts.GOOS,
			RemoveHelper: loaded.Config.Directories.RemoveHelper,
			Logger:       logging.Component(logger, "dirs"),
		},
	}, nil
}

// Config returns the merged configuration.
func (c *Client) Config() *Config {
	return c.cfg
}

// Layers reports which config files were discovered and loaded.
func (c *Client) Layers() []ConfigLayer {
	return c.layers
}

// Make creates dir if it is missing.
func (c *Client) Make(dir string) error {
	return c.dirs.Make(dir)
}

// Prepare leaves dir existing and empty.
func (c *Client) Prepare(ctx context.Context, dir string) error {
	return c.dirs.CleanOrMake(ctx, dir)
}

// Clone prepares destination and clones branch of source into it.
func (c *Client) Clone(ctx context.Context, source, branch, destination string) (int, error) {
	cl := &repo.Cloner{
		Dirs:   c.dirs,
		Runner: c.runner,
		Logger: logging.Component(c.logger, "repo"),
	}
	return cl.Clone(ctx, source, branch, destination)
}

// Build compiles a cloned solution with the platform's driver.
func (c *Client) Build(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	d := build.NewDriver(c.goos, c.cfg.Build, c.runner, logging.Component(c.logger, "build"))
	return d.Build(ctx, req)
}

// Copy mirrors fromDir into toDir without overwriting existing files.
func (c *Client) Copy(ctx context.Context, fromDir, toDir string) (*CopyResult, error) {
	r := &replicate.Replicator{Strict: c.strict, Logger: logging.Component(c.logger, "replicate")}
	return r.Copy(ctx, fromDir, toDir)
}

// ExecutableDir returns the built executables directory relative to the clone.
func (c *Client) ExecutableDir(configuration, testSet string, asCollection bool) string {
	return build.ExecutableDir(configuration, testSet, asCollection, c.goos)
}

// IsSupportedImage reports whether name has a configured image extension.
func (c *Client) IsSupportedImage(name string) bool {
	return report.IsSupportedImage(name, c.cfg.ImageExtensions)
}

// ReportFilename names the report for a run.
func (c *Client) ReportFilename(testSets map[string]TestSetResult, configuration string) string {
	return report.Filename(testSets, configuration)
}

// SendReport mails attachments to the configured recipients.
func (c *Client) SendReport(ctx context.Context, subject string, attachments []string) error {
	m := &report.Mailer{
		Runner: c.runner,
		GOOS:   c.goos,
		Config: c.cfg.Mail,
		Logger: logging.Component(c.logger, "report"),
	}
	return m.Dispatch(ctx, subject, attachments)
}

// GitInfo reads the branch and origin URL of the repository at dir,
// falling back to the configured defaults.
func (c *Client) GitInfo(dir string) (*GitInfo, error) {
	return repo.Metadata(dir, repo.Defaults{
		Branch:    c.cfg.Git.DefaultBranch,
		RemoteURL: c.cfg.Git.DefaultRemoteURL,
	})
}

// OpenDir shows dir in the platform file browser.
func (c *Client) OpenDir(ctx context.Context, dir string) error {
	return report.OpenDir(ctx, c.runner, c.goos, dir)
}
