// Package build compiles a cloned solution through the platform's build
// entry point: a batch script on Windows, make targets elsewhere.
package build

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/config"
	"github.com/bianoble/testharness/internal/runner"
)

// Request describes one build invocation.
type Request struct {
	ClonedDir     string
	SolutionPath  string // script builds only; passed to the script unchanged
	Configuration string
	Rebuild       bool
}

// TargetResult is the outcome of one build step.
type TargetResult struct {
	Target   string
	Command  string
	ExitCode int
	Output   string
	Err      error // set when the step could not run
}

// Failed reports whether the step did not complete successfully.
func (t TargetResult) Failed() bool {
	return t.Err != nil || t.ExitCode != 0
}

// Result holds every step a driver ran, in order.
type Result struct {
	Targets []TargetResult
}

// Failed returns the steps that did not succeed.
func (r *Result) Failed() []TargetResult {
	var failed []TargetResult
	for _, t := range r.Targets {
		if t.Failed() {
			failed = append(failed, t)
		}
	}
	return failed
}

// BuildError reports a build that did not succeed.
type BuildError struct {
	Solution      string
	Configuration string
	ExitCode      int
	Failed        []string // failed target names
	Err           error
}

func (e *BuildError) Error() string {
	msg := fmt.Sprintf("error building solution %s with configuration %s", e.Solution, e.Configuration)
	if len(e.Failed) > 0 {
		msg += fmt.Sprintf(": failed targets: %s", strings.Join(e.Failed, ", "))
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code %d)", e.ExitCode)
	}
	return msg
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Driver builds a cloned solution. Implementations always return a non-nil
// Result describing the steps they attempted, even alongside an error.
type Driver interface {
	Build(ctx context.Context, req Request) (*Result, error)
}

// NewDriver returns the driver for goos configured from cfg.
func NewDriver(goos string, cfg config.Build, r runner.Runner, logger *zap.Logger) Driver {
	if goos == "windows" {
		return &ScriptDriver{Script: cfg.Script, Runner: r, Logger: logger}
	}
	return &MakeDriver{
		Make:         cfg.MakeTool,
		PreBuildJobs: cfg.PreBuildJobs,
		AllJobs:      cfg.AllJobs,
		Runner:       r,
		Logger:       logger,
	}
}

func nopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

func runnerOrExec(r runner.Runner, l *zap.Logger) runner.Runner {
	if r == nil {
		return &runner.Exec{Logger: l}
	}
	return r
}
