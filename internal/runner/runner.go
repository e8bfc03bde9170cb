// Package runner executes the external tools the harness coordinates
// (git, build scripts, make, mail utilities) and reports their exit status.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Command describes a single process invocation.
type Command struct {
	Binary string
	Args   []string

	// Dir is the working directory for the child process. Empty means the
	// harness's own working directory. The harness process never chdirs.
	Dir string

	// Env is appended to the inherited environment.
	Env []string
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Binary
	}
	return c.Binary + " " + strings.Join(c.Args, " ")
}

// Result holds the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Output   string // combined stdout and stderr
	Duration time.Duration
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Runner runs commands. A nonzero exit is reported through Result, not as
// an error; the error is reserved for processes that could not be started
// or were interrupted.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// StartError reports a process that could not be started or did not finish.
type StartError struct {
	Command string
	Err     error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("running %s: %s", e.Command, e.Err)
}

func (e *StartError) Unwrap() error {
	return e.Err
}

// Exec runs commands on the host with os/exec.
type Exec struct {
	Logger *zap.Logger
}

// Run executes cmd and blocks until it exits or ctx is done.
func (e *Exec) Run(ctx context.Context, cmd Command) (*Result, error) {
	log := e.logger()
	if cmd.Binary == "" {
		return nil, &StartError{Command: cmd.String(), Err: errors.New("binary is required")}
	}

	c := exec.CommandContext(ctx, cmd.Binary, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out

	log.Debug("starting process", zap.String("command", cmd.String()), zap.String("dir", cmd.Dir))
	start := time.Now()
	err := c.Run()
	result := &Result{Output: out.String(), Duration: time.Since(start)}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			log.Debug("process exited non-zero",
				zap.String("command", cmd.String()),
				zap.Int("exit_code", result.ExitCode),
				zap.Duration("duration", result.Duration))
			return result, nil
		}
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		log.Warn("process failed to run", zap.String("command", cmd.String()), zap.Error(err))
		return nil, &StartError{Command: cmd.String(), Err: err}
	}

	log.Debug("process completed",
		zap.String("command", cmd.String()),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (e *Exec) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Local resolves a bare program name to an absolute path when a file of that
// name exists in the harness's working directory. os/exec refuses programs
// found only in the current directory, so helper scripts shipped next to the
// harness must be named absolutely. Names with a directory part, and names
// with no local file, are returned unchanged and looked up on PATH when run.
func Local(name string) string {
	if name == "" || filepath.Base(name) != name {
		return name
	}
	info, err := os.Stat(name)
	if err != nil || info.IsDir() {
		return name
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return name
	}
	return abs
}
