// Package repo clones harness repositories and reads branch and remote
// information straight from .git metadata files.
package repo

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/dirs"
	"github.com/bianoble/testharness/internal/runner"
)

// Preparer readies a clone destination. *dirs.Manager satisfies it.
type Preparer interface {
	CleanOrMake(ctx context.Context, path string) error
}

// CleanOrMakeError reports that the clone destination could not be prepared.
type CleanOrMakeError struct {
	Destination string
	Err         error
}

func (e *CleanOrMakeError) Error() string {
	return fmt.Sprintf("failed to clean or make directory %s: %s", e.Destination, e.Err)
}

func (e *CleanOrMakeError) Unwrap() error {
	return e.Err
}

// CloneError reports a clone that failed to run or exited non-zero.
type CloneError struct {
	Source      string
	Branch      string
	Destination string
	ExitCode    int
	Output      string
	Err         error
}

func (e *CloneError) Error() string {
	msg := fmt.Sprintf("error cloning repository %s branch %s into %s", e.Source, e.Branch, e.Destination)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else {
		msg += fmt.Sprintf(": git exited with code %d", e.ExitCode)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += " — " + out
	}
	return msg
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// Cloner clones a single branch into a freshly prepared destination.
type Cloner struct {
	// Dirs prepares the destination. Nil means a dirs.Manager for the host
	// sharing Runner and Logger.
	Dirs   Preparer
	Runner runner.Runner
	Logger *zap.Logger
	// Git is the git binary. Empty means "git".
	Git string
}

// Clone empties or creates destination, then clones branch of source into
// it. It returns git's exit code (0) on success. A single attempt is made.
func (c *Cloner) Clone(ctx context.Context, source, branch, destination string) (int, error) {
	log := c.logger().With(
		zap.String("source", source),
		zap.String("branch", branch),
		zap.String("destination", destination))

	if err := c.preparer().CleanOrMake(ctx, destination); err != nil {
		log.Error("preparing clone destination failed", zap.Error(err))
		return -1, &CleanOrMakeError{Destination: destination, Err: err}
	}

	cmd := runner.Command{
		Binary: c.git(),
		Args:   []string{"clone", source, destination, "-b", branch},
		Env:    []string{"GIT_TERMINAL_PROMPT=0"},
	}
	log.Info("cloning repository")
	res, err := c.runner().Run(ctx, cmd)
	if err != nil {
		log.Error("git clone failed to run", zap.Error(err))
		return -1, &CloneError{Source: source, Branch: branch, Destination: destination, ExitCode: -1, Err: err}
	}
	if !res.Success() {
		log.Error("git clone failed", zap.Int("exit_code", res.ExitCode))
		return res.ExitCode, &CloneError{
			Source:      source,
			Branch:      branch,
			Destination: destination,
			ExitCode:    res.ExitCode,
			Output:      res.Output,
		}
	}

	log.Info("cloned repository", zap.Duration("duration", res.Duration))
	return res.ExitCode, nil
}

func (c *Cloner) preparer() Preparer {
	if c.Dirs == nil {
		return &dirs.Manager{Runner: c.runner(), Logger: c.Logger}
	}
	return c.Dirs
}

func (c *Cloner) git() string {
	if c.Git == "" {
		return "git"
	}
	return c.Git
}

func (c *Cloner) runner() runner.Runner {
	if c.Runner == nil {
		return &runner.Exec{Logger: c.Logger}
	}
	return c.Runner
}

func (c *Cloner) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
