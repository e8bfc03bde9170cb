// Package dirs prepares harness working directories: it creates missing
// directories and empties existing ones so that clone and build steps always
// start from a fresh tree.
package dirs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/runner"
)

// DefaultRemoveHelper is the recursive-delete script used on Windows.
const DefaultRemoveHelper = "RemoveDirectoryTree.bat"

// Error describes a failed make or clean.
type Error struct {
	Op       string // "make" or "clean"
	Path     string
	ExitCode int // remove helper exit status, when one ran
	Err      error
}

func (e *Error) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("%s directory %s: %s (exit code %d)", e.Op, e.Path, e.Err, e.ExitCode)
	}
	return fmt.Sprintf("%s directory %s: %s", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Manager creates and cleans directories.
type Manager struct {
	// Runner executes the remove helper on Windows. Nil uses runner.Exec.
	Runner runner.Runner
	// GOOS selects platform behavior. Empty means runtime.GOOS.
	GOOS string
	// RemoveHelper overrides DefaultRemoveHelper.
	RemoveHelper string
	Logger       *zap.Logger
}

// Make creates path and any missing parents. An existing directory is left
// untouched.
func (m *Manager) Make(path string) error {
	if err := checkPath(path); err != nil {
		return &Error{Op: "make", Path: path, Err: err}
	}
	if isDir(path) {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		m.logger().Error("creating directory failed", zap.String("path", path), zap.Error(err))
		return &Error{Op: "make", Path: path, Err: err}
	}
	m.logger().Debug("created directory", zap.String("path", path))
	return nil
}

// Clean removes everything under path and leaves an empty directory behind.
func (m *Manager) Clean(ctx context.Context, path string) error {
	if err := checkPath(path); err != nil {
		return &Error{Op: "clean", Path: path, Err: err}
	}

	if m.goos() == "windows" {
		helper := m.RemoveHelper
		if helper == "" {
			helper = DefaultRemoveHelper
		}
		res, err := m.runner().Run(ctx, runner.Command{Binary: runner.Local(helper), Args: []string{path}})
		if err != nil {
			m.logger().Error("remove helper failed to run", zap.String("path", path), zap.Error(err))
			return &Error{Op: "clean", Path: path, Err: err}
		}
		if !res.Success() {
			m.logger().Error("remove helper reported failure",
				zap.String("path", path),
				zap.Int("exit_code", res.ExitCode),
				zap.String("output", res.Output))
			return &Error{Op: "clean", Path: path, ExitCode: res.ExitCode, Err: fmt.Errorf("%s failed", helper)}
		}
	} else {
		if err := os.RemoveAll(path); err != nil {
			m.logger().Error("removing directory tree failed", zap.String("path", path), zap.Error(err))
			return &Error{Op: "clean", Path: path, Err: err}
		}
	}

	if !exists(path) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return &Error{Op: "clean", Path: path, Err: fmt.Errorf("recreating: %w", err)}
		}
	}

	empty, err := isEmpty(path)
	if err != nil {
		return &Error{Op: "clean", Path: path, Err: err}
	}
	if !empty {
		return &Error{Op: "clean", Path: path, Err: errors.New("directory is not empty after clean")}
	}

	m.logger().Debug("cleaned directory", zap.String("path", path))
	return nil
}

// CleanOrMake ensures path exists and is empty: a missing path is created,
// an existing one is cleaned.
func (m *Manager) CleanOrMake(ctx context.Context, path string) error {
	if !isDir(path) {
		return m.Make(path)
	}
	return m.Clean(ctx, path)
}

func (m *Manager) goos() string {
	if m.GOOS == "" {
		return runtime.GOOS
	}
	return m.GOOS
}

func (m *Manager) runner() runner.Runner {
	if m.Runner == nil {
		return &runner.Exec{Logger: m.Logger}
	}
	return m.Runner
}

func (m *Manager) logger() *zap.Logger {
	if m.Logger == nil {
		return zap.NewNop()
	}
	return m.Logger
}

// checkPath refuses paths whose removal would be catastrophic.
func checkPath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	clean := filepath.Clean(path)
	if clean == "." || clean == ".." {
		return fmt.Errorf("refusing unsafe path %q", path)
	}
	if clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return fmt.Errorf("refusing filesystem root %q", path)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
