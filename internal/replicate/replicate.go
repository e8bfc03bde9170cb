// Package replicate mirrors a directory tree into another, adding only the
// files the destination does not already have.
package replicate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/bianoble/testharness/internal/sandbox"
)

// FileError records one entry that could not be mirrored.
type FileError struct {
	Path string // relative to the source root
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Result summarizes a Copy. Paths are relative to the source root.
type Result struct {
	Copied  []string
	Skipped []string // already present at the destination, or links to directories
	Failed  []FileError
}

// CopyError reports a Copy that left some entries unmirrored.
type CopyError struct {
	From   string
	To     string
	Failed []FileError
}

func (e *CopyError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("copying %s to %s: %d entries failed: %s",
		e.From, e.To, len(e.Failed), strings.Join(parts, "; "))
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *CopyError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, f := range e.Failed {
		errs = append(errs, f.Err)
	}
	return errs
}

// Replicator copies trees without overwriting.
type Replicator struct {
	// Strict refuses destination paths that resolve outside toDir. By default
	// symlinked directories under toDir are written through.
	Strict bool

	Logger *zap.Logger
}

// Copy mirrors every directory of fromDir under toDir and copies each file
// whose mirrored path does not already exist. Existing destination files are
// left untouched regardless of content. Per-entry failures are logged and
// collected; the walk continues and a *CopyError is returned at the end.
// An unreadable fromDir or a canceled ctx stops the walk immediately.
//
// Source symlinks to files are copied as the file they point to. Source
// symlinks to directories are not descended into and are reported as skipped.
func (r *Replicator) Copy(ctx context.Context, fromDir, toDir string) (*Result, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("from", fromDir), zap.String("to", toDir))

	info, err := os.Stat(fromDir)
	if err != nil {
		return nil, fmt.Errorf("reading source %s: %w", fromDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", fromDir)
	}
	if err := os.MkdirAll(toDir, 0755); err != nil {
		return nil, fmt.Errorf("creating destination %s: %w", toDir, err)
	}

	dst := sandbox.Root{Dir: toDir, FollowLinks: !r.Strict}
	result := &Result{}
	fail := func(rel string, err error) {
		log.Warn("could not copy entry", zap.String("path", rel), zap.Error(err))
		result.Failed = append(result.Failed, FileError{Path: rel, Err: err})
	}

	walkErr := filepath.WalkDir(fromDir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, relErr := filepath.Rel(fromDir, path)
		if relErr != nil {
			fail(path, relErr)
			return nil
		}
		if err != nil {
			if rel == "." {
				return err
			}
			fail(rel, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if err := dst.MkdirAll(rel, 0755); err != nil {
				fail(rel, err)
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil && target.IsDir() {
				log.Debug("skipped directory link", zap.String("path", rel))
				result.Skipped = append(result.Skipped, rel)
				return nil
			}
		}

		switch err := dst.Copy(rel, path); {
		case err == nil:
			log.Debug("copied file", zap.String("path", rel))
			result.Copied = append(result.Copied, rel)
		case errors.Is(err, sandbox.ErrExists):
			result.Skipped = append(result.Skipped, rel)
		default:
			fail(rel, err)
		}
		return nil
	})
	if walkErr != nil {
		return result, fmt.Errorf("copying %s to %s: %w", fromDir, toDir, walkErr)
	}

	log.Info("copied directory",
		zap.Int("copied", len(result.Copied)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed", len(result.Failed)))

	if len(result.Failed) > 0 {
		return result, &CopyError{From: fromDir, To: toDir, Failed: result.Failed}
	}
	return result, nil
}
