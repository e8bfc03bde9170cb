// Package sandbox confines file writes to a destination root.
package sandbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned by Root.Copy when the destination is already present.
var ErrExists = errors.New("destination already exists")

// ValidatePath resolves relPath under root and verifies the result stays
// inside root once symlinks are followed. The target need not exist.
func ValidatePath(root, relPath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolving root symlinks: %w", err)
	}

	resolved, err := resolveExisting(filepath.Join(realRoot, relPath))
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", relPath, err)
	}

	if resolved != realRoot && !strings.HasPrefix(resolved, realRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path '%s' resolves to '%s' which is outside the destination root '%s'", relPath, resolved, realRoot)
	}
	return resolved, nil
}

// resolveExisting follows symlinks along the longest existing prefix of
// path and re-appends the missing tail.
func resolveExisting(path string) (string, error) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved, nil
	}
	dir := filepath.Dir(path)
	if dir == path {
		return path, nil
	}
	resolvedDir, err := resolveExisting(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(path)), nil
}

// Root confines writes to Dir.
//
// A strict Root refuses any path that resolves outside Dir once symlinks are
// followed. With FollowLinks, relPath only has to be lexically local to Dir:
// symlinks already present under Dir are written through, so a destination
// subdirectory linked to shared storage receives its files there.
type Root struct {
	Dir         string
	FollowLinks bool
}

// Resolve returns the path relPath names under the root.
func (r Root) Resolve(relPath string) (string, error) {
	if !r.FollowLinks {
		return ValidatePath(r.Dir, relPath)
	}
	if !filepath.IsLocal(relPath) {
		return "", fmt.Errorf("path '%s' escapes the destination root '%s'", relPath, r.Dir)
	}
	return filepath.Join(r.Dir, relPath), nil
}

// MkdirAll creates relPath and its parents under the root.
func (r Root) MkdirAll(relPath string, perm os.FileMode) error {
	resolved, err := r.Resolve(relPath)
	if err != nil {
		return err
	}
	return os.MkdirAll(resolved, perm)
}

// Copy copies the regular file src to relPath under the root, keeping src's
// permission bits. It never replaces an existing destination: ErrExists is
// returned instead. Content is staged in a temp file in the destination
// directory and renamed into place.
func (r Root) Copy(relPath, src string) error {
	dst, err := r.Resolve(relPath)
	if err != nil {
		return err
	}
	return copyNew(dst, src)
}

func copyNew(dst, src string) error {
	if _, err := os.Lstat(dst); err == nil {
		return ErrExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".testharness-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	done := false
	defer func() {
		if !done {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	// Another writer may have won while we were copying.
	if _, err := os.Lstat(dst); err == nil {
		return ErrExists
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", dst, err)
	}
	done = true
	return nil
}
