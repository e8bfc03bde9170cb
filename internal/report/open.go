package report

import (
	"context"
	"fmt"
	"os"

	"github.com/bianoble/testharness/internal/runner"
)

// OpenDir shows dir in the platform file browser. A missing dir is ignored.
func OpenDir(ctx context.Context, r runner.Runner, goos, dir string) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}

	cmd := runner.Command{Binary: "nautilus", Args: []string{"--browser", dir}}
	if goos == "windows" {
		cmd = runner.Command{Binary: "explorer.exe", Args: []string{dir}}
	}
	if r == nil {
		r = &runner.Exec{}
	}
	if _, err := r.Run(ctx, cmd); err != nil {
		return fmt.Errorf("opening %s: %w", dir, err)
	}
	return nil
}
