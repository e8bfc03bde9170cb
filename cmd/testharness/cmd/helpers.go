package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bianoble/testharness/pkg/testharness"
)

// newClient loads the layered config and returns a library client.
func newClient() (*testharness.Client, error) {
	client, err := testharness.New(testharness.Options{
		ConfigPath: configPath,
		NoInherit:  noInherit,
		StrictCopy: copyStrict,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("using config %s: %w", configPath, err)
	}
	return client, nil
}

// info prints a line unless quiet mode is active.
func info(w io.Writer, format string, args ...any) {
	if !quiet {
		fmt.Fprintf(w, format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(w io.Writer, format string, args ...any) {
	if verbose {
		fmt.Fprintf(w, "  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
