package repo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// GitMetadataError reports a .git metadata file that could not be read.
type GitMetadataError struct {
	Path string
	Err  error
}

func (e *GitMetadataError) Error() string {
	return fmt.Sprintf("reading git metadata %s: %s", e.Path, e.Err)
}

func (e *GitMetadataError) Unwrap() error {
	return e.Err
}

// Defaults are used when a metadata file exists but lacks the needed line.
type Defaults struct {
	Branch    string
	RemoteURL string
}

// Info is the branch and remote of a working copy.
type Info struct {
	Branch    string
	RemoteURL string
}

// BranchName returns the checked-out branch of the working copy at baseDir
// by reading the first line of .git/HEAD. A detached HEAD (no "ref: " line)
// yields defaultBranch.
func BranchName(baseDir, defaultBranch string) (string, error) {
	path := filepath.Join(baseDir, ".git", "HEAD")
	f, err := os.Open(path)
	if err != nil {
		return "", &GitMetadataError{Path: path, Err: err}
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", &GitMetadataError{Path: path, Err: err}
	}

	return parseHead(line, defaultBranch), nil
}

func parseHead(line, defaultBranch string) string {
	idx := strings.Index(line, "ref: ")
	if idx < 0 {
		return defaultBranch
	}
	ref := strings.TrimRight(line[idx+len("ref: "):], "\r\n")
	name := ref[strings.LastIndex(ref, "/")+1:]
	if name == "" {
		return defaultBranch
	}
	return name
}

// RemoteURL returns the first "url = " value in .git/config, or defaultURL
// when none is present.
func RemoteURL(baseDir, defaultURL string) (string, error) {
	path := filepath.Join(baseDir, ".git", "config")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &GitMetadataError{Path: path, Err: err}
	}
	return parseRemoteURL(string(data), defaultURL), nil
}

func parseRemoteURL(config, defaultURL string) string {
	idx := strings.Index(config, "url = ")
	if idx < 0 {
		return defaultURL
	}
	rest := config[idx+len("url = "):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimRight(rest, "\r")
}

// Metadata reads both the branch and remote URL of the working copy.
func Metadata(baseDir string, defaults Defaults) (*Info, error) {
	branch, err := BranchName(baseDir, defaults.Branch)
	if err != nil {
		return nil, err
	}
	url, err := RemoteURL(baseDir, defaults.RemoteURL)
	if err != nil {
		return nil, err
	}
	return &Info{Branch: branch, RemoteURL: url}, nil
}
