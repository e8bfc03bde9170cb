package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bianoble/testharness/internal/build"
	"github.com/bianoble/testharness/internal/config"
)

// run executes the root command with args against an isolated config.
func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()

	// Flags bound to globals keep their last parsed value between runs.
	verbose, quiet, logFormat = false, false, "console"
	initForce, prepareCreateOnly, copyStrict = false, false, false
	reportSubject, reportConfiguration = "", "ReleaseD3D12"
	exeDirConfiguration, exeDirTestSet = "ReleaseD3D12", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath, "--no-inherit"}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "testharness.yaml")
}

func TestInitCreatesConfig(t *testing.T) {
	cfgPath := missingConfig(t)

	if _, err := run(t, cfgPath, "init"); err != nil {
		t.Fatalf("init: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Build.AllJobs != 24 || cfg.Git.DefaultBranch != "master" {
		t.Errorf("unexpected generated config: %+v", cfg)
	}
}

func TestInitRefusesOverwrite(t *testing.T) {
	cfgPath := missingConfig(t)
	if err := os.WriteFile(cfgPath, []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, cfgPath, "init")
	if err == nil {
		t.Fatal("expected error when file exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error should mention 'already exists': %v", err)
	}
}

func TestInitForceOverwrites(t *testing.T) {
	cfgPath := missingConfig(t)
	if err := os.WriteFile(cfgPath, []byte("old content"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, cfgPath, "init", "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != initTemplate {
		t.Error("file should contain the template after --force")
	}
}

func TestReportFilename(t *testing.T) {
	results := filepath.Join(t.TempDir(), "results.yaml")
	if err := os.WriteFile(results, []byte("A:\n  Success: true\nB:\n  Success: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, missingConfig(t), "report", "filename", results, "--configuration", "Debug")
	if err != nil {
		t.Fatalf("report filename: %v", err)
	}
	if out != "[FAILED]Debug_Results.html\n" {
		t.Errorf("output = %q", out)
	}
}

func TestReportSendRequiresSubject(t *testing.T) {
	_, err := run(t, missingConfig(t), "report", "send", "a.html")
	if err == nil || !strings.Contains(err.Error(), "--subject") {
		t.Errorf("expected --subject error, got %v", err)
	}
}

func TestExeDir(t *testing.T) {
	out, err := run(t, missingConfig(t), "exe-dir", "--configuration", "DebugVK", "--test-set", "Samples")
	if err != nil {
		t.Fatalf("exe-dir: %v", err)
	}
	want := build.ExecutableDir("DebugVK", "Samples", true, runtime.GOOS) + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestGitInfo(t *testing.T) {
	repoDir := t.TempDir()
	gitDir := filepath.Join(repoDir, ".git")
	if err := os.MkdirAll(gitDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/feature/shadows\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(gitDir, "config"), []byte("[core]\n\tbare = false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, missingConfig(t), "git-info", repoDir)
	if err != nil {
		t.Fatalf("git-info: %v", err)
	}
	want := "branch: shadows\nremote: " + config.Default().Git.DefaultRemoteURL + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestPrepareAndCopy(t *testing.T) {
	from := t.TempDir()
	if err := os.MkdirAll(filepath.Join(from, "Media"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(from, "Media", "ref.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}
	to := filepath.Join(t.TempDir(), "results")
	cfgPath := missingConfig(t)

	if _, err := run(t, cfgPath, "prepare", "--create-only", to); err != nil {
		t.Fatalf("prepare: %v", err)
	}
	out, err := run(t, cfgPath, "copy", from, to)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if !strings.Contains(out, "Copied 1 files, skipped 0 existing, 0 failed") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(to, "Media", "ref.png")); err != nil {
		t.Errorf("file not copied: %v", err)
	}

	out, err = run(t, cfgPath, "copy", from, to)
	if err != nil {
		t.Fatalf("second copy: %v", err)
	}
	if !strings.Contains(out, "Copied 0 files, skipped 1 existing") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestInfoShowsEffectiveConfig(t *testing.T) {
	cfgPath := missingConfig(t)
	if err := os.WriteFile(cfgPath, []byte("version: 1\ngit:\n  default_branch: develop\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, cfgPath, "info")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"default branch:  develop", "(loaded)", "All -j24"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidConfigFails(t *testing.T) {
	cfgPath := missingConfig(t)
	if err := os.WriteFile(cfgPath, []byte("version: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, cfgPath, "info")
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUnknownLogFormat(t *testing.T) {
	_, err := run(t, missingConfig(t), "--log-format", "xml", "exe-dir")
	if err == nil || !strings.Contains(err.Error(), "unknown log format") {
		t.Errorf("expected log format error, got %v", err)
	}
}
