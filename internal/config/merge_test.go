package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMergeScalarsOverlayWins(t *testing.T) {
	base := Default()
	overlay := &Config{
		Git:   Git{DefaultBranch: "release"},
		Build: Build{AllJobs: 4},
		Mail:  Mail{Sender: "ci@example.com"},
	}

	result, err := Merge(base, overlay)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if result.Git.DefaultBranch != "release" {
		t.Errorf("default_branch = %q, want release", result.Git.DefaultBranch)
	}
	if result.Git.DefaultRemoteURL != base.Git.DefaultRemoteURL {
		t.Errorf("default_remote_url should be inherited, got %q", result.Git.DefaultRemoteURL)
	}
	if result.Build.AllJobs != 4 || result.Build.PreBuildJobs != 8 {
		t.Errorf("jobs = %d/%d, want 8/4", result.Build.PreBuildJobs, result.Build.AllJobs)
	}
	if result.Mail.Sender != "ci@example.com" || result.Mail.UnixTool != "sendEmail" {
		t.Errorf("mail = %+v", result.Mail)
	}
}

func TestMergeImageExtensionsReplace(t *testing.T) {
	base := &Config{ImageExtensions: []string{".png", ".jpg"}}
	overlay := &Config{ImageExtensions: []string{".exr"}}

	result, err := Merge(base, overlay)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.ImageExtensions) != 1 || result.ImageExtensions[0] != ".exr" {
		t.Errorf("image_extensions = %v, want [.exr]", result.ImageExtensions)
	}

	result, err = Merge(base, &Config{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.ImageExtensions) != 2 {
		t.Errorf("empty overlay should keep base list, got %v", result.ImageExtensions)
	}
}

func TestMergeVersionMismatch(t *testing.T) {
	_, err := Merge(&Config{Version: 1}, &Config{Version: 2})
	if err == nil {
		t.Fatal("expected version mismatch error")
	}
	if !strings.Contains(err.Error(), "version mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMergeVersionZeroInherits(t *testing.T) {
	result, err := Merge(&Config{Version: 1}, &Config{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Version != 1 {
		t.Errorf("version = %d, want 1", result.Version)
	}
}

func TestMergeNilBase(t *testing.T) {
	overlay := &Config{Version: 1}
	result, err := Merge(nil, overlay)
	if err != nil {
		t.Fatal(err)
	}
	if result != overlay {
		t.Error("nil base should return overlay")
	}
}

func TestMergeNilOverlay(t *testing.T) {
	base := &Config{Version: 1}
	result, err := Merge(base, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result != base {
		t.Error("nil overlay should return base")
	}
}

func TestMergeAllThreeLayers(t *testing.T) {
	system := Default()
	user := &Config{Mail: Mail{RecipientsFile: "/home/u/recipients.txt"}}
	project := &Config{Git: Git{DefaultBranch: "feature"}, Mail: Mail{Server: "relay.local"}}

	result, err := MergeAll([]*Config{system, user, project})
	if err != nil {
		t.Fatalf("MergeAll: %v", err)
	}
	if result.Mail.RecipientsFile != "/home/u/recipients.txt" {
		t.Errorf("recipients_file = %q", result.Mail.RecipientsFile)
	}
	if result.Mail.Server != "relay.local" {
		t.Errorf("server = %q", result.Mail.Server)
	}
	if result.Git.DefaultBranch != "feature" {
		t.Errorf("default_branch = %q", result.Git.DefaultBranch)
	}
}

func TestMergeAllEmpty(t *testing.T) {
	_, err := MergeAll(nil)
	if err == nil {
		t.Fatal("expected error for empty configs")
	}
}

func TestLoadHierarchicalNoInherit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "testharness.yaml")
	if err := os.WriteFile(path, []byte(exampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath: path,
		NoInherit:   true,
	})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}

	if result.Config.Git.DefaultBranch != "develop" {
		t.Errorf("default_branch = %q, want develop", result.Config.Git.DefaultBranch)
	}
	if len(result.Layers) != 1 {
		t.Errorf("expected 1 layer with NoInherit, got %d", len(result.Layers))
	}
	if !result.Layers[0].Loaded {
		t.Error("project layer should be loaded")
	}
}

func TestLoadHierarchicalMergesLayers(t *testing.T) {
	dir := t.TempDir()

	sysPath := filepath.Join(dir, "system", "testharness.yaml")
	if err := os.MkdirAll(filepath.Dir(sysPath), 0755); err != nil {
		t.Fatal(err)
	}
	sysConfig := `
version: 1
mail:
  server: mail.corp.example.com
  sender: harness@corp.example.com
`
	if err := os.WriteFile(sysPath, []byte(sysConfig), 0644); err != nil {
		t.Fatal(err)
	}

	projConfig := `
mail:
  recipients_file: ./recipients.txt
build:
  prebuild_jobs: 2
`
	projPath := filepath.Join(dir, "testharness.yaml")
	if err := os.WriteFile(projPath, []byte(projConfig), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "nonexistent", "testharness.yaml"),
	})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}

	cfg := result.Config
	if cfg.Mail.Server != "mail.corp.example.com" || cfg.Mail.Sender != "harness@corp.example.com" {
		t.Errorf("system mail settings not inherited: %+v", cfg.Mail)
	}
	if cfg.Mail.RecipientsFile != "./recipients.txt" {
		t.Errorf("recipients_file = %q", cfg.Mail.RecipientsFile)
	}
	if cfg.Build.PreBuildJobs != 2 || cfg.Build.AllJobs != 24 {
		t.Errorf("jobs = %d/%d, want 2/24", cfg.Build.PreBuildJobs, cfg.Build.AllJobs)
	}

	loadedCount := 0
	for _, l := range result.Layers {
		if l.Loaded {
			loadedCount++
		}
	}
	if loadedCount != 2 {
		t.Errorf("expected 2 loaded layers, got %d", loadedCount)
	}
}

func TestLoadHierarchicalNoFiles(t *testing.T) {
	dir := t.TempDir()
	result, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      filepath.Join(dir, "testharness.yaml"),
		SystemConfigPath: filepath.Join(dir, "a.yaml"),
		UserConfigPath:   filepath.Join(dir, "b.yaml"),
	})
	if err != nil {
		t.Fatalf("LoadHierarchical: %v", err)
	}
	if result.Config.Build.Script != "BuildSolution.bat" {
		t.Errorf("expected defaults, got %+v", result.Config.Build)
	}
}

func TestLoadHierarchicalVersionMismatch(t *testing.T) {
	dir := t.TempDir()

	sysPath := filepath.Join(dir, "system.yaml")
	if err := os.WriteFile(sysPath, []byte("version: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	projPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projPath, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "nonexistent.yaml"),
	})
	if err == nil {
		t.Fatal("expected version mismatch error")
	}
	if !strings.Contains(err.Error(), "version mismatch") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadHierarchicalParseError(t *testing.T) {
	dir := t.TempDir()

	sysPath := filepath.Join(dir, "system.yaml")
	if err := os.WriteFile(sysPath, []byte("invalid: [yaml: broken"), 0644); err != nil {
		t.Fatal(err)
	}

	projPath := filepath.Join(dir, "project.yaml")
	if err := os.WriteFile(projPath, []byte(exampleConfig), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadHierarchical(HierarchicalOptions{
		ProjectPath:      projPath,
		SystemConfigPath: sysPath,
		UserConfigPath:   filepath.Join(dir, "nonexistent.yaml"),
	})
	if err == nil {
		t.Fatal("expected parse error for invalid system config")
	}
}
