package config

// Config represents the testharness.yaml configuration file.
type Config struct {
	Version         int         `yaml:"version"`
	ImageExtensions []string    `yaml:"image_extensions,omitempty"`
	Git             Git         `yaml:"git"`
	Directories     Directories `yaml:"directories"`
	Build           Build       `yaml:"build"`
	Mail            Mail        `yaml:"mail"`
}

// Git holds the fallbacks used when .git metadata lacks a branch or remote.
type Git struct {
	DefaultBranch    string `yaml:"default_branch,omitempty"`
	DefaultRemoteURL string `yaml:"default_remote_url,omitempty"`
}

// Directories configures directory preparation.
type Directories struct {
	// RemoveHelper is the recursive-delete script used on Windows.
	RemoveHelper string `yaml:"remove_helper,omitempty"`
}

// Build configures the platform build drivers.
type Build struct {
	Script       string `yaml:"script,omitempty"`
	MakeTool     string `yaml:"make_tool,omitempty"`
	PreBuildJobs int    `yaml:"prebuild_jobs,omitempty"`
	AllJobs      int    `yaml:"all_jobs,omitempty"`
}

// Mail configures result dispatch.
type Mail struct {
	Server         string `yaml:"server,omitempty"`
	Sender         string `yaml:"sender,omitempty"`
	RecipientsFile string `yaml:"recipients_file,omitempty"`
	WindowsTool    string `yaml:"windows_tool,omitempty"`
	UnixTool       string `yaml:"unix_tool,omitempty"`
}

// Default returns the built-in configuration. Every field has a usable value.
func Default() *Config {
	return &Config{
		Version:         1,
		ImageExtensions: []string{".png", ".jpg", ".jpeg", ".bmp", ".tga", ".dds", ".exr", ".hdr", ".pfm"},
		Git: Git{
			DefaultBranch:    "master",
			DefaultRemoteURL: "https://github.com/NVIDIAGameWorks/Falcor.git",
		},
		Directories: Directories{
			RemoveHelper: "RemoveDirectoryTree.bat",
		},
		Build: Build{
			Script:       "BuildSolution.bat",
			MakeTool:     "make",
			PreBuildJobs: 8,
			AllJobs:      24,
		},
		Mail: Mail{
			Server:         "mail.example.com",
			Sender:         "testharness@example.com",
			RecipientsFile: "recipients.txt",
			WindowsTool:    "blat.exe",
			UnixTool:       "sendEmail",
		},
	}
}
