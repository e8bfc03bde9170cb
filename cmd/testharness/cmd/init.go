package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default testharness.yaml scaffold. Every value shown
// is also the built-in default.
const initTemplate = `# testharness configuration
version: 1

# Files with these suffixes are treated as reference images.
image_extensions: [".png", ".jpg", ".jpeg", ".bmp", ".tga", ".dds", ".exr", ".hdr", ".pfm"]

git:
  # Used when .git/HEAD or .git/config do not name a branch or remote.
  default_branch: master
  default_remote_url: https://github.com/NVIDIAGameWorks/Falcor.git

directories:
  # Windows helper that removes a directory tree.
  remove_helper: RemoveDirectoryTree.bat

build:
  script: BuildSolution.bat   # Windows
  make_tool: make             # everywhere else
  prebuild_jobs: 8
  all_jobs: 24

mail:
  server: mail.example.com
  sender: testharness@example.com
  recipients_file: recipients.txt
  windows_tool: blat.exe
  unix_tool: sendEmail
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter testharness.yaml configuration",
	Long: `Creates a testharness.yaml file at the --config path listing every setting
with its default value.

Use --force to overwrite an existing configuration file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, err := filepath.Abs(configPath)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		out := cmd.OutOrStdout()
		info(out, "Created %s", outPath)
		info(out, "")
		info(out, "Next steps:")
		info(out, "  1. Point mail.recipients_file at your recipient list")
		info(out, "  2. Run 'testharness info' to check the effective settings")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
