package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the effective testharness configuration",
	Long: `Displays the testharness version, the config files that were considered
and whether each was loaded, and the merged settings.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		cfg := client.Config()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "testharness %s\n", version)
		fmt.Fprintln(out, "  config chain:")
		for _, layer := range client.Layers() {
			status := "not found"
			if layer.Loaded {
				status = "loaded"
			}
			fmt.Fprintf(out, "    %-10s %s (%s)\n", string(layer.Level)+":", layer.Path, status)
		}

		fmt.Fprintf(out, "  default branch:  %s\n", cfg.Git.DefaultBranch)
		fmt.Fprintf(out, "  default remote:  %s\n", cfg.Git.DefaultRemoteURL)
		fmt.Fprintf(out, "  build script:    %s\n", cfg.Build.Script)
		fmt.Fprintf(out, "  make:            %s (PreBuild -j%d, All -j%d)\n",
			cfg.Build.MakeTool, cfg.Build.PreBuildJobs, cfg.Build.AllJobs)
		fmt.Fprintf(out, "  mail:            %s via %s / %s\n",
			cfg.Mail.Server, cfg.Mail.WindowsTool, cfg.Mail.UnixTool)
		fmt.Fprintf(out, "  recipients:      %s\n", cfg.Mail.RecipientsFile)
		fmt.Fprintf(out, "  image types:     %s\n", strings.Join(cfg.ImageExtensions, " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
