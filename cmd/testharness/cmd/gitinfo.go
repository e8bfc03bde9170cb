package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var gitInfoCmd = &cobra.Command{
	Use:   "git-info [repo-dir]",
	Short: "Print the branch and remote URL of a working copy",
	Long: `Reads .git/HEAD and .git/config without invoking git. When the branch or
remote URL cannot be found the configured defaults are printed instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		gi, err := client.GitInfo(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "branch: %s\n", gi.Branch)
		fmt.Fprintf(out, "remote: %s\n", gi.RemoteURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gitInfoCmd)
}
