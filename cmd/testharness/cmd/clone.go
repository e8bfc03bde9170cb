package cmd

import (
	"github.com/spf13/cobra"
)

var cloneCmd = &cobra.Command{
	Use:   "clone <source> <branch> <destination>",
	Short: "Clone one branch into a clean destination",
	Long: `Empties or creates the destination, then clones the named branch of the
source repository into it. Any previous content of the destination is lost.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		source, branch, dest := args[0], args[1], args[2]
		if _, err := client.Clone(cmd.Context(), source, branch, dest); err != nil {
			return err
		}
		info(cmd.OutOrStdout(), "Cloned %s (%s) into %s", source, branch, dest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cloneCmd)
}
