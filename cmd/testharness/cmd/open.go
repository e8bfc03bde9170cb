package cmd

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <dir>",
	Short: "Show a directory in the file browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		return client.OpenDir(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
