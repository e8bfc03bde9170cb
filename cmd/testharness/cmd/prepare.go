package cmd

import (
	"github.com/spf13/cobra"
)

var prepareCreateOnly bool

var prepareCmd = &cobra.Command{
	Use:   "prepare <dir>...",
	Short: "Ensure directories exist and are empty",
	Long: `Creates each directory if it is missing and removes everything inside it
otherwise. With --create-only, existing directories are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		for _, dir := range args {
			if prepareCreateOnly {
				err = client.Make(dir)
			} else {
				err = client.Prepare(cmd.Context(), dir)
			}
			if err != nil {
				return err
			}
			info(cmd.OutOrStdout(), "Prepared %s", dir)
		}
		return nil
	},
}

func init() {
	prepareCmd.Flags().BoolVar(&prepareCreateOnly, "create-only", false, "only create missing directories")
	rootCmd.AddCommand(prepareCmd)
}
