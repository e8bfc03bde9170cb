package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	exeDirConfiguration string
	exeDirTestSet       string
)

var exeDirCmd = &cobra.Command{
	Use:   "exe-dir",
	Short: "Print where built executables are placed",
	Long: `Prints the executable directory relative to the clone. With --test-set the
directory is nested under that test set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		dir := client.ExecutableDir(exeDirConfiguration, exeDirTestSet, exeDirTestSet != "")
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

func init() {
	exeDirCmd.Flags().StringVar(&exeDirConfiguration, "configuration", "ReleaseD3D12", "build configuration")
	exeDirCmd.Flags().StringVar(&exeDirTestSet, "test-set", "", "test set collection name")
	rootCmd.AddCommand(exeDirCmd)
}
