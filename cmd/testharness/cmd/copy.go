package cmd

import (
	"github.com/spf13/cobra"
)

var copyStrict bool

var copyCmd = &cobra.Command{
	Use:   "copy <from> <to>",
	Short: "Mirror a directory without overwriting",
	Long: `Recreates the directory structure of <from> under <to> and copies every
file that does not already exist there. Existing files are never replaced,
even when their content differs.

Symlinked directories already under <to> are written through. Use --strict
to refuse any destination path that leads outside <to>. Symlinks to
directories in <from> are skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		res, copyErr := client.Copy(cmd.Context(), args[0], args[1])
		if res != nil {
			out := cmd.OutOrStdout()
			for _, p := range res.Copied {
				detail(out, "+ %s", p)
			}
			for _, f := range res.Failed {
				errorf("%s", f.Error())
			}
			info(out, "Copied %d files, skipped %d existing, %d failed",
				len(res.Copied), len(res.Skipped), len(res.Failed))
		}
		return copyErr
	},
}

func init() {
	copyCmd.Flags().BoolVar(&copyStrict, "strict", false, "refuse destination paths that resolve outside <to>")
	rootCmd.AddCommand(copyCmd)
}
