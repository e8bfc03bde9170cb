package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bianoble/testharness/pkg/testharness"
)

var (
	buildConfiguration string
	buildRebuild       bool
)

var buildCmd = &cobra.Command{
	Use:   "build <cloned-dir> [solution]",
	Short: "Build a cloned solution",
	Long: `Builds the cloned tree with the platform build tool. On Windows the build
script is called from the current directory with the solution path as given
and the configuration. Elsewhere the PreBuild and All make targets are run in the
clone; both always run and every failing target is reported.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		req := testharness.BuildRequest{
			ClonedDir:     args[0],
			Configuration: buildConfiguration,
			Rebuild:       buildRebuild,
		}
		if len(args) > 1 {
			req.SolutionPath = args[1]
		}

		res, buildErr := client.Build(cmd.Context(), req)
		out := cmd.OutOrStdout()
		if res != nil {
			for _, t := range res.Targets {
				status := "ok"
				if t.Failed() {
					status = "FAILED"
				}
				info(out, "%-10s %s", t.Target, status)
				detail(out, "%s", t.Command)
			}
		}
		return buildErr
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildConfiguration, "configuration", "ReleaseD3D12", "build configuration")
	buildCmd.Flags().BoolVar(&buildRebuild, "rebuild", false, "rebuild instead of an incremental build")
	rootCmd.AddCommand(buildCmd)
}
