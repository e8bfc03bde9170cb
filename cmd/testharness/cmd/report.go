package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bianoble/testharness/internal/report"
)

var (
	reportConfiguration string
	reportSubject       string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Name and send result reports",
}

var reportFilenameCmd = &cobra.Command{
	Use:   "filename <results-file>",
	Short: "Print the report filename for a results summary",
	Long: `Reads a YAML or JSON mapping of test-set name to result and prints the
report filename: [SUCCESS] or [FAILED], the configuration, then _Results.html.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := report.LoadResults(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Filename(results, reportConfiguration))
		return nil
	},
}

var reportSendCmd = &cobra.Command{
	Use:   "send <attachment>...",
	Short: "Mail report files to the configured recipients",
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportSubject == "" {
			return fmt.Errorf("--subject is required")
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.SendReport(cmd.Context(), reportSubject, args); err != nil {
			return err
		}
		info(cmd.OutOrStdout(), "Sent %q with %d attachments", reportSubject, len(args))
		return nil
	},
}

func init() {
	reportFilenameCmd.Flags().StringVar(&reportConfiguration, "configuration", "ReleaseD3D12", "build configuration named in the report")
	reportSendCmd.Flags().StringVar(&reportSubject, "subject", "", "mail subject")

	reportCmd.AddCommand(reportFilenameCmd, reportSendCmd)
	rootCmd.AddCommand(reportCmd)
}
