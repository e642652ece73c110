package cmd

import (
	"github.com/spf13/cobra"
)

var summaryFilter *filterFlags

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show total hours, record count and distinct personnel",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	summaryFilter = addFilterFlags(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	r, err := summaryFilter.report()
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), r)
	return nil
}
