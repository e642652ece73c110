package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

var durationCmd = &cobra.Command{
	Use:   "duration <start> <end>",
	Short: "Compute the hours between two HH:MM times",
	Long: `Compute the hours between two HH:MM times. An end earlier than the
start is taken to be on the next day, so 18:30 07:00 is 12.5 hours.`,
	Example: "  dutyrep duration 18:30 07:00",
	Args:    cobra.ExactArgs(2),
	RunE:    runDuration,
}

func runDuration(cmd *cobra.Command, args []string) error {
	hours, err := timecalc.ComputeDuration(args[0], args[1])
	if err != nil {
		return userError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), timecalc.FormatHours(hours))
	return nil
}
