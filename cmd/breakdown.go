package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/export"
)

// projections names the grouped views in display order.
var projections = []string{"category", "hours", "weekday", "duration", "personnel", "week"}

var breakdownFilter *filterFlags

var breakdownCmd = &cobra.Command{
	Use:   "breakdown [" + strings.Join(projections, "|") + "]",
	Short: "Show grouped views of the filtered records",
	Long: `Show one grouped view, or all of them when no projection is named:

  category   records per category
  hours      hours per category, largest first
  weekday    records per weekday, Sunday first
  duration   records per duration range (< 6h, 6h - 12h, > 12h)
  personnel  hours per person for the configured personnel category
  week       records and newly seen personnel per week of month`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: projections,
	RunE:      runBreakdown,
}

func init() {
	breakdownFilter = addFilterFlags(breakdownCmd)
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	r, err := breakdownFilter.report()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if r.Empty {
		fmt.Fprintln(out, export.NoRecordsMessage)
		return nil
	}
	names := projections
	if len(args) == 1 {
		names = args
	}
	for _, name := range names {
		printProjection(out, r, name)
	}
	return nil
}

func printProjection(w io.Writer, r *aggregate.Report, name string) {
	switch name {
	case "category":
		printBuckets(w, "Records by category", "CATEGORY", r.ByCategory, false, export.NoDataMessage)
	case "hours":
		printBuckets(w, "Hours by category", "CATEGORY", r.HoursByCategory, true, export.NoDataMessage)
	case "weekday":
		printBuckets(w, "Records by weekday", "WEEKDAY", r.ByWeekday, false, export.NoDataMessage)
	case "duration":
		printBuckets(w, "Records by duration", "RANGE", r.ByDuration, false, export.NoDataMessage)
	case "personnel":
		printBuckets(w, fmt.Sprintf("Hours per person (%s)", r.PersonnelCategory), "PERSON", r.Personnel, true, export.NoPersonnelMessage)
	case "week":
		printWeeks(w, r.ByWeek)
	}
}
