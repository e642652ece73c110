package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/export"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printRecords prints records as an aligned table.
func printRecords(w io.Writer, records []model.ServiceRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, export.NoRecordsMessage)
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTYPE\tDATE\tTIME\tHOURS\tPERSONNEL")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s–%s\t%s\t%s\n",
			r.ID, r.Type, r.Date, r.StartTime, r.EndTime, timecalc.FormatHours(r.DurationHours), r.Personnel)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d records\n", len(records))
}

// printStats prints the summary counters of a report.
func printStats(w io.Writer, r *aggregate.Report) {
	fmt.Fprintf(w, "Filter: %s\n", r.Filter)
	fmt.Fprintln(w, "--------------------------------")
	tw := newTable(w)
	fmt.Fprintf(tw, "Total hours\t%s\n", timecalc.FormatHours(r.Stats.TotalHours))
	fmt.Fprintf(tw, "Records\t%d\n", r.Stats.TotalRecords)
	fmt.Fprintf(tw, "Distinct personnel\t%d\n", r.Stats.DistinctPersonnel)
	fmt.Fprintf(tw, "%s hours\t%s\n", r.Highlight, timecalc.FormatHours(r.HighlightHours))
	tw.Flush()
}

// printBuckets prints one grouped view. hours selects the value format.
func printBuckets(w io.Writer, title, label string, buckets []aggregate.Bucket, hours bool, empty string) {
	fmt.Fprintln(w, title)
	if len(buckets) == 0 {
		fmt.Fprintf(w, "  %s\n\n", empty)
		return
	}
	tw := newTable(w)
	unit := "COUNT"
	if hours {
		unit = "HOURS"
	}
	fmt.Fprintf(tw, "  %s\t%s\n", label, unit)
	for _, b := range buckets {
		value := fmt.Sprintf("%d", int(b.Value))
		if hours {
			value = timecalc.FormatHours(b.Value)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", b.Label, value)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printWeeks(w io.Writer, weeks []aggregate.WeekBucket) {
	fmt.Fprintln(w, "Records by week of month")
	if len(weeks) == 0 {
		fmt.Fprintf(w, "  %s\n\n", export.NoDataMessage)
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "  WEEK\tTOTAL\tNEW")
	for _, wb := range weeks {
		fmt.Fprintf(tw, "  Semana %d\t%d\t%d\n", wb.Week, wb.Total, wb.New)
	}
	tw.Flush()
	fmt.Fprintln(w)
}
