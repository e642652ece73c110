package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dutyrep/internal/dataset"
	"github.com/Tiliavir/dutyrep/internal/importer"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/msgraph"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

var (
	outlookSyncFrom     string
	outlookSyncTo       string
	outlookSyncDryRun   bool
	outlookSyncCategory string
	outlookSyncTZ       string
	outlookSyncSave     string
)

var outlookCmd = &cobra.Command{
	Use:   "outlook",
	Short: "Outlook calendar integration",
}

var outlookSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Import Outlook calendar events as service records",
	Long: `Import Outlook calendar events in a date window as service records.
Each event becomes one record: the category is the first known category
named by an Outlook category label or by the subject, falling back to
--category. Cancelled, all-day, private and free events are skipped, and
events imported before (same event ID) are not imported twice.`,
	Args: cobra.NoArgs,
	RunE: runOutlookSync,
}

func init() {
	outlookSyncCmd.Flags().StringVar(&outlookSyncFrom, "from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY); required when --to is specified")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTo, "to", "", "End date, inclusive; defaults to today")
	outlookSyncCmd.Flags().BoolVar(&outlookSyncDryRun, "dry-run", false, "Print the mapped records without merging them")
	outlookSyncCmd.Flags().StringVar(&outlookSyncCategory, "category", "", "Category for events naming no known category (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncTZ, "timezone", "", "IANA timezone for event times (default from config)")
	outlookSyncCmd.Flags().StringVar(&outlookSyncSave, "save", "", "Write the merged record set to this file")
	outlookCmd.AddCommand(outlookSyncCmd)
}

// syncWindow resolves the --from/--to flags to [from, to) in loc. The
// default window is today.
func syncWindow(fromFlag, toFlag string, now time.Time, loc *time.Location) (time.Time, time.Time, error) {
	today := timecalc.DateOf(now.In(loc))
	from, to := today, today
	if toFlag != "" && fromFlag == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--from is required when --to is specified")
	}
	if fromFlag != "" {
		d, err := timecalc.ParseBound(fromFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --from value: %w", err)
		}
		from = d
	}
	if toFlag != "" {
		d, err := timecalc.ParseBound(toFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --to value: %w", err)
		}
		to = d
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to, from)
	}
	start := time.Date(from.Year, from.Month, from.Day, 0, 0, 0, 0, loc)
	end := time.Date(to.Year, to.Month, to.Day, 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return start, end, nil
}

func runOutlookSync(cmd *cobra.Command, args []string) error {
	cfg := app.cfg.Outlook
	timezone := cfg.Timezone
	if outlookSyncTZ != "" {
		timezone = outlookSyncTZ
	}
	loc := time.UTC
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return userError(fmt.Errorf("invalid --timezone %q: %w", timezone, err))
		}
		loc = l
	}
	category := cfg.Category
	if outlookSyncCategory != "" {
		category = outlookSyncCategory
	}

	from, to, err := syncWindow(outlookSyncFrom, outlookSyncTo, timecalc.Now(), loc)
	if err != nil {
		return userError(err)
	}

	out := cmd.OutOrStdout()
	dryTag := ""
	if outlookSyncDryRun {
		dryTag = " [dry-run]"
	}
	fmt.Fprintf(out, "Syncing Outlook events (%s → %s)%s...\n",
		from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"), dryTag)

	ctx := cmd.Context()
	tokens, err := msgraph.DefaultTokenFile()
	if err != nil {
		return ioError(err)
	}
	oc := msgraph.OAuthConfig(cfg)
	tok, err := msgraph.Authenticate(ctx, oc, tokens, os.Stderr, app.logger)
	if err != nil {
		return ioError(fmt.Errorf("authentication failed: %w", err))
	}

	known := make(map[string]bool)
	for _, r := range app.owner.Snapshot().Records() {
		known[r.ID] = true
	}
	cal := &msgraph.Calendar{
		Source:   msgraph.NewClient(ctx, tok, oc, tokens),
		From:     from,
		To:       to,
		Timezone: timezone,
		Category: model.ParseCategory(category),
		Seen:     func(id string) bool { return known[id] },
		Logger:   app.logger,
	}

	if outlookSyncDryRun {
		records, err := cal.Fetch(ctx)
		if err != nil {
			return ioError(err)
		}
		fmt.Fprintln(out)
		printRecords(out, records)
		printSyncResult(out, cal.Result)
		return nil
	}

	task := importer.Start(ctx, cal, app.owner, app.cfg.Import.Timeout, app.logger)
	if _, err := task.Wait(); err != nil {
		return ioError(err)
	}
	printSyncResult(out, cal.Result)

	if outlookSyncSave != "" {
		snap := app.owner.Snapshot()
		if err := dataset.Save(outlookSyncSave, snap.Records()); err != nil {
			return ioError(err)
		}
		fmt.Fprintf(out, "Saved %d records to %s\n", snap.Len(), outlookSyncSave)
	}
	if cal.Result.Errors > 0 {
		return ioError(fmt.Errorf("%d events could not be imported", cal.Result.Errors))
	}
	return nil
}

func printSyncResult(w io.Writer, r msgraph.SyncResult) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d imported\n", r.Imported)
	fmt.Fprintf(w, "  %d skipped\n", r.Skipped)
	if r.Errors > 0 {
		fmt.Fprintf(w, "  %d errors\n", r.Errors)
	}
}
