package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/dataset"
	"github.com/Tiliavir/dutyrep/internal/importer"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

var (
	importSimulate bool
	importTimeout  time.Duration
	importSave     string
)

var importCmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import record batches in the background and merge them",
	Long: `Import one or more record batch files (YAML or JSON) and merge each
complete batch into the record set. --simulate adds a simulated upload that
yields a few records dated today after a short delay.

A batch that fails to load, times out or contains an ID already present is
discarded as a whole. Press Ctrl-C to cancel pending imports.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importSimulate, "simulate", false, "Add a simulated file upload")
	importCmd.Flags().DurationVar(&importTimeout, "timeout", 0, "Per-import timeout (default from config)")
	importCmd.Flags().StringVar(&importSave, "save", "", "Write the merged record set to this file")
}

func runImport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !importSimulate {
		return userError(fmt.Errorf("nothing to import: name a file or pass --simulate"))
	}
	timeout := importTimeout
	if timeout <= 0 {
		timeout = app.cfg.Import.Timeout
	}

	var providers []importer.Provider
	for _, path := range args {
		providers = append(providers, &importer.File{Path: path, Logger: app.logger})
	}
	if importSimulate {
		providers = append(providers, &importer.Simulated{
			Delay: app.cfg.Import.SimulatedDelay,
			Count: app.cfg.Import.SimulatedCount,
		})
	}

	out := cmd.OutOrStdout()
	for _, p := range providers {
		fmt.Fprintf(out, "  … %s: %s\n", p.Name(), importer.Pending)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	results, runErr := importer.RunAll(ctx, providers, app.owner, app.cfg.Import.Parallel, timeout, app.logger)

	fmt.Fprintln(out)
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(out, "  ✗ %s: %s: %v\n", res.Source, res.State, res.Err)
			continue
		}
		fmt.Fprintf(out, "  ✓ %s: %s (+%d records)\n", res.Source, res.State, res.Added)
	}

	snap := app.owner.Snapshot()
	fmt.Fprintln(out)
	r := aggregate.BuildReport(snap.Records(), model.FilterSpec{}, app.reportOptions(), timecalc.Now())
	printStats(out, r)

	if importSave != "" {
		if err := dataset.Save(importSave, snap.Records()); err != nil {
			return ioError(err)
		}
		fmt.Fprintf(out, "\nSaved %d records to %s\n", snap.Len(), importSave)
	}
	if runErr != nil {
		return ioError(runErr)
	}
	return nil
}
