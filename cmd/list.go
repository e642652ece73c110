package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/export"
)

var (
	listFilter *filterFlags
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List service records matching the filter",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listFilter = addFilterFlags(listCmd)
	listCmd.Flags().StringVar(&listFormat, "format", "text", "Output format: text, md, csv, json")
}

func runList(cmd *cobra.Command, args []string) error {
	spec, err := listFilter.spec()
	if err != nil {
		return err
	}
	records := aggregate.ApplyFilter(app.owner.Snapshot().Records(), spec)

	out := cmd.OutOrStdout()
	if listFormat == "text" {
		printRecords(out, records)
		return nil
	}
	format, err := export.ParseFormat(listFormat)
	if err != nil || format.Binary() {
		return userError(fmt.Errorf("unsupported list format %q (want text, md, csv or json)", listFormat))
	}
	if err := export.NewExporter(format, out).ExportRecords(records); err != nil {
		return ioError(err)
	}
	return nil
}
