package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/dutyrep/internal/export"
)

var (
	exportFilter *filterFlags
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a report of the filtered records",
	Long: `Export the summary, every grouped view and the matching records.
Text formats go to stdout unless --out is given; xlsx requires --out.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportFilter = addFilterFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md, csv, json, xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return userError(err)
	}
	if format.Binary() && exportOut == "" {
		return userError(fmt.Errorf("--format %s writes a binary workbook; use --out <file>", format))
	}
	r, err := exportFilter.report()
	if err != nil {
		return err
	}

	if exportOut == "" {
		if err := export.NewExporter(format, cmd.OutOrStdout()).ExportReport(r); err != nil {
			return ioError(err)
		}
		return nil
	}
	if err := writeFileAtomic(exportOut, func(w io.Writer) error {
		return export.NewExporter(format, w).ExportReport(r)
	}); err != nil {
		return ioError(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", exportOut)
	return nil
}

// writeFileAtomic writes through a temp file renamed into place.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
