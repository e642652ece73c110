package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/config"
	"github.com/Tiliavir/dutyrep/internal/dataset"
	"github.com/Tiliavir/dutyrep/internal/logging"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/seed"
	"github.com/Tiliavir/dutyrep/internal/store"
)

var (
	dataFile string
	verbose  bool
)

// env is the per-invocation state prepared before every subcommand.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	owner  *store.Owner
}

var app *env

var rootCmd = &cobra.Command{
	Use:   "dutyrep",
	Short: "dutyrep – service duty records, statistics and reports",
	Long: `dutyrep is a single-binary command-line tool for inspecting police
service duty records: filter them, summarise hours and personnel, break
them down by category, weekday, duration and week, import new batches and
export reports.

Without --data the built-in sample dataset is used. Settings live in
~/.dutyrep/config.yaml.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "Record batch file (YAML or JSON) used instead of the sample dataset")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(breakdownCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(outlookCmd)
	rootCmd.AddCommand(durationCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return ioError(err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return userError(err)
	}

	records := seed.Records()
	if dataFile != "" {
		records, err = dataset.Load(dataFile, logger)
		if err != nil {
			if errors.Is(err, dataset.ErrInvalidRecord) {
				return userError(err)
			}
			return ioError(err)
		}
		logger.Debug("dataset loaded", zap.String("path", dataFile), zap.Int("records", len(records)))
	}

	app = &env{
		cfg:    cfg,
		logger: logger,
		owner:  store.NewOwner(store.New(records), logger),
	}
	return nil
}

// reportOptions maps the report config section onto aggregate options.
func (e *env) reportOptions() aggregate.ReportOptions {
	return aggregate.ReportOptions{
		HighlightCategory: model.ParseCategory(e.cfg.Report.HighlightCategory),
		PersonnelCategory: model.ParseCategory(e.cfg.Report.PersonnelCategory),
		PersonnelPrefix:   e.cfg.Report.PersonnelPrefix,
	}
}

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks invalid input: exit status 1.
func userError(err error) error { return &exitError{code: 1, err: err} }

// ioError marks a failed read, write or remote call: exit status 2.
func ioError(err error) error { return &exitError{code: 2, err: err} }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}
