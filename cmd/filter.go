package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/dutyrep/internal/aggregate"
	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

// filterFlags holds the record filter flags shared by the reporting commands.
type filterFlags struct {
	search string
	typ    string
	from   string
	to     string
}

func addFilterFlags(cmd *cobra.Command) *filterFlags {
	f := &filterFlags{}
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive text matched against personnel and category")
	cmd.Flags().StringVarP(&f.typ, "type", "t", model.MatchAll, "Category to keep, or ALL")
	cmd.Flags().StringVar(&f.from, "from", "", "Earliest date, inclusive (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().StringVar(&f.to, "to", "", "Latest date, inclusive (YYYY-MM-DD or DD/MM/YYYY)")
	return f
}

func (f *filterFlags) spec() (model.FilterSpec, error) {
	spec, err := model.ParseFilterSpec(f.search, f.typ, f.from, f.to)
	if err != nil {
		return model.FilterSpec{}, userError(err)
	}
	return spec, nil
}

// report builds a report over the current snapshot.
func (f *filterFlags) report() (*aggregate.Report, error) {
	spec, err := f.spec()
	if err != nil {
		return nil, err
	}
	records := app.owner.Snapshot().Records()
	return aggregate.BuildReport(records, spec, app.reportOptions(), timecalc.Now()), nil
}
