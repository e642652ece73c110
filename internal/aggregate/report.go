package aggregate

import (
	"time"

	"github.com/Tiliavir/dutyrep/internal/model"
)

// ReportOptions selects the category-specific views of a Report.
type ReportOptions struct {
	// HighlightCategory gets its own hour total, e.g. Sentinela.
	HighlightCategory model.Category
	// PersonnelCategory is the category broken down per person.
	PersonnelCategory model.Category
	// PersonnelPrefix is trimmed from person labels, e.g. "AL SD ".
	PersonnelPrefix string
}

// DefaultReportOptions matches the operational dashboard.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		HighlightCategory: model.Sentinel,
		PersonnelCategory: model.StudentDuty,
		PersonnelPrefix:   "AL SD ",
	}
}

// Report bundles the summary and every grouped view of a filtered set.
type Report struct {
	GeneratedAt       time.Time             `json:"generatedAt"`
	Filter            string                `json:"filter"`
	Empty             bool                  `json:"empty"`
	Stats             Stats                 `json:"stats"`
	Highlight         model.Category        `json:"highlightCategory"`
	HighlightHours    float64               `json:"highlightHours"`
	PersonnelCategory model.Category        `json:"personnelCategory"`
	ByCategory        []Bucket              `json:"byCategory"`
	HoursByCategory   []Bucket              `json:"hoursByCategory"`
	ByWeekday         []Bucket              `json:"byWeekday"`
	ByDuration        []Bucket              `json:"byDuration"`
	Personnel         []Bucket              `json:"personnel"`
	ByWeek            []WeekBucket          `json:"byWeek"`
	Records           []model.ServiceRecord `json:"records"`
}

// PersonnelEmpty reports whether the per-person view has no entries.
func (r *Report) PersonnelEmpty() bool {
	return len(r.Personnel) == 0
}

// BuildReport filters records with spec and derives every view from the
// filtered subset.
func BuildReport(records []model.ServiceRecord, spec model.FilterSpec, opts ReportOptions, now time.Time) *Report {
	filtered := ApplyFilter(records, spec)
	stats := Summarize(filtered)
	return &Report{
		GeneratedAt:       now,
		Filter:            spec.String(),
		Empty:             len(filtered) == 0,
		Stats:             stats,
		Highlight:         opts.HighlightCategory,
		HighlightHours:    stats.HoursFor(opts.HighlightCategory),
		PersonnelCategory: opts.PersonnelCategory,
		ByCategory:        CountByCategory(filtered),
		HoursByCategory:   HoursByCategory(filtered),
		ByWeekday:         CountByWeekday(filtered),
		ByDuration:        CountByDurationRange(filtered),
		Personnel:         HoursByPersonnel(filtered, opts.PersonnelCategory, opts.PersonnelPrefix),
		ByWeek:            CountByWeek(filtered),
		Records:           filtered,
	}
}
