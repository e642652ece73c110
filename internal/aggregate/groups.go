package aggregate

import (
	"sort"
	"strings"

	"github.com/Tiliavir/dutyrep/internal/model"
)

// Bucket is one labelled value of a grouped view.
type Bucket struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// WeekBucket is the record volume of one week-of-month index.
type WeekBucket struct {
	Week  int `json:"week"`
	Total int `json:"total"`
	New   int `json:"new"`
}

// WeekdayLabels are the weekday bucket labels, starting on Sunday.
var WeekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Duration range labels.
const (
	RangeShort  = "< 6h"
	RangeMedium = "6h - 12h"
	RangeLong   = "> 12h"
)

// CountByCategory counts records per category in order of first occurrence.
func CountByCategory(records []model.ServiceRecord) []Bucket {
	return groupBy(records, func(r model.ServiceRecord) (string, float64, bool) {
		return string(r.Type), 1, true
	})
}

// HoursByCategory sums hours per category, largest total first. Ties keep
// the order of first occurrence.
func HoursByCategory(records []model.ServiceRecord) []Bucket {
	out := groupBy(records, func(r model.ServiceRecord) (string, float64, bool) {
		return string(r.Type), r.DurationHours, true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// CountByWeekday counts records per weekday of their parsed date. All seven
// buckets are returned, Sunday first.
func CountByWeekday(records []model.ServiceRecord) []Bucket {
	var counts [7]int
	for _, r := range records {
		counts[r.ParsedDate().Weekday()]++
	}
	out := make([]Bucket, len(WeekdayLabels))
	for i, label := range WeekdayLabels {
		out[i] = Bucket{Label: label, Value: float64(counts[i])}
	}
	return out
}

// CountByDurationRange counts records in the three duration ranges. The
// middle range includes both 6 and 12 hours.
func CountByDurationRange(records []model.ServiceRecord) []Bucket {
	out := []Bucket{{Label: RangeShort}, {Label: RangeMedium}, {Label: RangeLong}}
	for _, r := range records {
		switch {
		case r.DurationHours < 6:
			out[0].Value++
		case r.DurationHours <= 12:
			out[1].Value++
		default:
			out[2].Value++
		}
	}
	return out
}

// HoursByPersonnel sums hours per person within one category, in order of
// first occurrence. prefix is trimmed from labels when present. Records
// without personnel are left out.
func HoursByPersonnel(records []model.ServiceRecord, category model.Category, prefix string) []Bucket {
	out := groupBy(records, func(r model.ServiceRecord) (string, float64, bool) {
		if r.Type != category || r.Personnel == "" {
			return "", 0, false
		}
		return r.Personnel, r.DurationHours, true
	})
	if prefix != "" {
		for i := range out {
			out[i].Label = strings.TrimPrefix(out[i].Label, prefix)
		}
	}
	return out
}

// CountByWeek counts records per week-of-month index, ascending.
//
// New counts identified people whose first appearance, scanning the weeks
// in ascending order, falls in that week.
func CountByWeek(records []model.ServiceRecord) []WeekBucket {
	totals := make(map[int]int)
	people := make(map[int][]string)
	for _, r := range records {
		w := r.ParsedDate().WeekOfMonth()
		totals[w]++
		if r.Identified() {
			people[w] = append(people[w], r.Personnel)
		}
	}

	out := make([]WeekBucket, 0, len(totals))
	for w, n := range totals {
		out = append(out, WeekBucket{Week: w, Total: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })

	seen := make(map[string]struct{})
	for i := range out {
		for _, p := range people[out[i].Week] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out[i].New++
		}
	}
	return out
}

// groupBy sums key/value pairs emitted by fn in order of first occurrence.
func groupBy(records []model.ServiceRecord, fn func(model.ServiceRecord) (string, float64, bool)) []Bucket {
	index := make(map[string]int)
	out := []Bucket{}
	for _, r := range records {
		key, v, ok := fn(r)
		if !ok {
			continue
		}
		i, seen := index[key]
		if !seen {
			i = len(out)
			index[key] = i
			out = append(out, Bucket{Label: key})
		}
		out[i].Value += v
	}
	return out
}
