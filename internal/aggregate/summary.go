package aggregate

import "github.com/Tiliavir/dutyrep/internal/model"

// Stats holds the summary counters of a record collection.
type Stats struct {
	TotalHours        float64                    `json:"totalHours"`
	TotalRecords      int                        `json:"totalRecords"`
	DistinctPersonnel int                        `json:"distinctPersonnel"`
	CategoryHours     map[model.Category]float64 `json:"categoryHours"`
}

// HoursFor returns the summed hours of one category, zero when absent.
func (s Stats) HoursFor(c model.Category) float64 {
	return s.CategoryHours[c]
}

// Summarize computes Stats over records. Empty input yields zero Stats.
func Summarize(records []model.ServiceRecord) Stats {
	s := Stats{CategoryHours: make(map[model.Category]float64)}
	people := make(map[string]struct{})
	for _, r := range records {
		s.TotalHours += r.DurationHours
		s.TotalRecords++
		s.CategoryHours[r.Type] += r.DurationHours
		if r.Identified() {
			people[r.Personnel] = struct{}{}
		}
	}
	s.DistinctPersonnel = len(people)
	return s
}
