package model

import (
	"github.com/google/uuid"

	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

// PlaceholderPersonnel marks a record with no identifiable individual.
const PlaceholderPersonnel = "GENERICO"

// ServiceRecord is one logged duty shift.
// DurationHours is authoritative once set; it is never recomputed from the
// start and end times.
type ServiceRecord struct {
	ID            string   `json:"id" yaml:"id"`
	Type          Category `json:"type" yaml:"type"`
	Date          string   `json:"date" yaml:"date"`
	StartTime     string   `json:"startTime" yaml:"startTime"`
	EndTime       string   `json:"endTime" yaml:"endTime"`
	DurationHours float64  `json:"durationHours" yaml:"durationHours"`
	Personnel     string   `json:"personnel,omitempty" yaml:"personnel,omitempty"`
}

// ParsedDate returns the record date, falling back to today when malformed.
func (r ServiceRecord) ParsedDate() timecalc.Date {
	return timecalc.ParseDate(r.Date)
}

// Identified reports whether the record names a specific person.
func (r ServiceRecord) Identified() bool {
	return r.Personnel != "" && r.Personnel != PlaceholderPersonnel
}

// NewRecord builds a record and computes its duration from start and end.
// It returns a *timecalc.FormatError when either time is malformed.
func NewRecord(id string, typ Category, date, start, end, personnel string) (ServiceRecord, error) {
	hours, err := timecalc.ComputeDuration(start, end)
	if err != nil {
		return ServiceRecord{}, err
	}
	return ServiceRecord{
		ID:            id,
		Type:          typ,
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		DurationHours: hours,
		Personnel:     personnel,
	}, nil
}

// NewID returns a fresh identifier for a record that arrived without one.
func NewID() string {
	return "imported-" + uuid.NewString()
}
