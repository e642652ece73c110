// Package seed holds the built-in sample dataset transcribed from the
// operational report pages.
package seed

import "github.com/Tiliavir/dutyrep/internal/model"

const g = model.PlaceholderPersonnel

var records = []model.ServiceRecord{
	// Student duty roster.
	{ID: "1", Type: model.StudentDuty, Date: "28/09/2025", StartTime: "06:30", EndTime: "19:00", DurationHours: 12.5, Personnel: "AL SD OLÍVIA"},
	{ID: "2", Type: model.StudentDuty, Date: "01/11/2025", StartTime: "18:30", EndTime: "07:00", DurationHours: 12.5, Personnel: "AL SD OLÍVIA"},
	{ID: "3", Type: model.StudentDuty, Date: "27/09/2025", StartTime: "18:30", EndTime: "07:00", DurationHours: 12.5, Personnel: "AL SD LÉLLIS"},
	{ID: "4", Type: model.StudentDuty, Date: "27/10/2025", StartTime: "18:30", EndTime: "07:00", DurationHours: 12.5, Personnel: "AL SD LÉLLIS"},
	{ID: "5", Type: model.StudentDuty, Date: "27/09/2025", StartTime: "18:30", EndTime: "07:00", DurationHours: 12.5, Personnel: "AL SD NAARA"},
	{ID: "6", Type: model.StudentDuty, Date: "28/09/2025", StartTime: "07:00", EndTime: "12:30", DurationHours: 5.5, Personnel: "AL SD NAARA"},
	{ID: "7", Type: model.StudentDuty, Date: "28/09/2025", StartTime: "18:30", EndTime: "07:00", DurationHours: 12.5, Personnel: "AL SD MATHEUS ANTÔNIO"},

	// Internal service and REDS.
	{ID: "8", Type: model.InternalService, Date: "24/09/2025", StartTime: "06:00", EndTime: "10:00", DurationHours: 4, Personnel: g},
	{ID: "9", Type: model.InternalService, Date: "25/09/2025", StartTime: "06:00", EndTime: "10:00", DurationHours: 4, Personnel: g},
	{ID: "10", Type: model.REDS, Date: "25/11/2025", StartTime: "18:00", EndTime: "00:00", DurationHours: 6, Personnel: g},
	{ID: "11", Type: model.REDS, Date: "10/11/2025", StartTime: "17:30", EndTime: "00:00", DurationHours: 6.5, Personnel: g},

	// Sentinel.
	{ID: "12", Type: model.Sentinel, Date: "18/11/2025", StartTime: "19:00", EndTime: "07:00", DurationHours: 12, Personnel: g},
	{ID: "13", Type: model.Sentinel, Date: "05/12/2025", StartTime: "18:30", EndTime: "07:00", DurationHours: 12.5, Personnel: g},
	{ID: "14", Type: model.Sentinel, Date: "20/11/2025", StartTime: "19:00", EndTime: "07:00", DurationHours: 12, Personnel: g},

	// Prado Seguro.
	{ID: "15", Type: model.PradoSeguro, Date: "09/11/2025", StartTime: "08:30", EndTime: "15:20", DurationHours: 6.83, Personnel: g},
	{ID: "16", Type: model.PradoSeguro, Date: "29/11/2025", StartTime: "14:00", EndTime: "20:00", DurationHours: 6, Personnel: g},
	{ID: "17", Type: model.PradoSeguro, Date: "02/12/2025", StartTime: "17:30", EndTime: "00:00", DurationHours: 6.5, Personnel: g},

	// SAT and Feira Hippie.
	{ID: "18", Type: model.SAT, Date: "01/12/2025", StartTime: "17:30", EndTime: "00:00", DurationHours: 6.5, Personnel: g},
	{ID: "19", Type: model.SAT, Date: "08/11/2025", StartTime: "07:00", EndTime: "22:00", DurationHours: 15, Personnel: g},
	{ID: "20", Type: model.FeiraHippie, Date: "08/11/2025", StartTime: "07:00", EndTime: "21:40", DurationHours: 14.6, Personnel: g},
	{ID: "21", Type: model.FeiraHippie, Date: "09/11/2025", StartTime: "07:00", EndTime: "21:00", DurationHours: 14, Personnel: g},
}

// Records returns a fresh copy of the sample dataset.
func Records() []model.ServiceRecord {
	out := make([]model.ServiceRecord, len(records))
	copy(out, records)
	return out
}
