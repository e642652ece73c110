package msgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Tiliavir/dutyrep/internal/model"
	"github.com/Tiliavir/dutyrep/internal/timecalc"
)

// IDPrefix marks records imported from the calendar.
const IDPrefix = "outlook-"

// ErrEventTooLong is returned for events that cannot be expressed as a
// single record because they last a full day or more.
var ErrEventTooLong = errors.New("event lasts 24 hours or more")

// SyncResult holds counters for a calendar import.
type SyncResult struct {
	Imported int
	Skipped  int
	Errors   int
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, dt); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// location resolves an IANA name, falling back to UTC.
func location(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	if l, err := time.LoadLocation(tz); err == nil {
		return l
	}
	return time.UTC
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	if event.IsCancelled {
		return true
	}
	if event.IsAllDay {
		return true
	}
	if event.Sensitivity == "private" {
		return true
	}
	if event.ShowAs == "free" {
		return true
	}
	if event.Start.DateTime == "" || event.End.DateTime == "" {
		return true
	}
	return false
}

// CategoryFor picks the record category of an event: the first known
// category named by an Outlook category label or by the subject, otherwise
// fallback.
func CategoryFor(event CalendarEvent, fallback model.Category) model.Category {
	for _, label := range event.Categories {
		if c := model.ParseCategory(label); c.Known() {
			return c
		}
	}
	subject := strings.ToLower(event.Subject)
	for _, c := range model.KnownCategories {
		if strings.Contains(subject, strings.ToLower(string(c))) {
			return c
		}
	}
	return fallback
}

// personnelFor names the first attendee, or the placeholder when the event
// has none.
func personnelFor(event CalendarEvent) string {
	for _, a := range event.Attendees {
		if name := strings.TrimSpace(a.EmailAddress.Name); name != "" {
			return strings.ToUpper(name)
		}
	}
	return model.PlaceholderPersonnel
}

// MapEvent converts a Graph CalendarEvent into a service record. The date
// and clock times are taken in timezone.
func MapEvent(event CalendarEvent, timezone string, fallback model.Category) (model.ServiceRecord, error) {
	loc := location(timezone)
	start, err := parseGraphTime(event.Start.DateTime, loc)
	if err != nil {
		return model.ServiceRecord{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, loc)
	if err != nil {
		return model.ServiceRecord{}, fmt.Errorf("parsing end time: %w", err)
	}
	if !end.After(start) {
		return model.ServiceRecord{}, fmt.Errorf("event ends at or before its start")
	}
	if end.Sub(start) >= 24*time.Hour {
		return model.ServiceRecord{}, ErrEventTooLong
	}

	return model.NewRecord(
		IDPrefix+event.ID,
		CategoryFor(event, fallback),
		start.Format(timecalc.DateLayout),
		start.Format(timecalc.ClockLayout),
		end.Format(timecalc.ClockLayout),
		personnelFor(event),
	)
}

// MapEvents maps every importable event. seen, when non-nil, reports record
// IDs already in the store; those events are counted as skipped instead of
// being imported twice.
func MapEvents(events []CalendarEvent, timezone string, fallback model.Category, seen func(id string) bool, logger *zap.Logger) ([]model.ServiceRecord, SyncResult) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var (
		out    []model.ServiceRecord
		result SyncResult
		batch  = make(map[string]bool)
	)
	for _, event := range events {
		if shouldSkip(event) {
			result.Skipped++
			continue
		}
		id := IDPrefix + event.ID
		if batch[id] || (seen != nil && seen(id)) {
			logger.Debug("event already imported", zap.String("subject", event.Subject))
			result.Skipped++
			continue
		}
		r, err := MapEvent(event, timezone, fallback)
		if err != nil {
			logger.Warn("cannot map calendar event", zap.String("subject", event.Subject), zap.Error(err))
			result.Errors++
			continue
		}
		batch[id] = true
		out = append(out, r)
		result.Imported++
	}
	return out, result
}

// EventSource lists calendar events. *Client implements it.
type EventSource interface {
	GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error)
}

// Calendar is an import provider for a calendar window [From, To).
type Calendar struct {
	Source   EventSource
	From, To time.Time
	Timezone string
	// Category is assigned to events naming no known category.
	Category model.Category
	// Seen reports IDs already present in the store.
	Seen   func(id string) bool
	Logger *zap.Logger

	// Result holds the counters of the last Fetch. Read it only after the
	// import task has finished.
	Result SyncResult
}

// Name implements importer.Provider.
func (c *Calendar) Name() string { return "outlook" }

// Fetch implements importer.Provider.
func (c *Calendar) Fetch(ctx context.Context) ([]model.ServiceRecord, error) {
	events, err := c.Source.GetCalendarView(ctx, c.From, c.To, c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("fetching calendar events: %w", err)
	}
	records, result := MapEvents(events, c.Timezone, c.Category, c.Seen, c.Logger)
	c.Result = result
	return records, nil
}
