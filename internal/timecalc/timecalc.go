package timecalc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical DD/MM/YYYY encoding of a record date.
const DateLayout = "02/01/2006"

// ClockLayout is the canonical 24-hour HH:MM encoding of a record time.
const ClockLayout = "15:04"

// isoDateLayout is the YYYY-MM-DD form produced by date pickers.
const isoDateLayout = "2006-01-02"

// Now is the clock used for the lenient date fallback. Tests replace it.
var Now = time.Now

// FormatError reports a time value that is not a well-formed HH:MM string.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid time %q (expected HH:MM): %v", e.Value, e.Err)
	}
	return fmt.Sprintf("invalid time %q (expected HH:MM)", e.Value)
}

func (e *FormatError) Unwrap() error { return e.Err }

var (
	errHourRange   = errors.New("hour out of range 0-23")
	errMinuteRange = errors.New("minute out of range 0-59")
)

// ParseClock parses an HH:MM value into minutes since midnight.
func ParseClock(s string) (int, error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, &FormatError{Value: s}
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, &FormatError{Value: s, Err: err}
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return 0, &FormatError{Value: s, Err: err}
	}
	if h < 0 || h > 23 {
		return 0, &FormatError{Value: s, Err: errHourRange}
	}
	if m < 0 || m > 59 {
		return 0, &FormatError{Value: s, Err: errMinuteRange}
	}
	return h*60 + m, nil
}

// ComputeDuration returns the hours elapsed between start and end, both HH:MM.
// An end earlier than start is an overnight shift crossing midnight once.
// The result is rounded to two decimals.
func ComputeDuration(start, end string) (float64, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	minutes := e - s
	if minutes < 0 {
		minutes += 24 * 60
	}
	return math.Round(float64(minutes)/60*100) / 100, nil
}

// FormatHours renders an hour total with one decimal, e.g. "36.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 1, 64) + "h"
}

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current date according to Now.
func Today() Date {
	return DateOf(Now())
}

// ParseDate parses a DD/MM/YYYY string. Malformed input yields Today()
// instead of an error so aggregation stays total.
func ParseDate(s string) Date {
	d, _ := ParseDateStrict(s)
	return d
}

// ParseDateStrict is ParseDate that also reports whether s was well formed.
// When ok is false the returned date is the Today() fallback.
func ParseDateStrict(s string) (d Date, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Today(), false
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v <= 0 {
			return Today(), false
		}
		n[i] = v
	}
	// Out-of-range days and months roll over, e.g. 31/02 becomes 03/03.
	return DateOf(time.Date(n[2], time.Month(n[1]), n[0], 0, 0, 0, 0, time.UTC)), true
}

// ParseBound parses a filter bound given as YYYY-MM-DD or DD/MM/YYYY.
// Unlike ParseDate it rejects malformed input.
func ParseBound(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(isoDateLayout, s); err == nil {
		return DateOf(t), nil
	}
	if d, ok := ParseDateStrict(s); ok {
		return d, nil
	}
	return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or DD/MM/YYYY)", s)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as DD/MM/YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1 ordering by (year, month, day).
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Weekday returns the day of the week, Sunday being 0.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// WeekOfMonth returns ceil((day + 6 - weekday) / 7) with Sunday as weekday 0.
func (d Date) WeekOfMonth() int {
	return (d.Day + 6 - int(d.Weekday()) + 6) / 7
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
