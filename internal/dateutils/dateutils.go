// Package dateutils provides the calendar-day Date type used by transactions
// and reminders, plus the month/week arithmetic the derived views rely on.
package dateutils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO = "2006-01-02"
	ClockLayout   = "15:04"
)

// CommonFormats is the list of layouts Parse accepts, in order. The first
// entry is the canonical write layout.
var CommonFormats = []string{
	DateLayoutISO,
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006/01/02",
}

// Date is a calendar day with no time-of-day or zone. The zero Date is
// "no date".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns a normalized Date for the given year, month and day.
func New(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{t.Year(), t.Month(), t.Day()}
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	return New(t.Date())
}

// Today returns the calendar day of now.
func Today(now time.Time) Date { return FromTime(now) }

func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d Date) Year() int { return d.y }
func (d Date) Month() time.Month { return d.m }
func (d Date) Day() int { return d.d }
func (d Date) IsZero() bool { return d == (Date{}) }
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date { return New(d.y, d.m, d.d+n) }

// Before reports whether d is strictly before x.
func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }

// After reports whether d is strictly after x.
func (d Date) After(x Date) bool { return d.Compare(x) > 0 }

// Compare returns -1, 0 or +1.
func (d Date) Compare(x Date) int {
	switch {
	case d.y != x.y:
		return sign(d.y - x.y)
	case d.m != x.m:
		return sign(int(d.m) - int(x.m))
	default:
		return sign(d.d - x.d)
	}
}

// Between reports whether from <= d <= to. A zero bound is open.
func (d Date) Between(from, to Date) bool {
	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date { return New(d.y, d.m, 1) }

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date { return New(d.y, d.m+1, 0) }

// StartOfWeek returns the most recent Sunday at or before d.
func (d Date) StartOfWeek() Date { return d.AddDays(-int(d.Weekday())) }

// SameMonth reports whether d and x fall in the same calendar month.
func (d Date) SameMonth(x Date) bool { return d.y == x.y && d.m == x.m }

// String formats the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(DateLayoutISO)
}

// Format formats the date with a time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// Parse parses a Date, trying each of CommonFormats in turn.
func Parse(str string) (Date, error) {
	str = CleanDateString(str)
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, str); err == nil {
			return New(t.Date()), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q, want format %q", str, DateLayoutISO)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Date {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any layout Parse understands, and "" for no date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if str == "" {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalCSV implements gocsv's TypeMarshaller.
func (d Date) MarshalCSV() (string, error) { return d.String(), nil }

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsClock reports whether s is a valid 24h "HH:mm" time of day.
func IsClock(s string) bool { return clockPattern.MatchString(s) }

// Clock formats the minute of t as "HH:mm".
func Clock(t time.Time) string { return t.Format(ClockLayout) }
