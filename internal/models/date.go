package models

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the wire and storage layout for expiry dates.
const ISODate = "2006-01-02"

// fallbackLayouts are tried, in order, when a date string is not a plain
// ISO calendar date. Timestamp layouts are truncated to their date component.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Date is a pure calendar date with no time-of-day component.
type Date struct {
	t time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses s as an ISO calendar date, falling back to a set of
// generic date and timestamp layouts. Timestamps are truncated to the day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ISODate, s); err == nil {
		return DateOf(t), nil
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("unparseable date %q", s)
}

// NormalizeDate coerces the shapes an expiry value can arrive in (ISO text,
// generic text, a timestamp, or an already-normalized Date) to a Date.
func NormalizeDate(v any) (Date, error) {
	switch x := v.(type) {
	case Date:
		return x, nil
	case time.Time:
		return DateOf(x), nil
	case string:
		return ParseDate(x)
	default:
		return Date{}, fmt.Errorf("unsupported date value %v (%T)", v, v)
	}
}

// String renders the date as an ISO calendar-date string.
func (d Date) String() string {
	return d.t.Format(ISODate)
}

// Time returns the date as a UTC midnight timestamp.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d falls on an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal reports day-granularity equality.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON renders the date as a quoted ISO calendar-date string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts an ISO date, a generic date string, or a full
// timestamp string, normalizing all of them to the calendar day.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return fmt.Errorf("missing date value")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
