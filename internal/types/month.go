// Package types implements calendar types for the finance tracker.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Month is a month in a specific year, anchored at its first instant in
// the location it was created in.
type Month time.Time

// NewMonth returns a new Month in UTC.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, t.Location()))
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
// The output is the YYYY-MM representation of the month.
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Both "YYYY-MM" and RFC3339 timestamps are accepted, only the year and
// month are kept.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	return m.UnmarshalParam(value)
}

// UnmarshalParam parses query and form parameters for gin's binding.
func (m *Month) UnmarshalParam(param string) error {
	if param == "" {
		*m = Month{}
		return nil
	}

	if month, err := ParseMonth(param); err == nil {
		*m = month
		return nil
	}

	t, err := time.Parse(time.RFC3339, param)
	if err != nil {
		return fmt.Errorf("%s is neither a YYYY-MM month nor an RFC3339 timestamp", param)
	}

	*m = NewMonth(t.Year(), t.Month())
	return nil
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// First returns the first instant of the month.
func (m Month) First() time.Time {
	return time.Time(m)
}

// Last returns the last instant of the month.
func (m Month) Last() time.Time {
	return time.Time(m).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return !t.Before(m.First()) && !t.After(m.Last())
}

// AddMonthsClamped adds months to t, keeping the time of day. When the day
// of month does not exist in the target month, the last day of the target
// month is used instead, so that March 31st minus one month is February
// 28th (or 29th) rather than March 2nd or 3rd.
func AddMonthsClamped(t time.Time, months int) time.Time {
	target := MonthOf(t).AddDate(0, months)
	lastDay := time.Time(target).AddDate(0, 1, -1).Day()

	day := t.Day()
	if day > lastDay {
		day = lastDay
	}

	year, month, _ := time.Time(target).Date()
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
