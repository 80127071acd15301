package domain

import (
	"bytes"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used by the records backend.
const DateLayout = "2006-01-02"

// Date is a calendar date (or timestamp) interpreted in the local time zone.
type Date struct {
	time.Time
}

// NewDate wraps t converted to local time.
func NewDate(t time.Time) Date {
	return Date{Time: t.In(time.Local)}
}

// ParseDate accepts "YYYY-MM-DD" (local midnight) and RFC 3339 timestamps.
func ParseDate(s string) (Date, error) {
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected %s or RFC3339", s, DateLayout)
	}
	return NewDate(t), nil
}

// SameMonth reports whether d falls in the same calendar month and year as t.
func (d Date) SameMonth(t time.Time) bool {
	t = t.In(time.Local)
	return d.Year() == t.Year() && d.Month() == t.Month()
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
