package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = time.DateOnly

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date without a time of day, kept in UTC.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate accepts YYYY-MM-DD and RFC 3339 timestamps. The result always
// lies after 0001-01-01, which is the zero Date meaning "no date".
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)

	var d Date
	if t, err := time.Parse(DateLayout, s); err == nil {
		d = Date{Time: t}
	} else if t, err := time.Parse(time.RFC3339, s); err == nil {
		d = DateOf(t)
	} else {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	if d.Year() < 1 || d.IsZero() {
		return Date{}, fmt.Errorf("%w: %q is out of range", ErrInvalidDate, s)
	}
	return d, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}
