package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. The zero value means
// "unset" and serializes as an empty string, which the backend treats as an
// open range bound.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}

	return Date{t: t}, nil
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}

	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string

	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}
