package model

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day or zone. It marshals to and
// from JSON as "YYYY-MM-DD".
type Date struct {
	t time.Time
}

// NewDate builds a Date from any time value, truncating to the day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string { return d.t.Format(dateLayout) }

// Before reports whether d falls before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.t.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a %q string", dateLayout)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DownloadRequest is the client's filter criteria for a downloads query.
// An empty Version means "all versions of the crate".
type DownloadRequest struct {
	Name    string `json:"name" binding:"required"`
	Version string `json:"version,omitempty"`
}

// DownloadPoint is one aggregated daily download total.
type DownloadPoint struct {
	Date      Date  `json:"date"`
	Downloads int64 `json:"downloads"`
}

// DownloadResponse echoes the request's identifying fields alongside the
// daily totals, ascending by date. Downloads is never nil so an empty
// result set encodes as a JSON array.
type DownloadResponse struct {
	Name      string          `json:"name"`
	Version   string          `json:"version,omitempty"`
	Downloads []DownloadPoint `json:"downloads"`
}

// CategoryCount is the number of crates filed under one category.
type CategoryCount struct {
	Category   string `json:"category"`
	CrateCount int64  `json:"crate_count"`
}
