// Package date provides a day granularity date used for purchase and sale dates.
package date

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	layout     = "2006-01-02"
	readLayout = "2006-1-2" // single digit month and day are accepted on read
)

// Date is a calendar day.
//
// The zero value is an unset date.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns midnight UTC of that day, the canonical time of a Date.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns the normalized Date of year, month and day: New(2025, 2, 30) is 2025-03-02.
func New(year int, month time.Month, day int) Date {
	y, m, dd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, dd}
}

// Today returns the current date.
func Today() Date { return New(time.Now().Date()) }

func (d Date) IsZero() bool       { return d == Date{} }
func (d Date) Year() int          { return d.y }
func (d Date) Month() time.Month  { return d.m }
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }
func (d Date) After(x Date) bool  { return d.time().After(x.time()) }

// AddYears returns the same day i years later, normalized as New does.
func (d Date) AddYears(i int) Date { return New(d.y+i, d.m, d.d) }

// DaysUntil returns the number of days from d to x, negative when x is before d.
func (d Date) DaysUntil(x Date) int {
	return int(math.Round(x.time().Sub(d.time()).Hours() / 24))
}

// String formats the date as YYYY-MM-DD, the unset date as "".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(layout)
}

// Parse reads a YYYY-MM-DD date, single digit month and day accepted.
//
// A timestamp suffix ("2025-01-15T00:00:00.000Z") is ignored, and the empty string is the unset date.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	t, err := time.Parse(readLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", s, err)
	}
	return New(t.Date()), nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
