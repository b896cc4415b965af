package values

import (
	"fmt"
	"time"
)

// Date is a calendar date with no time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses an ISO calendar date, e.g. "2016-02-29".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Ref is an opaque reference to a document within a collection.
// Collection may be empty for top-level references.
type Ref struct {
	Collection string
	ID         string
}

func (r Ref) String() string {
	if r.Collection == "" {
		return fmt.Sprintf("ref(%s)", r.ID)
	}
	return fmt.Sprintf("ref(%s/%s)", r.Collection, r.ID)
}
