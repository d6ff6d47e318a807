package ledger

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Event date with explicit validity
// =============================================================================

// Date is a calendar date (optionally with a time component) attached to an
// event. The zero value is invalid. An invalid Date orders after every valid
// one and is never at-or-before any cutoff, so an unparseable date that
// somehow reaches a store can never satisfy a point-in-time query.
type Date struct {
	Time  time.Time
	Valid bool
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO 8601 date or timestamp.
func ParseDate(s string) (Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t.UTC(), Valid: true}, nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// NewDate builds a valid date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// Comparison. Valid dates order by time; an invalid date sorts after every
// valid date, and two invalid dates have no order between them.
func (d Date) Before(other Date) bool {
	if !d.Valid || !other.Valid {
		return d.Valid && !other.Valid
	}
	return d.Time.Before(other.Time)
}

func (d Date) After(other Date) bool { return other.Before(d) }

func (d Date) Equal(other Date) bool {
	if !d.Valid || !other.Valid {
		return !d.Valid && !other.Valid
	}
	return d.Time.Equal(other.Time)
}

func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }

func (d Date) String() string {
	if !d.Valid {
		return "invalid"
	}
	if d.Time.Equal(time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)) {
		return d.Time.Format("2006-01-02")
	}
	return d.Time.Format(time.RFC3339)
}
