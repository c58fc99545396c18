package rancho

import (
	"time"
)

// =============================================================================
// DATE - Calendar-day abstraction (registrations are keyed by calendar day)
// =============================================================================

// Date is a calendar day with no time-of-day component. All comparisons and
// arithmetic operate at day granularity; the zero value is the zero date.
type Date struct {
	t time.Time
}

// ISODate is the canonical key format for dates across the system.
const ISODate = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// MustParseDate is for tests and literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay reports Monday through Friday. No holiday calendar is
// modeled: an administrative block is how a holiday is taken off the menu.
func (d Date) IsBusinessDay() bool { return !d.IsWeekend() }

func (d Date) String() string { return d.t.Format(ISODate) }

// AddBusinessDays advances n business days past d, skipping Saturdays and
// Sundays. The start date itself is never counted, so a Friday advanced by
// one business day lands on the following Monday. n is small (the widest
// observed window is ~20 days), so day-by-day iteration is fine.
func (d Date) AddBusinessDays(n int) Date {
	current := d
	for count := 0; count < n; {
		current = current.AddDays(1)
		if current.IsBusinessDay() {
			count++
		}
	}
	return current
}

// =============================================================================
// CLOCK - Injected "today" provider
// =============================================================================

// Clock supplies the current calendar day. The engine never reads the wall
// clock directly so date-boundary behavior is testable.
type Clock interface {
	Today() Date
}

// SystemClock returns today as the LOCAL calendar day. Taking the date
// portion of a UTC instant would shift eligibility by a day for users west
// of Greenwich in the evening, which is exactly the off-by-one the original
// deployment hit.
type SystemClock struct {
	// Location overrides the process-local timezone when set.
	Location *time.Location
}

func (c SystemClock) Today() Date {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	return NewDate(now.Year(), now.Month(), now.Day())
}

// FixedClock pins "today" for tests.
type FixedClock struct {
	Day Date
}

func (c FixedClock) Today() Date { return c.Day }
