package date

import "fmt"

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange return the well known period containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Trailing returns the range from n days before today through today, n+1 days in all.
func Trailing(today Date, days int) Range {
	return Range{From: today.Add(-days), To: today}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Days returns the number of days in the range.
func (r Range) Days() int { return r.From.DaysUntil(r.To) + 1 }

// Identifier compute a short identifier for the Range, "2025-07" for a month.
func (r Range) Identifier() string {
	if r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To {
		return r.From.Format("2006-01")
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}
