package date

import "time"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// CalendarYear returns the range from January 1st to December 31st of year.
func CalendarYear(year int) Range {
	return Range{From: New(year, time.January, 1), To: New(year, time.December, 31)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Years returns the length of the range in years.
func (r Range) Years() float64 { return YearsBetween(r.From, r.To) }
