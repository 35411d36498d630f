package itinerary

import (
	"fmt"
	"time"
)

// ExpandDateRange converts a trip's start and end dates into an ordered
// sequence of calendar days, inclusive of both endpoints. Times of day are
// discarded; the result length is the whole-day span plus one.
func ExpandDateRange(start, end time.Time) ([]time.Time, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}

	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidRange, end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
