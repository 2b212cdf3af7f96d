package order

import (
	"time"

	"menuorder/internal/core/domain/model/kernel"
)

// Figures is the part of an order the admin stats are computed from.
type Figures struct {
	Status    Status
	Total     kernel.Money
	CreatedAt time.Time
}

// Stats are the aggregates shown on top of the admin order console.
type Stats struct {
	Total        int
	Active       int
	TodayCount   int
	TodayRevenue kernel.Money
}

// Summarize computes the console aggregates. "Today" is the calendar day of
// now in loc; revenue excludes cancelled orders.
func Summarize(figures []Figures, now time.Time, loc *time.Location) Stats {
	if loc == nil {
		loc = time.UTC
	}

	var stats Stats
	for _, f := range figures {
		stats.Total++
		if f.Status.IsActive() {
			stats.Active++
		}
		if !SameDay(f.CreatedAt, now, loc) {
			continue
		}
		stats.TodayCount++
		if f.Status != Cancelled {
			stats.TodayRevenue = stats.TodayRevenue.Add(f.Total)
		}
	}
	return stats
}

// DayBounds returns [start, end) of the calendar day containing t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	start, end := DayBounds(b, loc)
	return !a.Before(start) && a.Before(end)
}
