package schedule

import "time"

// Week is a Monday-anchored calendar week. The zero value is not useful;
// construct with WeekOf.
type Week struct {
	start time.Time
}

// WeekOf returns the week containing t, snapped to its Monday at midnight
// in t's location.
func WeekOf(t time.Time) Week {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// time.Weekday puts Sunday at 0; shift so Monday is 0.
	back := (int(t.Weekday()) + 6) % 7
	return Week{start: t.AddDate(0, 0, -back)}
}

// Start returns the Monday the week begins on.
func (w Week) Start() time.Time {
	return w.start
}

// Dates returns the seven calendar dates of the week, Monday first.
func (w Week) Dates() [7]time.Time {
	var dates [7]time.Time
	for i := range dates {
		dates[i] = w.start.AddDate(0, 0, i)
	}
	return dates
}

// Next returns the following week.
func (w Week) Next() Week {
	return w.Offset(1)
}

// Previous returns the preceding week.
func (w Week) Previous() Week {
	return w.Offset(-1)
}

// Offset shifts the week by n whole weeks.
func (w Week) Offset(n int) Week {
	return Week{start: w.start.AddDate(0, 0, 7*n)}
}
