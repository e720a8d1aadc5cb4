package state

import (
	"sort"
	"time"
)

// DayKeyLayout is the grouping key of the timeline.
const DayKeyLayout = "2006-01-02"

// Day is one timeline section.
type Day struct {
	Key     string
	Date    time.Time // local midnight
	Entries []Entry
}

// Timeline groups entries by local calendar day. Days are newest first and
// so are the entries inside each day.
func Timeline(entries []Entry) []Day {
	byKey := make(map[string]*Day)
	for _, e := range entries {
		local := e.Date.Local()
		key := local.Format(DayKeyLayout)
		d, ok := byKey[key]
		if !ok {
			y, m, dd := local.Date()
			d = &Day{Key: key, Date: time.Date(y, m, dd, 0, 0, 0, 0, time.Local)}
			byKey[key] = d
		}
		d.Entries = append(d.Entries, e)
	}

	days := make([]Day, 0, len(byKey))
	for _, d := range byKey {
		sort.SliceStable(d.Entries, func(i, j int) bool {
			return d.Entries[i].Date.After(d.Entries[j].Date)
		})
		days = append(days, *d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Key > days[j].Key })
	return days
}
