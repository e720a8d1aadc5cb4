package state

import (
	"time"
)

// PatternNotes are the canned observations shown under the mood chart.
var PatternNotes = []string{
	"You tend to feel more positive on weekends.",
	"Your mood improves after writing about gratitude.",
	"Entries about work often correlate with stress.",
	"You've had more positive days than negative this month.",
}

// Insights summarizes mood data for the sidebar panel.
type Insights struct {
	Average    float64
	MostCommon Mood
	Count      int
	// Weekday holds the average value per weekday, Monday first; zero
	// where there is no data.
	Weekday [7]float64
	Notes   []string
}

// Analyze computes insights over data. On ties the mood seen first in data
// wins.
func Analyze(data []MoodData) Insights {
	in := Insights{Count: len(data), Notes: PatternNotes}
	if len(data) == 0 {
		return in
	}

	var (
		sum       int
		counts    = make(map[Mood]int)
		order     []Mood
		daySums   [7]int
		dayCounts [7]int
	)
	for _, d := range data {
		sum += d.Value
		if counts[d.Mood] == 0 {
			order = append(order, d.Mood)
		}
		counts[d.Mood]++
		i := mondayIndex(d.Date.Weekday())
		daySums[i] += d.Value
		dayCounts[i]++
	}
	in.Average = float64(sum) / float64(len(data))
	best := 0
	for _, m := range order {
		if counts[m] > best {
			best = counts[m]
			in.MostCommon = m
		}
	}
	for i := range in.Weekday {
		if dayCounts[i] > 0 {
			in.Weekday[i] = float64(daySums[i]) / float64(dayCounts[i])
		}
	}
	return in
}

// MoodDataFrom derives chart points from entries.
func MoodDataFrom(entries []Entry) []MoodData {
	out := make([]MoodData, 0, len(entries))
	for _, e := range entries {
		out = append(out, MoodData{Date: e.Date, Mood: e.Mood, Value: MoodValue(e.Mood)})
	}
	return out
}

// WeekdayLabels are the chart column labels matching Insights.Weekday.
var WeekdayLabels = [7]string{"M", "T", "W", "T", "F", "S", "S"}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
