package state

import (
	"time"
)

// SeedEntries returns the demo journal shown on first launch.
func SeedEntries() []Entry {
	return []Entry{
		{
			ID:      "1",
			Title:   "Morning at Ocean Beach",
			Content: "I dreamed about surfing last night. Whenever that happens, I know I'm going to have a great day on the water. The waves were perfect today - not too big, but enough to get some good rides in. The sun was shining and the water was surprisingly warm for this time of year.",
			Date:    time.Date(2025, time.April, 15, 9, 30, 0, 0, time.Local),
			Mood:    MoodHappy,
			Images: []string{
				"https://images.unsplash.com/photo-1513553404607-988bf2703777?auto=format&fit=crop&w=2069&q=80",
				"https://images.unsplash.com/photo-1502680390469-be75c86b636f?auto=format&fit=crop&w=2070&q=80",
			},
			Tags:     []string{"surfing", "ocean", "morning"},
			Location: "Ocean Beach, San Francisco",
			Activity: &Activity{Type: "surfing", Duration: 120, Icon: "🏄"},
		},
		{
			ID:      "2",
			Title:   "Afternoon hike, Mount Diablo",
			Content: "What a day! Shelly and Pedro are in town visiting from LA. We headed out to Mount Diablo to see the wildflowers in bloom. The trails were busy but not overcrowded. We hiked for about 3 hours and had a picnic at the summit. The views of the Bay Area were spectacular today - could see all the way to San Francisco.",
			Date:    time.Date(2025, time.April, 14, 15, 45, 0, 0, time.Local),
			Mood:    MoodPeaceful,
			Images: []string{
				"https://images.unsplash.com/photo-1551632811-561732d1e306?auto=format&fit=crop&w=2070&q=80",
				"https://images.unsplash.com/photo-1611243038248-5f1b21e1d2e0?auto=format&fit=crop&w=2071&q=80",
			},
			Tags:     []string{"hiking", "friends", "nature"},
			Location: "Mount Diablo State Park",
			Activity: &Activity{Type: "walking", Duration: 180, Steps: 9500, Icon: "👟"},
		},
		{
			ID:      "3",
			Title:   "Coffee and reflection",
			Content: "Took some time this morning to sit at my favorite café and reflect on the past month. I've been making good progress on my goals, especially with the new project at work. The team is coming together nicely, and I'm feeling more confident in my leadership role.",
			Date:    time.Date(2025, time.April, 13, 8, 15, 0, 0, time.Local),
			Mood:    MoodThoughtful,
			Images: []string{
				"https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?auto=format&fit=crop&w=2070&q=80",
			},
			Tags:     []string{"reflection", "coffee", "morning"},
			Location: "Ritual Coffee, Hayes Valley",
			Music:    &Music{Track: "Weightless", Artist: "Marconi Union", Icon: "🎵"},
		},
	}
}

// Seed adds SeedEntries to s, oldest first so the newest ends up on top.
func Seed(s *Store) error {
	seed := SeedEntries()
	for i := len(seed) - 1; i >= 0; i-- {
		if _, err := s.Add(seed[i]); err != nil {
			return err
		}
	}
	return nil
}
