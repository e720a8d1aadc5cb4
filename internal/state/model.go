package state

import (
	"time"
)

type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodPeaceful   Mood = "peaceful"
	MoodThoughtful Mood = "thoughtful"
	MoodNeutral    Mood = "neutral"
	MoodSad        Mood = "sad"
	MoodAnxious    Mood = "anxious"
)

// Moods lists the moods offered when writing an entry, in picker order.
var Moods = []Mood{MoodHappy, MoodPeaceful, MoodThoughtful, MoodNeutral, MoodSad, MoodAnxious}

type Activity struct {
	Type     string `json:"type"`
	Duration int    `json:"duration,omitempty"` // minutes
	Steps    int    `json:"steps,omitempty"`
	Icon     string `json:"icon"`
}

type Music struct {
	Track  string `json:"track"`
	Artist string `json:"artist"`
	Icon   string `json:"icon"`
}

// Entry is one journal entry. HandwritingData holds the sketch snapshot
// (a PNG data URL) or "" when the entry has no handwriting.
type Entry struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Date            time.Time `json:"date"`
	Mood            Mood      `json:"mood"`
	Images          []string  `json:"images"`
	Tags            []string  `json:"tags"`
	AudioURL        string    `json:"audio_url,omitempty"`
	HandwritingData string    `json:"handwriting_data,omitempty"`
	Location        string    `json:"location,omitempty"`
	Activity        *Activity `json:"activity,omitempty"`
	Music           *Music    `json:"music,omitempty"`
}

// Clone returns a copy that shares no slices or pointers with e.
func (e Entry) Clone() Entry {
	c := e
	c.Images = append([]string(nil), e.Images...)
	c.Tags = append([]string(nil), e.Tags...)
	if e.Activity != nil {
		a := *e.Activity
		c.Activity = &a
	}
	if e.Music != nil {
		m := *e.Music
		c.Music = &m
	}
	return c
}

// MoodData is a single point on the mood chart, Value on a 1-5 scale.
type MoodData struct {
	Date  time.Time `json:"date"`
	Mood  Mood      `json:"mood"`
	Value int       `json:"value"`
}

type PromptCategory string

const (
	CategoryReflection    PromptCategory = "reflection"
	CategoryGratitude     PromptCategory = "gratitude"
	CategoryCreativity    PromptCategory = "creativity"
	CategoryHealth        PromptCategory = "health"
	CategoryRelationships PromptCategory = "relationships"
	CategoryCareer        PromptCategory = "career"
)

type Prompt struct {
	ID       string         `json:"id"`
	Text     string         `json:"text"`
	Category PromptCategory `json:"category"`
}
