package state

import (
	"image/color"
	"strings"
)

type moodStyle struct {
	color color.NRGBA
	emoji string
	value int
}

var neutralStyle = moodStyle{color: color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}, emoji: "😐", value: 3}

var moodStyles = map[Mood]moodStyle{
	MoodHappy:      {color: color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}, emoji: "😊", value: 5},
	MoodPeaceful:   {color: color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}, emoji: "😌", value: 4},
	MoodThoughtful: {color: color.NRGBA{R: 0xc0, G: 0x84, B: 0xfc, A: 0xff}, emoji: "🤔", value: 3},
	MoodNeutral:    neutralStyle,
	MoodSad:        {color: color.NRGBA{R: 0x93, G: 0xc5, B: 0xfd, A: 0xff}, emoji: "😔", value: 2},
	MoodAnxious:    {color: color.NRGBA{R: 0xfb, G: 0x92, B: 0x3c, A: 0xff}, emoji: "😰", value: 1},
}

func styleOf(m Mood) moodStyle {
	if s, ok := moodStyles[Mood(strings.ToLower(string(m)))]; ok {
		return s
	}
	return neutralStyle
}

// MoodColor returns the swatch color of a mood; unknown moods are gray.
func MoodColor(m Mood) color.NRGBA { return styleOf(m).color }

// MoodEmoji returns the picker emoji of a mood.
func MoodEmoji(m Mood) string { return styleOf(m).emoji }

// MoodValue places a mood on the 1-5 chart scale.
func MoodValue(m Mood) int { return styleOf(m).value }

// KnownMood reports whether m is one of Moods.
func KnownMood(m Mood) bool {
	_, ok := moodStyles[Mood(strings.ToLower(string(m)))]
	return ok
}
