package state

import (
	"slices"
	"strings"
	"time"
)

// Draft is the state of the new-entry form. The handwriting attachment is
// fed by sketch snapshots: "" removes it.
type Draft struct {
	Title       string
	Content     string
	Mood        Mood
	Location    string
	Images      []string
	Tags        []string
	Handwriting string
}

// NewDraft returns an empty draft with the neutral mood preselected.
func NewDraft() *Draft {
	return &Draft{Mood: MoodNeutral}
}

// AddTag appends a trimmed tag. Blank and duplicate tags are ignored; the
// return value reports whether the tag was added.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(d.Tags, tag) {
		return false
	}
	d.Tags = append(d.Tags, tag)
	return true
}

// RemoveTag drops every occurrence of tag.
func (d *Draft) RemoveTag(tag string) {
	d.Tags = slices.DeleteFunc(d.Tags, func(t string) bool { return t == tag })
}

// SetHandwriting records the latest sketch snapshot.
func (d *Draft) SetHandwriting(snapshot string) {
	d.Handwriting = snapshot
}

// Build turns the draft into an entry dated now. The ID is left for the
// store to assign.
func (d *Draft) Build(now time.Time) (Entry, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Entry{}, ErrEmptyTitle
	}
	mood := d.Mood
	if mood == "" {
		mood = MoodNeutral
	}
	return Entry{
		Title:           title,
		Content:         strings.TrimSpace(d.Content),
		Date:            now,
		Mood:            mood,
		Images:          append([]string{}, d.Images...),
		Tags:            append([]string{}, d.Tags...),
		Location:        strings.TrimSpace(d.Location),
		HandwritingData: d.Handwriting,
	}, nil
}
