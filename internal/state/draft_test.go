package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftTags(t *testing.T) {
	d := NewDraft()
	assert.True(t, d.AddTag(" hiking "))
	assert.False(t, d.AddTag("hiking"))
	assert.False(t, d.AddTag("   "))
	assert.True(t, d.AddTag("friends"))
	assert.Equal(t, []string{"hiking", "friends"}, d.Tags)

	d.RemoveTag("hiking")
	assert.Equal(t, []string{"friends"}, d.Tags)
	d.RemoveTag("absent")
	assert.Equal(t, []string{"friends"}, d.Tags)
}

func TestDraftBuild(t *testing.T) {
	now := time.Date(2025, 4, 16, 8, 0, 0, 0, time.UTC)
	d := NewDraft()
	_, err := d.Build(now)
	assert.ErrorIs(t, err, ErrEmptyTitle)

	d.Title = " Evening walk "
	d.Content = " quiet streets "
	d.Location = " Mission "
	d.AddTag("walk")
	d.SetHandwriting("data:image/png;base64,AAAA")
	e, err := d.Build(now)
	require.NoError(t, err)
	assert.Equal(t, "Evening walk", e.Title)
	assert.Equal(t, "quiet streets", e.Content)
	assert.Equal(t, "Mission", e.Location)
	assert.Equal(t, MoodNeutral, e.Mood)
	assert.Equal(t, now, e.Date)
	assert.Equal(t, []string{"walk"}, e.Tags)
	assert.Equal(t, "data:image/png;base64,AAAA", e.HandwritingData)

	d.SetHandwriting("")
	e, err = d.Build(now)
	require.NoError(t, err)
	assert.Empty(t, e.HandwritingData)
}
