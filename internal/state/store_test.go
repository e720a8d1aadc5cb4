package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddAssignsIDAndPrepends(t *testing.T) {
	s := NewStore(nil)
	fixed := time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	var changes []Change
	s.OnChange = func(c Change) { changes = append(changes, c) }

	first, err := s.Add(Entry{Title: "  First  ", Content: " body "})
	require.NoError(t, err)
	second, err := s.Add(Entry{Title: "Second"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, "body", first.Content)
	assert.Equal(t, fixed, first.Date)
	assert.Equal(t, MoodNeutral, first.Mood)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Title)
	assert.Equal(t, uint64(2), s.Revision())
	require.Len(t, changes, 2)
	assert.Equal(t, Change{Type: ChangeAdd, EntryID: second.ID, Revision: 2}, changes[1])
}

func TestStoreRejectsBlankTitle(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Add(Entry{Title: "   "})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Revision())
}

func TestStoreDuplicateIDIsIgnored(t *testing.T) {
	s := NewStore(nil)
	_, err := s.Add(Entry{ID: "a", Title: "one"})
	require.NoError(t, err)
	got, err := s.Add(Entry{ID: "a", Title: "two"})
	require.NoError(t, err)
	assert.Equal(t, "one", got.Title)
	assert.Equal(t, 1, s.Len())
}

func TestStoreReturnsCopies(t *testing.T) {
	s := NewStore(nil)
	e, err := s.Add(Entry{Title: "t", Tags: []string{"a"}, Activity: &Activity{Type: "run"}})
	require.NoError(t, err)

	e.Tags[0] = "changed"
	e.Activity.Type = "changed"
	got, err := s.Get(e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.Equal(t, "run", got.Activity.Type)
}

func TestStoreUpdateDelete(t *testing.T) {
	s := NewStore(nil)
	a, _ := s.Add(Entry{Title: "a"})
	b, _ := s.Add(Entry{Title: "b"})

	a.Title = " a2 "
	a.Content = "  edited\n"
	require.NoError(t, s.Update(a))
	got, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.Title)
	assert.Equal(t, "edited", got.Content)

	assert.ErrorIs(t, s.Update(Entry{ID: "missing", Title: "x"}), ErrNotFound)
	assert.ErrorIs(t, s.Update(Entry{ID: a.ID}), ErrEmptyTitle)

	require.NoError(t, s.Delete(b.ID))
	_, err = s.Get(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	got, err = s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a2", got.Title)
	assert.ErrorIs(t, s.Delete(b.ID), ErrNotFound)
}

func TestStoreSetHandwritingEmptyRemoves(t *testing.T) {
	s := NewStore(nil)
	e, _ := s.Add(Entry{Title: "sketch"})

	require.NoError(t, s.SetHandwriting(e.ID, "data:image/png;base64,AAAA"))
	got, _ := s.Get(e.ID)
	assert.Equal(t, "data:image/png;base64,AAAA", got.HandwritingData)

	require.NoError(t, s.SetHandwriting(e.ID, ""))
	got, _ = s.Get(e.ID)
	assert.Empty(t, got.HandwritingData)

	assert.ErrorIs(t, s.SetHandwriting("nope", ""), ErrNotFound)
}

func TestStoreSearchAndTags(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, Seed(s))

	assert.Len(t, s.Search(""), 3)
	hits := s.Search("DIABLO")
	require.Len(t, hits, 1)
	assert.Equal(t, "2", hits[0].ID)
	assert.Len(t, s.Search("morning"), 2)
	assert.Empty(t, s.Search("volcano"))

	tags := s.Tags()
	assert.Contains(t, tags, "surfing")
	assert.IsIncreasing(t, tags)
}

func TestSeedOrdersNewestFirst(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, Seed(s))
	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})
}
