package state

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound   = errors.New("entry not found")
	ErrEmptyTitle = errors.New("entry title is empty")
)

// Store is the in-memory journal. Entries are kept newest first, the
// order they are listed on the timeline before day grouping.
type Store struct {
	clock   Clock
	entries []Entry
	byID    map[string]int
	logger  *zap.Logger
	now     func() time.Time

	// OnChange is called after every mutation, outside the lock.
	OnChange func(Change)

	mu sync.RWMutex
}

// NewStore creates an empty store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		byID:   make(map[string]int),
		logger: logger,
		now:    time.Now,
	}
}

// Add validates e, assigns an ID and date when missing, and puts it at the
// front of the journal. The stored copy is returned.
func (s *Store) Add(e Entry) (Entry, error) {
	e = e.Clone()
	e.Title = strings.TrimSpace(e.Title)
	e.Content = strings.TrimSpace(e.Content)
	if e.Title == "" {
		return Entry{}, ErrEmptyTitle
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = s.now()
	}
	if e.Mood == "" {
		e.Mood = MoodNeutral
	}

	s.mu.Lock()
	if _, exists := s.byID[e.ID]; exists {
		s.mu.Unlock()
		s.logger.Debug("Entry already present, ignoring", zap.String("id", e.ID))
		return s.Get(e.ID)
	}
	s.entries = append([]Entry{e}, s.entries...)
	s.reindex()
	rev := s.clock.Tick()
	s.mu.Unlock()

	s.logger.Info("Entry added", zap.String("id", e.ID), zap.Uint64("revision", rev))
	s.notify(Change{Type: ChangeAdd, EntryID: e.ID, Revision: rev})
	return e.Clone(), nil
}

// Get returns a copy of the entry with the given ID.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return s.entries[i].Clone(), nil
}

// List returns copies of all entries, newest first.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Update replaces the stored entry with the same ID.
func (s *Store) Update(e Entry) error {
	e = e.Clone()
	e.Title = strings.TrimSpace(e.Title)
	e.Content = strings.TrimSpace(e.Content)
	if e.Title == "" {
		return ErrEmptyTitle
	}

	s.mu.Lock()
	i, ok := s.byID[e.ID]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.entries[i] = e
	rev := s.clock.Tick()
	s.mu.Unlock()

	s.notify(Change{Type: ChangeUpdate, EntryID: e.ID, Revision: rev})
	return nil
}

// Delete removes an entry.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	i, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.reindex()
	rev := s.clock.Tick()
	s.mu.Unlock()

	s.logger.Info("Entry removed", zap.String("id", id))
	s.notify(Change{Type: ChangeDelete, EntryID: id, Revision: rev})
	return nil
}

// SetHandwriting stores a sketch snapshot on an entry. An empty snapshot
// removes the handwriting attachment.
func (s *Store) SetHandwriting(id, snapshot string) error {
	s.mu.Lock()
	i, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.entries[i].HandwritingData = snapshot
	rev := s.clock.Tick()
	s.mu.Unlock()

	s.notify(Change{Type: ChangeHandwriting, EntryID: id, Revision: rev})
	return nil
}

// Revision returns the logical time of the last mutation.
func (s *Store) Revision() uint64 {
	return s.clock.Now()
}

// Search returns entries whose title, content, location or tags contain
// query, case-insensitively, newest first.
func (s *Store) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.List()
	}
	var out []Entry
	for _, e := range s.List() {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

// Tags returns every distinct tag in use, sorted.
func (s *Store) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, e := range s.entries {
		for _, t := range e.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func matches(e Entry, q string) bool {
	for _, field := range []string{e.Title, e.Content, e.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func (s *Store) reindex() {
	clear(s.byID)
	for i, e := range s.entries {
		s.byID[e.ID] = i
	}
}

func (s *Store) notify(c Change) {
	if s.OnChange != nil {
		s.OnChange(c)
	}
}
