package state

import (
	"sync/atomic"
)

// Clock is a monotonically increasing revision counter. Every mutation of
// the store ticks it so views can tell whether what they rendered is stale.
type Clock struct {
	n atomic.Uint64
}

// Tick increments the clock and returns the new value.
func (c *Clock) Tick() uint64 {
	return c.n.Add(1)
}

// Now returns the current value without advancing it.
func (c *Clock) Now() uint64 {
	return c.n.Load()
}

type ChangeType string

const (
	ChangeAdd         ChangeType = "add"
	ChangeUpdate      ChangeType = "update"
	ChangeDelete      ChangeType = "delete"
	ChangeHandwriting ChangeType = "handwriting"
)

// Change describes one store mutation.
type Change struct {
	Type     ChangeType
	EntryID  string
	Revision uint64
}
