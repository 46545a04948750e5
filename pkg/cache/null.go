package cache

import "time"

// Null is a [Store] that never stores anything, so every lookup is a miss.
// Useful for one-shot runs that must always hit the registry, and in tests.
type Null struct{}

// NewNull creates a null store.
func NewNull() Store {
	return Null{}
}

// Get always returns a miss.
func (Null) Get(string) (Entry, bool) { return Entry{}, false }

// Put does nothing.
func (Null) Put(string, string, time.Time) {}

// Snapshot always returns an empty slice.
func (Null) Snapshot() []Entry { return []Entry{} }

// Len always returns 0.
func (Null) Len() int { return 0 }

var _ Store = Null{}
