package cache

import (
	"sort"
	"sync"
	"time"
)

// Memory is the process-wide [Store]. The zero value is not usable; create
// one with [NewMemory] and hand the same instance to every request handler.
type Memory struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]Entry)}
}

// Get returns the entry for name.
func (m *Memory) Get(name string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[name]
	return e, ok
}

// Put overwrites the latest version for name. RefreshedAt never moves
// backwards: a Put carrying an older timestamp than the stored entry still
// replaces the version but keeps the newer time.
func (m *Memory) Put(name, latest string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.entries[name]; ok && prev.RefreshedAt.After(at) {
		at = prev.RefreshedAt
	}
	m.entries[name] = Entry{Name: name, Latest: latest, RefreshedAt: at}
}

// Snapshot returns a sorted copy of every entry.
func (m *Memory) Snapshot() []Entry {
	m.mu.Lock()
	out := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of cached crates.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

var _ Store = (*Memory)(nil)
