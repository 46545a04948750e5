// Package cache holds the latest published version of each crate seen by
// the server.
//
// The cache is an in-memory map shared by every hint request for the life of
// the process. It is never persisted and entries are never evicted: keys are
// the crate names of the manifests a user happens to open, which is a small
// closed set.
//
// # Freshness
//
// [Store.Get] does not decide freshness. Callers compare the entry against
// their freshness window with [Fresh] and re-fetch when it is stale:
//
//	e, ok := store.Get("serde")
//	if !ok || !cache.Fresh(e, clock.Now(), cache.DefaultFreshness) {
//	    latest, err := registry.LatestVersion(ctx, "serde")
//	    if err == nil {
//	        store.Put("serde", latest, clock.Now())
//	    }
//	}
//
// # Concurrency
//
// Implementations serialize each Get and Put individually. No lock is held
// across a registry call, so two requests that observe the same stale entry
// may both fetch it; the later Put simply overwrites the earlier one.
package cache

import "time"

// DefaultFreshness is how long a fetched version is trusted before the next
// hint request re-fetches it.
const DefaultFreshness = time.Hour

// Entry is the cached registry state for one crate.
type Entry struct {
	Name        string    `json:"name"`
	Latest      string    `json:"latest"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Store is a concurrency-safe mapping from crate name to [Entry].
type Store interface {
	// Get returns the entry for name, if any. ok is false when the crate
	// has never been fetched successfully.
	Get(name string) (e Entry, ok bool)

	// Put records latest as the newest version of name, refreshed at at.
	Put(name, latest string, at time.Time)

	// Snapshot returns a copy of all entries, sorted by name.
	Snapshot() []Entry

	// Len returns the number of cached crates.
	Len() int
}

// Fresh reports whether e was refreshed less than window before now.
func Fresh(e Entry, now time.Time, window time.Duration) bool {
	return now.Sub(e.RefreshedAt) < window
}
