package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestFresh(t *testing.T) {
	e := Entry{Name: "serde", Latest: "1.0.210", RefreshedAt: t0}

	tests := []struct {
		name  string
		after time.Duration
		want  bool
	}{
		{"just refreshed", 0, true},
		{"59 minutes", 59 * time.Minute, true},
		{"exactly one hour", time.Hour, false},
		{"61 minutes", 61 * time.Minute, false},
		{"clock behind", -time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fresh(e, t0.Add(tt.after), DefaultFreshness); got != tt.want {
				t.Errorf("Fresh() at +%v = %v, want %v", tt.after, got, tt.want)
			}
		})
	}
}

func TestMemoryGetPut(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Get("serde"); ok {
		t.Fatal("Get() on empty store returned ok")
	}

	m.Put("serde", "1.0.200", t0)
	e, ok := m.Get("serde")
	if !ok {
		t.Fatal("Get() after Put() returned !ok")
	}
	if e.Name != "serde" || e.Latest != "1.0.200" || !e.RefreshedAt.Equal(t0) {
		t.Errorf("Get() = %+v", e)
	}

	m.Put("serde", "1.0.210", t0.Add(2*time.Hour))
	e, _ = m.Get("serde")
	if e.Latest != "1.0.210" {
		t.Errorf("Latest = %q, want overwrite to 1.0.210", e.Latest)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoryRefreshedAtMonotonic(t *testing.T) {
	m := NewMemory()
	m.Put("tokio", "1.40.0", t0.Add(time.Hour))
	m.Put("tokio", "1.41.0", t0)

	e, _ := m.Get("tokio")
	if e.Latest != "1.41.0" {
		t.Errorf("Latest = %q, want last applied put 1.41.0", e.Latest)
	}
	if !e.RefreshedAt.Equal(t0.Add(time.Hour)) {
		t.Errorf("RefreshedAt = %v, must not move backwards from %v", e.RefreshedAt, t0.Add(time.Hour))
	}
}

func TestMemoryConcurrentOverwrite(t *testing.T) {
	m := NewMemory()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Put("anyhow", fmt.Sprintf("1.0.%d", i), t0.Add(time.Duration(i)*time.Second))
			m.Get("anyhow")
		}()
	}
	wg.Wait()

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want a single entry", m.Len())
	}
	e, _ := m.Get("anyhow")
	if e.Name != "anyhow" || e.Latest == "" {
		t.Errorf("entry corrupted: %+v", e)
	}
	if !e.RefreshedAt.Equal(t0.Add(49 * time.Second)) {
		t.Errorf("RefreshedAt = %v, want the newest put time", e.RefreshedAt)
	}
}

func TestMemorySnapshotSorted(t *testing.T) {
	m := NewMemory()
	m.Put("tokio", "1.41.0", t0)
	m.Put("anyhow", "1.0.89", t0)
	m.Put("serde", "1.0.210", t0)

	snap := m.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Snapshot() len = %d, want 3", len(snap))
	}
	for i, want := range []string{"anyhow", "serde", "tokio"} {
		if snap[i].Name != want {
			t.Errorf("Snapshot()[%d] = %s, want %s", i, snap[i].Name, want)
		}
	}

	snap[0].Latest = "mutated"
	if e, _ := m.Get("anyhow"); e.Latest != "1.0.89" {
		t.Error("Snapshot() should return a copy")
	}
}

func TestNull(t *testing.T) {
	s := NewNull()
	s.Put("serde", "1.0.210", t0)

	if _, ok := s.Get("serde"); ok {
		t.Error("Null.Get() should always miss")
	}
	if s.Len() != 0 {
		t.Errorf("Null.Len() = %d, want 0", s.Len())
	}
	if snap := s.Snapshot(); snap == nil || len(snap) != 0 {
		t.Errorf("Null.Snapshot() = %v, want empty non-nil slice", snap)
	}
}
