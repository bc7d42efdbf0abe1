package object

import (
	"sync"

	"github.com/kannanvijayan/whisper/internal/value"
)

// StringTable is the per-thread interning table keyed by content hash:
// interned-equal strings compare by pointer. Open addressing vs chaining
// is left to the implementer by spec.md §9; this uses a map of hash to
// bucket, i.e. chaining.
type StringTable struct {
	spoiler value.Spoiler
	mu      sync.Mutex
	buckets map[uint64][]*HeapString
}

func NewStringTable(spoiler value.Spoiler) *StringTable {
	return &StringTable{spoiler: spoiler, buckets: make(map[uint64][]*HeapString)}
}

// Intern returns the canonical *HeapString for the given UTF-16 content,
// allocating and registering a new one on first sight.
func (t *StringTable) Intern(units []uint16) *HeapString {
	h := t.hashUnits(units)
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range t.buckets[h] {
		if unitsEqual(s.Units, units) {
			return s
		}
	}
	s := NewHeapString(units)
	s.interned = true
	t.buckets[h] = append(t.buckets[h], s)
	return s
}

func (t *StringTable) hashUnits(units []uint16) uint64 {
	buf := make([]byte, len(units)*2)
	for i, u := range units {
		buf[2*i] = byte(u)
		buf[2*i+1] = byte(u >> 8)
	}
	return t.spoiler.HashString(string(buf))
}

func unitsEqual(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
