package heap

import "fmt"

// Slab is one "system allocation" per spec.md §3: a fixed word budget,
// bump-allocated from both ends (traced objects from the head/top,
// non-traced leaf payloads from the tail/bottom), belonging to exactly
// one generation at a time, doubly linked to its neighbors in that
// generation's slab list.
//
// The word budget is real bookkeeping (it is what decides when a
// collection or a new slab is needed); the objects themselves are
// ordinary Go allocations registered into Things, since letting Go's
// allocator and collector own the actual bytes is the idiomatic-Go
// realization of "memory safety" that spec.md's host systems language
// would get from manual slab bytes (see DESIGN.md).
type Slab struct {
	generation Generation
	isSingleton bool

	next, prev *Slab

	capacityWords uint32
	headAlloc     uint32 // bump pointer growing downward from the top
	tailAlloc     uint32 // bump pointer growing upward from the bottom

	cards CardTable

	// things holds every object resident in this slab, in allocation
	// order, so the collector can enumerate them without a global
	// registry scan.
	things []Thing
}

// NewStandardSlab constructs a slab sized to hold many small objects.
func NewStandardSlab(generation Generation, capacityWords uint32) *Slab {
	return &Slab{
		generation:    generation,
		capacityWords: capacityWords,
		cards:         newCardTable(capacityWords/CardWords + 1),
	}
}

// NewSingletonSlab constructs a slab sized to fit exactly one large
// object, per spec.md §4.2: "used when n > standard_max_object_size".
// Singleton slabs are never reused. Heap.Allocate places them in the
// hatchery, and the next MinorCollect drops them with every other
// hatchery slab, moving a still-reachable resident into the nursery's
// survivor slab.
func NewSingletonSlab(generation Generation, words uint32) *Slab {
	return &Slab{
		generation:    generation,
		isSingleton:   true,
		capacityWords: words,
		cards:         newCardTable(words/CardWords + 1),
	}
}

func (s *Slab) IsSingleton() bool { return s.isSingleton }
func (s *Slab) Generation() Generation { return s.generation }

// remaining returns how many words are free between the two bump
// pointers.
func (s *Slab) remaining() uint32 {
	used := s.headAlloc + s.tailAlloc
	if used >= s.capacityWords {
		return 0
	}
	return s.capacityWords - used
}

// AllocateHead reserves n words from the top of the slab for a traced
// object, returning the word offset of the reservation and true, or
// (0, false) if the slab lacks capacity.
func (s *Slab) AllocateHead(n uint32) (uint32, bool) {
	if n > s.remaining() {
		return 0, false
	}
	s.headAlloc += n
	return s.capacityWords - s.headAlloc, true
}

// AllocateTail reserves n words from the bottom of the slab for a
// non-traced leaf payload, returning the word offset and true, or
// (0, false) if the slab lacks capacity.
func (s *Slab) AllocateTail(n uint32) (uint32, bool) {
	if n > s.remaining() {
		return 0, false
	}
	offset := s.tailAlloc
	s.tailAlloc += n
	return offset, true
}

// Register attaches a freshly allocated Thing to this slab's bookkeeping
// and sets its header's generation to match.
func (s *Slab) Register(t Thing) {
	h := t.HeapHeader()
	h.generation = s.generation
	h.slab = s
	s.things = append(s.things, t)
}

// MarkDirty records a write into wordOffset as touching its containing
// card, per the write barrier contract in spec.md §4.2. Stack-field
// writes bypass this (no barrier needed, per spec.md §4.2's "trivially
// cheaper barrier-free path").
func (s *Slab) MarkDirty(wordOffset uint32) {
	s.cards.markDirty(CardOf(wordOffset))
}

func (s *Slab) String() string {
	return fmt.Sprintf("Slab{gen=%s singleton=%v used=%d/%d objects=%d}",
		s.generation, s.isSingleton, s.headAlloc+s.tailAlloc, s.capacityWords, len(s.things))
}
