package heap

// GenerationList is the doubly-linked chain of slabs belonging to one
// generation (spec.md §3: "doubly-linked next/prev to other slabs in its
// generation").
type GenerationList struct {
	gen  Generation
	head *Slab
	tail *Slab
}

func newGenerationList(gen Generation) *GenerationList {
	return &GenerationList{gen: gen}
}

// Append links a new slab onto the tail of the generation's chain.
func (l *GenerationList) Append(s *Slab) {
	s.next = nil
	s.prev = l.tail
	if l.tail != nil {
		l.tail.next = s
	} else {
		l.head = s
	}
	l.tail = s
}

// Remove unlinks a slab from the chain. The collectors in this package
// do not call it: MinorCollect replaces the hatchery list wholesale and
// MajorCollect rebuilds the nursery list from the slabs it keeps.
func (l *GenerationList) Remove(s *Slab) {
	if s.prev != nil {
		s.prev.next = s.next
	} else if l.head == s {
		l.head = s.next
	}
	if s.next != nil {
		s.next.prev = s.prev
	} else if l.tail == s {
		l.tail = s.prev
	}
	s.next, s.prev = nil, nil
}

// Slabs returns every slab in the chain, head first.
func (l *GenerationList) Slabs() []*Slab {
	var out []*Slab
	for s := l.head; s != nil; s = s.next {
		out = append(out, s)
	}
	return out
}

// Things returns every object resident across every slab in the chain.
func (l *GenerationList) Things() []Thing {
	var out []Thing
	for s := l.head; s != nil; s = s.next {
		out = append(out, s.things...)
	}
	return out
}
