package heap

import "log/slog"

// Config sizes the heap's slabs, mirroring SPEC_FULL.md §4.2's config
// knobs (loaded from internal/config in the embedding runtime).
type Config struct {
	StandardSlabWords uint32
	MaxObjectWords    uint32
	PromoteAfter      uint8
}

// DefaultConfig matches the teacher-scale defaults used when no runtime
// config overrides them: a 64 KiB standard slab (8192 words), objects
// larger than 512 words route to a singleton slab, and an object
// survives two minor collections before promotion to tenured.
func DefaultConfig() Config {
	return Config{
		StandardSlabWords: 8192,
		MaxObjectWords:    512,
		PromoteAfter:      2,
	}
}

// Heap owns the three generations' slab chains and the allocation
// policy described in spec.md §4.2.
type Heap struct {
	cfg Config

	hatchery *GenerationList
	nursery  *GenerationList
	tenured  *GenerationList

	roots *RootChain

	stats    Stats
	weakRefs []weakRef

	logger *slog.Logger
}

// SetLogger attaches a structured logger the collector reports minor and
// major collections to at Debug level (SPEC_FULL.md §4.8). A nil logger
// (the zero value) is a valid no-op, matching every other collaborator in
// this package that has no log dependency of its own until one is wired.
func (h *Heap) SetLogger(logger *slog.Logger) { h.logger = logger }

func (h *Heap) debugf(msg string, args ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, args...)
	}
}

// Stats counts collector activity, surfaced through structured logging
// (SPEC_FULL.md §4.8).
type Stats struct {
	MinorCollections uint64
	MajorCollections uint64
	BytesAllocated   uint64
}

func NewHeap(cfg Config, roots *RootChain) *Heap {
	h := &Heap{
		cfg:      cfg,
		hatchery: newGenerationList(Hatchery),
		nursery:  newGenerationList(Nursery),
		tenured:  newGenerationList(Tenured),
		roots:    roots,
	}
	h.hatchery.Append(NewStandardSlab(Hatchery, cfg.StandardSlabWords))
	return h
}

func (h *Heap) Stats() Stats { return h.stats }

// Allocate registers a freshly-constructed Thing into the hatchery,
// allocating a new slab (and triggering a minor collection first, per
// spec.md §4.2's "Allocating into the hatchery while a collection is in
// progress is forbidden; the interpreter enters a quiescent point
// between any two frame steps", which in this trampoline-driven
// interpreter means Allocate is only ever called between Step/Resolve
// invocations — never nested inside one) if the active slab lacks room.
//
// traced selects allocate_head (GC-traced objects) vs allocate_tail
// (leaf payloads); words is the object's size in words, used purely for
// capacity accounting since Go already owns the real bytes.
func (h *Heap) Allocate(t Thing, words uint32, traced bool) {
	if words > h.cfg.MaxObjectWords {
		s := NewSingletonSlab(Hatchery, words)
		h.hatchery.Append(s)
		if traced {
			s.AllocateHead(words)
		} else {
			s.AllocateTail(words)
		}
		s.Register(t)
		h.stats.BytesAllocated += uint64(words) * 8
		return
	}

	slab := h.activeHatcherySlab()
	var ok bool
	if traced {
		_, ok = slab.AllocateHead(words)
	} else {
		_, ok = slab.AllocateTail(words)
	}
	if !ok {
		h.MinorCollect()
		slab = h.activeHatcherySlab()
		if traced {
			_, ok = slab.AllocateHead(words)
		} else {
			_, ok = slab.AllocateTail(words)
		}
		if !ok {
			slab = NewStandardSlab(Hatchery, h.cfg.StandardSlabWords)
			h.hatchery.Append(slab)
			if traced {
				slab.AllocateHead(words)
			} else {
				slab.AllocateTail(words)
			}
		}
	}
	slab.Register(t)
	h.stats.BytesAllocated += uint64(words) * 8
}

func (h *Heap) activeHatcherySlab() *Slab {
	slabs := h.hatchery.Slabs()
	if len(slabs) == 0 {
		s := NewStandardSlab(Hatchery, h.cfg.StandardSlabWords)
		h.hatchery.Append(s)
		return s
	}
	return slabs[len(slabs)-1]
}

// WriteBarrier is the write barrier for an assignment to a heap field
// within an already-allocated object. owner is the object being mutated.
// The header records no word offset within the slab, so the barrier
// always marks card 0 of owner's slab dirty, not the card that holds
// owner. An old-to-young reference survives a minor cycle because the
// mark phase traces the whole live graph, not because of the dirty card.
func (h *Heap) WriteBarrier(owner Thing) {
	hdr := owner.HeapHeader()
	if hdr.slab != nil {
		hdr.slab.MarkDirty(0)
	}
}
