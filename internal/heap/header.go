package heap

import "sync/atomic"

var nextID uint64

// Generation names the GC generation a Thing currently lives in, in
// allocation-age order (spec.md §2 leaf 3, glossary "Hatchery / Nursery /
// Tenured").
type Generation uint8

const (
	Hatchery Generation = iota
	Nursery
	Tenured
)

func (g Generation) String() string {
	switch g {
	case Hatchery:
		return "Hatchery"
	case Nursery:
		return "Nursery"
	case Tenured:
		return "Tenured"
	default:
		return "Generation(?)"
	}
}

// Header is the 8-byte-equivalent header every heap object carries per
// spec.md §3: format, size in words, generation, a mark bit, and an
// 8-bit format-specific user-data field (e.g. operative-vs-applicative
// on a NativeFunction). Size is immutable after allocation; Generation
// and Marked are mutated only by the collector and Slab bookkeeping.
type Header struct {
	format     Format
	sizeWords  uint32
	generation Generation
	marked     bool
	userData   uint8

	// slab and survivals are collector bookkeeping, not part of the
	// spec's described header fields, but are needed to implement
	// minor/major promotion without a physical relocating copy (see
	// DESIGN.md for why Go's own memory safety lets us track
	// generation membership instead of moving bytes).
	slab      *Slab
	survivals uint8
	id        uint64
}

// NewHeader constructs a header for a freshly allocated object. Every
// Thing embeds a Header and must not mutate format or sizeWords after
// construction.
func NewHeader(format Format, sizeWords uint32) Header {
	return Header{
		format:     format,
		sizeWords:  sizeWords,
		generation: Hatchery,
		id:         atomic.AddUint64(&nextID, 1),
	}
}

// Address returns a stable object identity. Objects are identified by an
// allocation-order id rather than a Go pointer address, since this
// package's collector never physically relocates bytes (real memory
// safety is Go's own GC's job) but whisper-level "addresses" must stay
// stable even as an object migrates between generations and slabs.
func (h *Header) Address() uintptr { return uintptr(h.id) }

func (h *Header) Format() Format         { return h.format }
func (h *Header) SizeWords() uint32      { return h.sizeWords }
func (h *Header) Generation() Generation { return h.generation }
func (h *Header) Marked() bool           { return h.marked }
func (h *Header) UserData() uint8        { return h.userData }
func (h *Header) SetUserData(v uint8)    { h.userData = v }

// Thing is the capability every heap object must satisfy: a header
// accessor plus a Scan that enumerates every heap-valued field, realizing
// spec.md §4.2's per-format Scan/Update pair without reflection. Update
// is not separately required in this Go realization because relocation
// never rewrites object bytes (see DESIGN.md); promotion instead updates
// bookkeeping on the Header itself.
type Thing interface {
	HeapHeader() *Header
	// Scan calls visit once for every outgoing heap reference the object
	// holds. Leaf formats (Format.IsLeaf()) may implement this as a
	// no-op.
	Scan(visit func(Thing))
	// Address returns a stable identity for the object, used by
	// value.Box's hashing of heap-referencing variants.
	Address() uintptr
}

// HeapTag satisfies value.HeapRef so that *Header-embedding types can be
// carried directly inside a value.Box without this package depending on
// package value (avoiding an import cycle: value must not import heap).
func (h *Header) HeapTag() uint8 { return uint8(h.format) }
