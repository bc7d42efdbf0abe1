package object

import (
	"unicode/utf16"

	"github.com/kannanvijayan/whisper/internal/heap"
)

// HeapString is a heap-allocated string: length plus UTF-16 code units,
// used whenever content overflows the inline Str8/Str16 Box variants.
// Heap strings may be interned in a per-thread StringTable so that
// interned-equal strings compare by pointer.
type HeapString struct {
	header   heap.Header
	Units    []uint16
	interned bool
}

func NewHeapString(units []uint16) *HeapString {
	return &HeapString{
		header: heap.NewHeader(heap.FormatString, uint32(1+len(units)/2)),
		Units:  units,
	}
}

func (s *HeapString) HeapHeader() *heap.Header { return &s.header }
func (s *HeapString) Address() uintptr         { return s.header.Address() }
func (s *HeapString) HeapTag() uint8           { return s.header.HeapTag() }

// Scan is a no-op: a string's payload is purely numeric code units.
func (s *HeapString) Scan(visit func(heap.Thing)) {}

func (s *HeapString) ToGoString() string { return string(utf16.Decode(s.Units)) }

func (s *HeapString) IsInterned() bool { return s.interned }
