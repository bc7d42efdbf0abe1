package object

import "github.com/kannanvijayan/whisper/internal/heap"

// HeapDouble carries a double whose exponent falls outside the
// immediate-Box range, as the heap-allocated tail of value.Box's Double
// variant.
type HeapDouble struct {
	header heap.Header
	Value  float64
}

func NewHeapDouble(v float64) *HeapDouble {
	return &HeapDouble{
		header: heap.NewHeader(heap.FormatDouble, 1),
		Value:  v,
	}
}

func (d *HeapDouble) HeapHeader() *heap.Header { return &d.header }
func (d *HeapDouble) Address() uintptr         { return d.header.Address() }
func (d *HeapDouble) HeapTag() uint8           { return d.header.HeapTag() }
func (d *HeapDouble) Scan(visit func(heap.Thing)) {}
