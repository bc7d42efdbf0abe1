package object

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/value"
)

// scanBox visits the heap.Thing underlying b, if any. Immediate variants
// (Int32, Bool, Str8, Str16, Undefined, Null, Magic) carry no heap edge
// and are silently skipped.
func scanBox(b value.Box, visit func(heap.Thing)) {
	if !b.IsObjectRef() && b.Tag() != value.TagHeapString && b.Tag() != value.TagHeapDouble {
		return
	}
	if t, ok := b.AsHeapRef().(heap.Thing); ok {
		visit(t)
	}
}
