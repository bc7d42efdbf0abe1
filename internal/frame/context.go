// Package frame implements the continuation-style evaluation frames that
// drive program execution: a linked stack of heap objects each offering
// Step (advance by one small action) and Resolve (consume a child's
// result), trampolined by an outer loop in package interp until a
// TerminalFrame absorbs a final result.
package frame

import (
	"log/slog"

	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/value"
)

// Context is threaded through every frame at construction time: the heap
// those frames allocate into, the root chain new Local handles push onto,
// and the per-thread string table/spoiler used by native handlers that
// build or hash strings.
type Context struct {
	Heap    *heap.Heap
	Roots   *heap.RootChain
	Strings *object.StringTable
	Spoiler value.Spoiler

	// Logger is the Debug sink package interp's trampoline logs each
	// frame Step through (SPEC_FULL.md §4.8). Nil is a valid no-op,
	// matching Heap.SetLogger's default until an embedder wires one in.
	Logger *slog.Logger
}

// Frame is the capability the trampoline in package interp drives: Step
// advances computation, Resolve (inherited from object.Frame) consumes a
// child's result, and Parent exposes the spine so the collector and the
// acyclicity invariant can walk it.
type Frame interface {
	object.Frame
	Step() object.StepResult
	Parent() Frame
	HeapHeader() *heap.Header
	Scan(visit func(heap.Thing))
	Address() uintptr
}

// Track registers a freshly constructed heap object with the heap's
// slab/generation bookkeeping, per spec.md §4.2. Every frame constructor
// in this package calls it immediately after allocation, along with the
// scope/function/continuation constructors in this package's frame
// bodies — the places that actually drive evaluation forward, which is
// where the GC invariants in spec.md §8 (2, 3, 6) are observable. Go's
// own allocator already gives the underlying struct memory safety; this
// call is what makes the slab bump-allocation and minor-collection
// machinery in internal/heap a live part of every evaluation step
// instead of code only exercised by its own unit tests.
func (cx *Context) Track(t heap.Thing) {
	cx.Heap.Allocate(t, t.HeapHeader().SizeWords(), true)
}
