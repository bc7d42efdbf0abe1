package object

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/value"
)

// Continuation wraps a Frame and offers ContinueWith, the mechanism a
// return statement uses to long-jump to the enclosing function's
// retcont: it resolves the captured frame with the returned value and
// hands the resulting StepResult back to the trampoline.
type Continuation struct {
	header heap.Header
	Target Frame
}

func NewContinuation(target Frame) *Continuation {
	return &Continuation{
		header: heap.NewHeader(heap.FormatContinuation, 1),
		Target: target,
	}
}

func (c *Continuation) HeapHeader() *heap.Header { return &c.header }
func (c *Continuation) Address() uintptr         { return c.header.Address() }
func (c *Continuation) HeapTag() uint8           { return c.header.HeapTag() }

func (c *Continuation) Scan(visit func(heap.Thing)) {
	if t, ok := c.Target.(heap.Thing); ok {
		visit(t)
	}
}

func (c *Continuation) ContinueWith(v value.Box) StepResult {
	return c.Target.Resolve(Value(v))
}
