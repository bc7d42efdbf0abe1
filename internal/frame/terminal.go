package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
)

// TerminalFrame is the sentinel root of every frame spine: parent is
// always nil. Resolve stores the incoming result and re-continues itself;
// the trampoline detects this frame as "done" rather than calling Step on
// it, since Step on a TerminalFrame is a protocol violation.
type TerminalFrame struct {
	header heap.Header
	cx     *Context

	done   bool
	result object.EvalResult
}

func NewTerminalFrame(cx *Context) *TerminalFrame {
	f := &TerminalFrame{header: heap.NewHeader(heap.FormatFrame, 1), cx: cx}
	cx.Track(f)
	return f
}

func (f *TerminalFrame) HeapHeader() *heap.Header     { return &f.header }
func (f *TerminalFrame) Address() uintptr             { return f.header.Address() }
func (f *TerminalFrame) Scan(visit func(heap.Thing)) {}
func (f *TerminalFrame) Parent() Frame                { return nil }

func (f *TerminalFrame) Step() object.StepResult {
	return object.Fail("protocol violation: Step invoked on TerminalFrame")
}

func (f *TerminalFrame) Resolve(result object.EvalResult) object.StepResult {
	f.done = true
	f.result = result
	return object.Continue(f)
}

func (f *TerminalFrame) Done() bool               { return f.done }
func (f *TerminalFrame) Result() object.EvalResult { return f.result }
