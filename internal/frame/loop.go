package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// LoopBreakSentinel is the reserved Exception message a break-class
// binding raises to unwind out of a LoopSyntaxFrame, per SPEC_FULL.md
// §4.6 ("modeled as a sentinel Exc with a reserved message the loop
// handler recognizes — no new EvalResult/CallResult variant is
// introduced").
const LoopBreakSentinel = "__loop_break__"

// LoopSyntaxFrame re-enters its body under a fresh child scope on every
// iteration, the same way a Kernel-style named-let would, until the body
// resolves with an Exc carrying LoopBreakSentinel (caught here and turned
// into the loop's own Undefined result) or any other non-Value/Void
// result (forwarded unchanged).
type LoopSyntaxFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Node  syntax.LoopStmtCursor
	Scope object.Wobject
}

func NewLoopSyntaxFrame(cx *Context, parent Frame, node syntax.LoopStmtCursor, scope object.Wobject) *LoopSyntaxFrame {
	f := &LoopSyntaxFrame{header: heap.NewHeader(heap.FormatFrame, 1), cx: cx, parent: parent, Node: node, Scope: scope}
	cx.Track(f)
	return f
}

func (f *LoopSyntaxFrame) HeapHeader() *heap.Header { return &f.header }
func (f *LoopSyntaxFrame) Address() uintptr         { return f.header.Address() }
func (f *LoopSyntaxFrame) Parent() Frame            { return f.parent }

func (f *LoopSyntaxFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *LoopSyntaxFrame) Step() object.StepResult {
	iterScope := object.NewScopeObject([]object.Wobject{f.Scope})
	f.cx.Track(iterScope)
	child := NewBlockSyntaxFrame(f.cx, f, syntax.BlockCursor{NodeRef: f.Node.Body()}, iterScope)
	return object.Continue(child)
}

func (f *LoopSyntaxFrame) Resolve(result object.EvalResult) object.StepResult {
	if result.Kind == object.EvalExc && result.Exc != nil && result.Exc.Message == LoopBreakSentinel {
		return f.parent.Resolve(object.Value(value.Undefined()))
	}
	if result.Kind == object.EvalError || result.Kind == object.EvalExc {
		return f.parent.Resolve(result)
	}
	return object.Continue(f)
}
