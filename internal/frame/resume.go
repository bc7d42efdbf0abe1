package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
)

// NativeCallResumeFrame is the heap-saved continuation of a native
// handler that wants to evaluate a syntax node and then resume: the
// mechanism that lets native code be re-entrant through evaluation
// without host-language coroutines.
type NativeCallResumeFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	CallInfo   object.NativeCallContext
	EvalScope  object.Wobject
	SyntaxNode syntax.NodeRef
	ResumeFn   object.ResumeFunc
	State      any
}

func NewNativeCallResumeFrame(
	cx *Context,
	parent Frame,
	callInfo object.NativeCallContext,
	evalScope object.Wobject,
	syntaxNode syntax.NodeRef,
	resume object.ResumeFunc,
	state any,
) *NativeCallResumeFrame {
	f := &NativeCallResumeFrame{
		header:     heap.NewHeader(heap.FormatFrame, 1),
		cx:         cx,
		parent:     parent,
		CallInfo:   callInfo,
		EvalScope:  evalScope,
		SyntaxNode: syntaxNode,
		ResumeFn:   resume,
		State:      state,
	}
	cx.Track(f)
	return f
}

func (f *NativeCallResumeFrame) HeapHeader() *heap.Header { return &f.header }
func (f *NativeCallResumeFrame) Address() uintptr         { return f.header.Address() }
func (f *NativeCallResumeFrame) Parent() Frame            { return f.parent }

func (f *NativeCallResumeFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.EvalScope != nil {
		visit(f.EvalScope)
	}
}

func (f *NativeCallResumeFrame) Step() object.StepResult {
	entry := NewEntryFrame(f.cx, f, f.SyntaxNode, f.EvalScope)
	return object.Continue(entry)
}

func (f *NativeCallResumeFrame) Resolve(result object.EvalResult) object.StepResult {
	callResult := f.ResumeFn(f.CallInfo, f.State, result)
	if callResult.Kind == object.CallContinue {
		return object.Continue(callResult.Next.(Frame))
	}
	return f.parent.Resolve(callResult.AsEval(f))
}
