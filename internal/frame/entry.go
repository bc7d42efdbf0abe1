package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
)

// EntryFrame represents entering a new evaluation scope on a given syntax
// subtree: Step builds an InvokeSyntaxNodeFrame child over the same
// (syntax, scope); Resolve forwards the child's result unchanged.
type EntryFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Syntax syntax.NodeRef
	Scope  object.Wobject
}

func NewEntryFrame(cx *Context, parent Frame, syn syntax.NodeRef, scope object.Wobject) *EntryFrame {
	f := &EntryFrame{
		header: heap.NewHeader(heap.FormatFrame, 1),
		cx:     cx,
		parent: parent,
		Syntax: syn,
		Scope:  scope,
	}
	cx.Track(f)
	return f
}

func (f *EntryFrame) HeapHeader() *heap.Header { return &f.header }
func (f *EntryFrame) Address() uintptr         { return f.header.Address() }
func (f *EntryFrame) Parent() Frame            { return f.parent }

func (f *EntryFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *EntryFrame) Step() object.StepResult {
	child := NewInvokeSyntaxNodeFrame(f.cx, f, f.Syntax, f.Scope)
	return object.Continue(child)
}

func (f *EntryFrame) Resolve(result object.EvalResult) object.StepResult {
	return f.parent.Resolve(result)
}
