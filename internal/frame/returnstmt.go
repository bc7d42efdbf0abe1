package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// ReturnStmtSyntaxFrame evaluates an optional return expression, then
// long-jumps to the enclosing function's @retcont.
type ReturnStmtSyntaxFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Node  syntax.ReturnStmtCursor
	Scope object.Wobject
}

func NewReturnStmtSyntaxFrame(cx *Context, parent Frame, node syntax.ReturnStmtCursor, scope object.Wobject) *ReturnStmtSyntaxFrame {
	f := &ReturnStmtSyntaxFrame{header: heap.NewHeader(heap.FormatFrame, 1), cx: cx, parent: parent, Node: node, Scope: scope}
	cx.Track(f)
	return f
}

func (f *ReturnStmtSyntaxFrame) HeapHeader() *heap.Header { return &f.header }
func (f *ReturnStmtSyntaxFrame) Address() uintptr         { return f.header.Address() }
func (f *ReturnStmtSyntaxFrame) Parent() Frame            { return f.parent }

func (f *ReturnStmtSyntaxFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *ReturnStmtSyntaxFrame) Step() object.StepResult {
	if !f.Node.HasExpr() {
		return f.Resolve(object.Value(value.Undefined()))
	}
	child := NewInvokeSyntaxNodeFrame(f.cx, f, f.Node.Expr(), f.Scope)
	return object.Continue(child)
}

func (f *ReturnStmtSyntaxFrame) Resolve(result object.EvalResult) object.StepResult {
	if result.Kind == object.EvalError || result.Kind == object.EvalExc {
		return f.parent.Resolve(result)
	}

	desc, _, found := f.Scope.LookupProperty("@retcont")
	if !found {
		return f.parent.Resolve(object.Exc(f, object.NewException("return used in non-returnable context.")))
	}
	if desc.Kind != object.DescValue || !desc.Value.IsObjectRef() {
		return f.parent.Resolve(object.Exc(f, object.NewException("@retcont is not an object")))
	}
	cont, ok := desc.Value.AsHeapRef().(*object.Continuation)
	if !ok {
		return f.parent.Resolve(object.Exc(f, object.NewException("@retcont is not a continuation")))
	}

	v := result.Value
	if result.Kind == object.EvalVoid {
		v = value.Undefined()
	}
	step := cont.ContinueWith(v)
	if step.Err != "" {
		return object.Fail(step.Err)
	}
	return object.Continue(step.Next.(Frame))
}
