package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// dotState names the two states DotExprSyntaxFrame steps through:
// evaluate the target, then invoke its @Dot handler.
type dotState uint8

const (
	dotStateTarget dotState = iota
	dotStateInvoke
)

// DotExprSyntaxFrame evaluates the target, looks up @Dot on the result,
// and invokes it operatively with the original dot-expression syntax
// node — so user code fully controls what dotting means for its values.
type DotExprSyntaxFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Node  syntax.DotExprCursor
	Scope object.Wobject
	state dotState
}

func NewDotExprSyntaxFrame(cx *Context, parent Frame, node syntax.DotExprCursor, scope object.Wobject) *DotExprSyntaxFrame {
	f := &DotExprSyntaxFrame{header: heap.NewHeader(heap.FormatFrame, 1), cx: cx, parent: parent, Node: node, Scope: scope}
	cx.Track(f)
	return f
}

func (f *DotExprSyntaxFrame) HeapHeader() *heap.Header { return &f.header }
func (f *DotExprSyntaxFrame) Address() uintptr         { return f.header.Address() }
func (f *DotExprSyntaxFrame) Parent() Frame            { return f.parent }
func (f *DotExprSyntaxFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *DotExprSyntaxFrame) Step() object.StepResult {
	child := NewInvokeSyntaxNodeFrame(f.cx, f, f.Node.Target(), f.Scope)
	return object.Continue(child)
}

func (f *DotExprSyntaxFrame) Resolve(result object.EvalResult) object.StepResult {
	if result.Kind == object.EvalError || result.Kind == object.EvalExc {
		return f.parent.Resolve(result)
	}
	target := result.Value
	if result.Kind == object.EvalVoid {
		return f.parent.Resolve(object.Exc(f, object.NewException("Void value where a value was required", mustInline("dot target"))))
	}

	scope, ok := targetScope(target)
	if !ok {
		return f.parent.Resolve(object.Exc(f, object.NewException("@Dot not defined", target)))
	}
	desc, lookupState, found := scope.LookupProperty("@Dot")
	if !found {
		return f.parent.Resolve(object.Exc(f, object.NewException("@Dot not defined", target)))
	}
	fo, err := reifyHandler(f.cx, desc, lookupState)
	if err != nil {
		return f.parent.Resolve(object.Exc(f, object.NewException(err.Error(), target)))
	}

	dotNode := syntax.NodeRef(f.Node.NodeRef)
	result2 := invokeOperative(f.cx, f.parent, fo, []syntax.NodeRef{dotNode})
	switch result2.Kind {
	case object.CallContinue:
		return object.Continue(result2.Next.(Frame))
	default:
		return f.parent.Resolve(result2.AsEval(f))
	}
}

// targetScope extracts the Wobject a value dispatches @Dot lookups
// against: an ObjectRef dispatches on itself, anything else has no
// property dict to search.
func targetScope(v value.Box) (object.Wobject, bool) {
	if !v.IsObjectRef() {
		return nil, false
	}
	w, ok := v.AsHeapRef().(object.Wobject)
	return w, ok
}
