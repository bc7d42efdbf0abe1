package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// InvokeSyntaxNodeFrame is the universal dispatch frame: it maps a
// syntax node's AST::NodeType to a handler name, looks the name up on
// the current scope, and invokes the bound operative handler with a
// SyntaxNode argument. Rebinding any "@..." name on a scope changes the
// language's semantics for the subtree dispatched through that name and
// nothing else — this is the core extensibility mechanism.
type InvokeSyntaxNodeFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Syntax syntax.NodeRef
	Scope  object.Wobject
}

func NewInvokeSyntaxNodeFrame(cx *Context, parent Frame, syn syntax.NodeRef, scope object.Wobject) *InvokeSyntaxNodeFrame {
	f := &InvokeSyntaxNodeFrame{
		header: heap.NewHeader(heap.FormatFrame, 1),
		cx:     cx,
		parent: parent,
		Syntax: syn,
		Scope:  scope,
	}
	cx.Track(f)
	return f
}

func (f *InvokeSyntaxNodeFrame) HeapHeader() *heap.Header { return &f.header }
func (f *InvokeSyntaxNodeFrame) Address() uintptr         { return f.header.Address() }
func (f *InvokeSyntaxNodeFrame) Parent() Frame            { return f.parent }

func (f *InvokeSyntaxNodeFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *InvokeSyntaxNodeFrame) Step() object.StepResult {
	scope := f.Scope

	name, ok := f.Syntax.Type().HandlerName()
	if !ok {
		return object.Fail("InvokeSyntaxNodeFrame: unknown node type " + f.Syntax.Type().String())
	}

	desc, lookupState, found := scope.LookupProperty(name)
	if !found {
		return f.raise(object.NewException("Syntax method binding not found", mustInline(name)))
	}
	fn, err := reifyHandler(f.cx, desc, lookupState)
	if err != nil {
		return f.raise(object.NewException(err.Error(), mustInline(name)))
	}
	if !fn.Fn.IsOperative {
		return f.raise(object.NewException("Syntax method binding is not operative", mustInline(name)))
	}

	result := invokeOperative(f.cx, f, fn, []syntax.NodeRef{f.Syntax})
	switch result.Kind {
	case object.CallContinue:
		return object.Continue(result.Next.(Frame))
	default:
		return f.parent.Resolve(result.AsEval(f))
	}
}

func (f *InvokeSyntaxNodeFrame) Resolve(result object.EvalResult) object.StepResult {
	return f.parent.Resolve(result)
}

func (f *InvokeSyntaxNodeFrame) raise(exc *object.Exception) object.StepResult {
	return f.parent.Resolve(object.Exc(f, exc))
}

func mustInline(s string) value.Box {
	b, ok := value.TryInlineString(s)
	if !ok {
		return value.Undefined()
	}
	return b
}

// reifyHandler turns a found PropertyDescriptor into an invocable
// FunctionObject bound to the receiver it was found at, per the lookup
// protocol's self-preservation rule. Non-Method descriptors (a plain
// value bound under an "@..." name, or an accessor) cannot be invoked as
// a syntactic handler.
func reifyHandler(cx *Context, desc object.PropertyDescriptor, ls object.LookupState) (*object.FunctionObject, error) {
	if desc.Kind != object.DescMethod {
		return nil, errNotCallable
	}
	receiver := value.ObjectRef(ls.FoundAt)
	fo := object.NewFunctionObject(desc.Method, receiver, ls.FoundAt)
	cx.Track(fo)
	return fo, nil
}

var errNotCallable = notCallableErr{}

type notCallableErr struct{}

func (notCallableErr) Error() string { return "Syntax method binding is not a function" }
