package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// callState names the three states CallExprSyntaxFrame steps through.
type callState uint8

const (
	callStateCallee callState = iota
	callStateArg
	callStateInvoke
)

// CallExprSyntaxFrame evaluates a call expression's callee, then (for an
// applicative callee) each argument in order, then invokes.
type CallExprSyntaxFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	node  syntax.CallExprCursor
	Scope object.Wobject
	state callState
	argNo int

	callee   *object.FunctionObject
	operands []value.Box
}

func NewCallExprSyntaxFrame(cx *Context, parent Frame, node syntax.CallExprCursor, scope object.Wobject) *CallExprSyntaxFrame {
	f := &CallExprSyntaxFrame{
		header: heap.NewHeader(heap.FormatFrame, 1),
		cx:     cx,
		parent: parent,
		node:   node,
		Scope:  scope,
	}
	cx.Track(f)
	return f
}

func (f *CallExprSyntaxFrame) HeapHeader() *heap.Header { return &f.header }
func (f *CallExprSyntaxFrame) Address() uintptr         { return f.header.Address() }
func (f *CallExprSyntaxFrame) Parent() Frame            { return f.parent }

func (f *CallExprSyntaxFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
	if f.callee != nil {
		visit(f.callee)
	}
}

func (f *CallExprSyntaxFrame) Step() object.StepResult {
	switch f.state {
	case callStateCallee:
		child := NewInvokeSyntaxNodeFrame(f.cx, f, f.node.Callee(), f.Scope)
		return object.Continue(child)
	case callStateArg:
		child := NewInvokeSyntaxNodeFrame(f.cx, f, f.node.Arg(f.argNo), f.Scope)
		return object.Continue(child)
	case callStateInvoke:
		if f.callee.IsOperative() {
			child := NewInvokeOperativeFrame(f.cx, f.parent, f.callee, f.operandSyntax())
			return object.Continue(child)
		}
		child := NewInvokeApplicativeFrame(f.cx, f.parent, f.callee, f.operands)
		return object.Continue(child)
	default:
		return object.Fail("CallExprSyntaxFrame: unknown state")
	}
}

func (f *CallExprSyntaxFrame) operandSyntax() []syntax.NodeRef {
	n := f.node.ArgCount()
	out := make([]syntax.NodeRef, n)
	for i := 0; i < n; i++ {
		out[i] = f.node.Arg(i)
	}
	return out
}

func (f *CallExprSyntaxFrame) Resolve(result object.EvalResult) object.StepResult {
	if result.Kind == object.EvalError || result.Kind == object.EvalExc {
		return f.parent.Resolve(result)
	}

	switch f.state {
	case callStateCallee:
		v, excMsg := f.coerceValue(result, "callee")
		if excMsg != nil {
			return f.parent.Resolve(object.Exc(f, excMsg))
		}
		var fo *object.FunctionObject
		ok := false
		if v.IsObjectRef() {
			fo, ok = v.AsHeapRef().(*object.FunctionObject)
		}
		if !ok {
			return f.parent.Resolve(object.Exc(f, object.NewException("Callee expression is not callable", v)))
		}
		f.callee = fo
		n := f.node.ArgCount()
		if fo.IsOperative() || n == 0 {
			f.state = callStateInvoke
			return object.Continue(f)
		}
		f.state = callStateArg
		f.argNo = 0
		return object.Continue(f)

	case callStateArg:
		v, excMsg := f.coerceValue(result, "argument")
		if excMsg != nil {
			return f.parent.Resolve(object.Exc(f, excMsg))
		}
		f.operands = append(f.operands, v)
		if f.argNo+1 == f.node.ArgCount() {
			f.state = callStateInvoke
		} else {
			f.argNo++
		}
		return object.Continue(f)

	case callStateInvoke:
		return f.parent.Resolve(result)

	default:
		return object.Fail("CallExprSyntaxFrame: Resolve in unknown state")
	}
}

// coerceValue implements the Void-where-value-required coercion: Void
// from a subexpression becomes an Exc naming the offending sub-syntax.
func (f *CallExprSyntaxFrame) coerceValue(result object.EvalResult, what string) (value.Box, *object.Exception) {
	if result.Kind == object.EvalVoid {
		return value.Invalid, object.NewException("Void value where a value was required", mustInline(what))
	}
	return result.Value, nil
}

// invokeApplicative implements the native-vs-scripted dispatch specified
// for InvokeApplicativeFrame: native calls go straight through the
// stored function pointer; scripted calls build a fresh CallScope
// parented by the callee's captured scope, bind positional parameters,
// bind a freshly minted continuation under @retcont, and enter the body.
func invokeApplicative(cx *Context, parent Frame, fo *object.FunctionObject, args []value.Box) object.CallResult {
	switch fo.Fn.Kind {
	case object.FuncNative:
		ncx := object.NativeCallContext{Scope: fo.LookupAt, Receiver: fo.Receiver, Args: args, RaisingFrame: parent}
		attachSuspend(cx, parent, &ncx)
		return fo.Fn.NativeFn(ncx)
	case object.FuncScripted:
		if len(args) != len(fo.Fn.Params) {
			return object.CallExcResult(object.NewException("wrong number of arguments", value.Int32(int32(len(args)))))
		}
		callScope := object.NewCallScope(fo.Fn.CapturedScope)
		cx.Track(callScope)
		for i, p := range fo.Fn.Params {
			callScope.DefineProperty(p, object.MakeSlot(args[i], true))
		}
		retcont := object.NewContinuation(parent)
		cx.Track(retcont)
		callScope.DefineProperty("@retcont", object.MakeSlot(value.ObjectRef(retcont), false))
		entry := NewEntryFrame(cx, parent, fo.Fn.Syntax(), callScope)
		return object.CallContinueResult(entry)
	default:
		return object.CallErrorResult("invokeApplicative: unknown function kind")
	}
}

// invokeOperative mirrors invokeApplicative but binds raw, unevaluated
// SyntaxNode references (one per operand) instead of evaluated values,
// so the callee decides when, whether, and in which scope to evaluate
// each — the defining property of an operative function.
func invokeOperative(cx *Context, parent Frame, fo *object.FunctionObject, operands []syntax.NodeRef) object.CallResult {
	switch fo.Fn.Kind {
	case object.FuncNative:
		ncx := object.NativeCallContext{Scope: fo.LookupAt, Receiver: fo.Receiver, OperandSyntax: operands, RaisingFrame: parent}
		attachSuspend(cx, parent, &ncx)
		return fo.Fn.NativeFn(ncx)
	case object.FuncScripted:
		if len(fo.Fn.Params) > 0 && len(operands) != len(fo.Fn.Params) {
			return object.CallExcResult(object.NewException("wrong number of arguments", value.Int32(int32(len(operands)))))
		}
		callScope := object.NewCallScope(fo.Fn.CapturedScope)
		cx.Track(callScope)
		for i, p := range fo.Fn.Params {
			sn := object.NewSyntaxNode(operands[i])
			cx.Track(sn)
			callScope.DefineProperty(p, object.MakeSlot(value.ObjectRef(sn), true))
		}
		retcont := object.NewContinuation(parent)
		cx.Track(retcont)
		callScope.DefineProperty("@retcont", object.MakeSlot(value.ObjectRef(retcont), false))
		entry := NewEntryFrame(cx, parent, fo.Fn.Syntax(), callScope)
		return object.CallContinueResult(entry)
	default:
		return object.CallErrorResult("invokeOperative: unknown function kind")
	}
}

// attachSuspend wires NativeCallContext.Suspend so a native handler can
// request evaluation of a syntax node and resume afterward, without this
// package's object layer needing to know about frame.Frame concretely.
func attachSuspend(cx *Context, parent Frame, ncx *object.NativeCallContext) {
	snapshot := *ncx
	ncx.Suspend = func(scope object.Wobject, syntaxNode syntax.NodeRef, resume object.ResumeFunc, state any) object.CallResult {
		rf := NewNativeCallResumeFrame(cx, parent, snapshot, scope, syntaxNode, resume, state)
		return object.CallContinueResult(rf)
	}
}

// InvokeApplicativeFrame performs the dispatch invokeApplicative
// describes, as its own frame so CallExprSyntaxFrame's Invoke state can
// hand off to it uniformly with the operative case.
type InvokeApplicativeFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	callee *object.FunctionObject
	args   []value.Box
}

func NewInvokeApplicativeFrame(cx *Context, parent Frame, callee *object.FunctionObject, args []value.Box) *InvokeApplicativeFrame {
	f := &InvokeApplicativeFrame{
		header: heap.NewHeader(heap.FormatFrame, 1),
		cx:     cx,
		parent: parent,
		callee: callee,
		args:   args,
	}
	cx.Track(f)
	return f
}

func (f *InvokeApplicativeFrame) HeapHeader() *heap.Header { return &f.header }
func (f *InvokeApplicativeFrame) Address() uintptr         { return f.header.Address() }
func (f *InvokeApplicativeFrame) Parent() Frame            { return f.parent }

func (f *InvokeApplicativeFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	visit(f.callee)
}

func (f *InvokeApplicativeFrame) Step() object.StepResult {
	result := invokeApplicative(f.cx, f.parent, f.callee, f.args)
	if result.Kind == object.CallContinue {
		return object.Continue(result.Next.(Frame))
	}
	return f.parent.Resolve(result.AsEval(f))
}

func (f *InvokeApplicativeFrame) Resolve(result object.EvalResult) object.StepResult {
	return f.parent.Resolve(result)
}

// InvokeOperativeFrame is InvokeApplicativeFrame's operative counterpart.
type InvokeOperativeFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	callee   *object.FunctionObject
	operands []syntax.NodeRef
}

func NewInvokeOperativeFrame(cx *Context, parent Frame, callee *object.FunctionObject, operands []syntax.NodeRef) *InvokeOperativeFrame {
	f := &InvokeOperativeFrame{
		header:   heap.NewHeader(heap.FormatFrame, 1),
		cx:       cx,
		parent:   parent,
		callee:   callee,
		operands: operands,
	}
	cx.Track(f)
	return f
}

func (f *InvokeOperativeFrame) HeapHeader() *heap.Header { return &f.header }
func (f *InvokeOperativeFrame) Address() uintptr         { return f.header.Address() }
func (f *InvokeOperativeFrame) Parent() Frame            { return f.parent }

func (f *InvokeOperativeFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	visit(f.callee)
}

func (f *InvokeOperativeFrame) Step() object.StepResult {
	result := invokeOperative(f.cx, f.parent, f.callee, f.operands)
	if result.Kind == object.CallContinue {
		return object.Continue(result.Next.(Frame))
	}
	return f.parent.Resolve(result.AsEval(f))
}

func (f *InvokeOperativeFrame) Resolve(result object.EvalResult) object.StepResult {
	return f.parent.Resolve(result)
}
