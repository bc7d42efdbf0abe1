package object

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// FunctionKind discriminates Function's two concrete shapes.
type FunctionKind uint8

const (
	FuncNative FunctionKind = iota
	FuncScripted
)

// ResumeFunc is the host function a native handler supplies to Suspend:
// once the requested evaluation finishes, the trampoline invokes it with
// the original call context, the opaque state the handler asked to keep
// alive, and the child's result, exactly as if the handler had blocked
// and resumed in place.
type ResumeFunc func(ncx NativeCallContext, state any, childResult EvalResult) CallResult

// NativeCallContext is everything a NativeFunc needs to act: the scope
// the call happened in, the receiver, and either its evaluated arguments
// (applicative) or its unevaluated operand syntax (operative) — never
// both populated for a given call. Suspend lets a handler request
// evaluation of a syntax node and resume afterward without the host
// language's own coroutines; it is filled in by package frame when
// constructing the context, which is how this package avoids importing
// frame (frame already imports this package).
type NativeCallContext struct {
	Scope         Wobject
	Receiver      value.Box
	Args          []value.Box
	OperandSyntax []syntax.NodeRef
	RaisingFrame  Frame
	Suspend       func(scope Wobject, syntaxNode syntax.NodeRef, resume ResumeFunc, state any) CallResult
}

// NativeFunc is a host-language function pointer bound into a Function.
// It returns a CallResult exactly as a scripted handler's invocation
// would: Value/Void/Error/Exc or Continue(next_frame) when it needs to
// evaluate something and resume later through a NativeCallResumeFrame.
type NativeFunc func(cx NativeCallContext) CallResult

// Function is the discriminated union described for the source
// language's callable values: Native{fp, is_operative} or
// Scripted{pst, offset, captured_scope, is_operative}.
type Function struct {
	header heap.Header

	Kind        FunctionKind
	IsOperative bool
	Name        string

	// Native fields.
	NativeFn NativeFunc

	// Scripted fields.
	PST           *syntax.PackedSyntaxTree
	Offset        uint32
	Params        []string
	CapturedScope Wobject
}

func NewNativeFunction(name string, isOperative bool, fn NativeFunc) *Function {
	return &Function{
		header:      heap.NewHeader(heap.FormatNativeFunction, 1),
		Kind:        FuncNative,
		IsOperative: isOperative,
		Name:        name,
		NativeFn:    fn,
	}
}

func NewScriptedFunction(name string, isOperative bool, pst *syntax.PackedSyntaxTree, offset uint32, params []string, captured Wobject) *Function {
	return &Function{
		header:        heap.NewHeader(heap.FormatScriptedFunction, 1),
		Kind:          FuncScripted,
		IsOperative:   isOperative,
		Name:          name,
		PST:           pst,
		Offset:        offset,
		Params:        params,
		CapturedScope: captured,
	}
}

func (f *Function) HeapHeader() *heap.Header { return &f.header }
func (f *Function) Address() uintptr         { return f.header.Address() }
func (f *Function) HeapTag() uint8           { return f.header.HeapTag() }

func (f *Function) Scan(visit func(heap.Thing)) {
	if f.CapturedScope != nil {
		visit(f.CapturedScope)
	}
}

// Syntax returns the scripted function body as a NodeRef, rooted at the
// stored (pst, offset) pair.
func (f *Function) Syntax() syntax.NodeRef {
	return syntax.NodeRef{PST: f.PST, Offset: f.Offset}
}

// FunctionObject binds a Function to a receiver and the LookupState the
// method was found at, per the lookup protocol's self-preservation
// requirement under delegation.
type FunctionObject struct {
	header heap.Header

	Fn       *Function
	Receiver value.Box
	LookupAt Wobject
}

func NewFunctionObject(fn *Function, receiver value.Box, lookupAt Wobject) *FunctionObject {
	return &FunctionObject{
		header:   heap.NewHeader(heap.FormatFunctionObject, 1),
		Fn:       fn,
		Receiver: receiver,
		LookupAt: lookupAt,
	}
}

func (fo *FunctionObject) HeapHeader() *heap.Header { return &fo.header }
func (fo *FunctionObject) Address() uintptr         { return fo.header.Address() }
func (fo *FunctionObject) HeapTag() uint8           { return fo.header.HeapTag() }

func (fo *FunctionObject) Scan(visit func(heap.Thing)) {
	visit(fo.Fn)
	if fo.LookupAt != nil {
		visit(fo.LookupAt)
	}
	scanBox(fo.Receiver, visit)
}

func (fo *FunctionObject) IsOperative() bool { return fo.Fn.IsOperative }
func (fo *FunctionObject) ParamCount() int   { return len(fo.Fn.Params) }
