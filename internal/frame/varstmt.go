package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// VarSyntaxFrame handles both var (writable, optional initializer,
// missing initializer binds Undefined) and const (writable = false,
// initializer required by the parser).
type VarSyntaxFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Node      syntax.NodeRef // either a VarStmtCursor or ConstStmtCursor NodeRef
	IsConst   bool
	Scope     object.Wobject
	BindingNo int

	lastValue value.Box
}

func NewVarSyntaxFrame(cx *Context, parent Frame, node syntax.NodeRef, isConst bool, scope object.Wobject) *VarSyntaxFrame {
	f := &VarSyntaxFrame{
		header:    heap.NewHeader(heap.FormatFrame, 1),
		cx:        cx,
		parent:    parent,
		Node:      node,
		IsConst:   isConst,
		Scope:     scope,
		lastValue: value.Undefined(),
	}
	cx.Track(f)
	return f
}

func (f *VarSyntaxFrame) HeapHeader() *heap.Header { return &f.header }
func (f *VarSyntaxFrame) Address() uintptr         { return f.header.Address() }
func (f *VarSyntaxFrame) Parent() Frame            { return f.parent }

func (f *VarSyntaxFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *VarSyntaxFrame) bindingCount() int {
	if f.IsConst {
		return syntax.ConstStmtCursor{NodeRef: f.Node}.BindingCount()
	}
	return syntax.VarStmtCursor{NodeRef: f.Node}.BindingCount()
}

func (f *VarSyntaxFrame) bindingAt(i int) syntax.Binding {
	if f.IsConst {
		return syntax.ConstStmtCursor{NodeRef: f.Node}.BindingAt(i)
	}
	return syntax.VarStmtCursor{NodeRef: f.Node}.BindingAt(i)
}

func (f *VarSyntaxFrame) Step() object.StepResult {
	n := f.bindingCount()
	// var: pre-bind Undefined for every uninitialized slot until hitting
	// one with an initializer (or the end).
	for !f.IsConst && f.BindingNo < n {
		b := f.bindingAt(f.BindingNo)
		if b.HasInit {
			break
		}
		name := constantString(f.Node, b.NameConstIdx)
		f.Scope.DefineProperty(name, object.MakeSlot(value.Undefined(), true))
		f.lastValue = value.Undefined()
		f.BindingNo++
	}
	if f.BindingNo == n {
		return f.parent.Resolve(object.Value(f.lastValue))
	}
	b := f.bindingAt(f.BindingNo)
	child := NewInvokeSyntaxNodeFrame(f.cx, f, b.Init, f.Scope)
	return object.Continue(child)
}

func (f *VarSyntaxFrame) Resolve(result object.EvalResult) object.StepResult {
	if result.Kind == object.EvalError || result.Kind == object.EvalExc {
		return f.parent.Resolve(result)
	}
	v := result.Value
	if result.Kind == object.EvalVoid {
		return f.parent.Resolve(object.Exc(f, object.NewException("Void value where a value was required", mustInline("initializer"))))
	}
	b := f.bindingAt(f.BindingNo)
	name := constantString(f.Node, b.NameConstIdx)
	f.Scope.DefineProperty(name, object.MakeSlot(v, !f.IsConst))
	f.lastValue = v
	f.BindingNo++
	return object.Continue(f)
}
