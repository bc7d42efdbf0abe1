package frame

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// FileSyntaxFrame iterates a File node's statements. The file's own
// result is always Undefined once every statement has run (a File is a
// statement sequence, not an expression).
type FileSyntaxFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Node        syntax.FileCursor
	Scope       object.Wobject
	StatementNo int
}

func NewFileSyntaxFrame(cx *Context, parent Frame, node syntax.FileCursor, scope object.Wobject) *FileSyntaxFrame {
	f := &FileSyntaxFrame{header: heap.NewHeader(heap.FormatFrame, 1), cx: cx, parent: parent, Node: node, Scope: scope}
	cx.Track(f)
	return f
}

func (f *FileSyntaxFrame) HeapHeader() *heap.Header { return &f.header }
func (f *FileSyntaxFrame) Address() uintptr         { return f.header.Address() }
func (f *FileSyntaxFrame) Parent() Frame            { return f.parent }
func (f *FileSyntaxFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *FileSyntaxFrame) Step() object.StepResult {
	if f.StatementNo == f.Node.StatementCount() {
		return f.parent.Resolve(object.Value(value.Undefined()))
	}
	child := NewInvokeSyntaxNodeFrame(f.cx, f, f.Node.Statement(f.StatementNo), f.Scope)
	return object.Continue(child)
}

func (f *FileSyntaxFrame) Resolve(result object.EvalResult) object.StepResult {
	if result.Kind == object.EvalError || result.Kind == object.EvalExc {
		return f.parent.Resolve(result)
	}
	next := NewFileSyntaxFrame(f.cx, f.parent, f.Node, f.Scope)
	next.StatementNo = f.StatementNo + 1
	return object.Continue(next)
}

// BlockSyntaxFrame is identical to FileSyntaxFrame except the last
// statement's result becomes the block's own result. A block shares its
// enclosing construct's scope; it does not introduce a new one.
type BlockSyntaxFrame struct {
	header heap.Header
	cx     *Context
	parent Frame

	Node        syntax.BlockCursor
	Scope       object.Wobject
	StatementNo int
}

func NewBlockSyntaxFrame(cx *Context, parent Frame, node syntax.BlockCursor, scope object.Wobject) *BlockSyntaxFrame {
	f := &BlockSyntaxFrame{header: heap.NewHeader(heap.FormatFrame, 1), cx: cx, parent: parent, Node: node, Scope: scope}
	cx.Track(f)
	return f
}

func (f *BlockSyntaxFrame) HeapHeader() *heap.Header { return &f.header }
func (f *BlockSyntaxFrame) Address() uintptr         { return f.header.Address() }
func (f *BlockSyntaxFrame) Parent() Frame            { return f.parent }
func (f *BlockSyntaxFrame) Scan(visit func(heap.Thing)) {
	if f.parent != nil {
		visit(f.parent)
	}
	if f.Scope != nil {
		visit(f.Scope)
	}
}

func (f *BlockSyntaxFrame) Step() object.StepResult {
	if f.StatementNo == f.Node.StatementCount() {
		return f.parent.Resolve(object.Value(value.Undefined()))
	}
	child := NewInvokeSyntaxNodeFrame(f.cx, f, f.Node.Statement(f.StatementNo), f.Scope)
	return object.Continue(child)
}

func (f *BlockSyntaxFrame) Resolve(result object.EvalResult) object.StepResult {
	if result.Kind == object.EvalError || result.Kind == object.EvalExc {
		return f.parent.Resolve(result)
	}
	if f.StatementNo+1 == f.Node.StatementCount() {
		return f.parent.Resolve(result)
	}
	next := NewBlockSyntaxFrame(f.cx, f.parent, f.Node, f.Scope)
	next.StatementNo = f.StatementNo + 1
	return object.Continue(next)
}
