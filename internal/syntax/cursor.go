package syntax

// This file gives each AST.NodeType a typed cursor exposing its child
// offsets, constant IDs, and counts, per spec.md §4.3. Every cursor is a
// thin wrapper over a NodeRef; none of them copy data out of the packed
// array.

// FileCursor / BlockCursor: a sized list of statements. extra = count.
type FileCursor struct{ NodeRef }
type BlockCursor struct{ NodeRef }

func (c FileCursor) StatementCount() int       { return int(c.Extra()) }
func (c FileCursor) Statement(i int) NodeRef   { return c.Child(0, i) }
func (c BlockCursor) StatementCount() int      { return int(c.Extra()) }
func (c BlockCursor) Statement(i int) NodeRef  { return c.Child(0, i) }

// ExprStmtCursor: one child, the expression.
type ExprStmtCursor struct{ NodeRef }

func (c ExprStmtCursor) Expr() NodeRef { return c.Child(0, 0) }

// ReturnStmtCursor: extra = hasExpr.
type ReturnStmtCursor struct{ NodeRef }

func (c ReturnStmtCursor) HasExpr() bool { return c.Extra() != 0 }
func (c ReturnStmtCursor) Expr() NodeRef { return c.Child(0, 0) }

// IfStmtCursor: extra = hasElse. cond, then-block, optional else-block.
type IfStmtCursor struct{ NodeRef }

func (c IfStmtCursor) HasElse() bool    { return c.Extra() != 0 }
func (c IfStmtCursor) Cond() NodeRef    { return c.Child(0, 0) }
func (c IfStmtCursor) Then() NodeRef    { return c.Child(0, 1) }
func (c IfStmtCursor) Else() NodeRef    { return c.Child(0, 2) }

// DefStmtCursor: extra = paramCount. payload: nameConstIdx, paramCount
// paramConstIdx words, then one child (the body block).
type DefStmtCursor struct{ NodeRef }

func (c DefStmtCursor) ParamCount() int     { return int(c.Extra()) }
func (c DefStmtCursor) NameConstIdx() uint32 { return c.Word(0) }
func (c DefStmtCursor) ParamConstIdx(i int) uint32 {
	return c.Word(1 + uint32(i))
}
func (c DefStmtCursor) Body() NodeRef {
	return c.Child(1+uint32(c.ParamCount()), 0)
}

// VarStmtCursor / ConstStmtCursor: extra = bindingCount. Each binding is
// {nameConstIdx, hasInit} followed immediately by its initializer
// expression's subtree when hasInit != 0. Because initializers are
// consumed strictly in order by the VarSyntaxFrame state machine
// (spec.md §4.5.7), this cursor only exposes sequential binding access;
// callers walk it with BindingAt(i), which rewalks from the first binding.
type VarStmtCursor struct{ NodeRef }
type ConstStmtCursor struct{ NodeRef }

type Binding struct {
	NameConstIdx uint32
	HasInit      bool
	Init         NodeRef
	next         uint32 // offset, relative to payload start, of the binding after this one
}

func (c VarStmtCursor) BindingCount() int   { return int(c.Extra()) }
func (c ConstStmtCursor) BindingCount() int { return int(c.Extra()) }

// BindingAt walks the binding list from the start to index i. Bindings
// are visited sequentially by VarSyntaxFrame, so O(n) rewalk is
// acceptable and keeps the encoding simple.
func bindingAt(n NodeRef, i int) Binding {
	off := n.PayloadOffset()
	var b Binding
	for step := 0; step <= i; step++ {
		nameIdx := n.PST.Data[off]
		hasInit := n.PST.Data[off+1] != 0
		off += 2
		var init NodeRef
		if hasInit {
			init = NodeRef{PST: n.PST, Offset: off}
			off += init.Span()
		}
		b = Binding{NameConstIdx: nameIdx, HasInit: hasInit, Init: init, next: off - n.PayloadOffset()}
	}
	return b
}

func (c VarStmtCursor) BindingAt(i int) Binding   { return bindingAt(c.NodeRef, i) }
func (c ConstStmtCursor) BindingAt(i int) Binding { return bindingAt(c.NodeRef, i) }

// LoopStmtCursor: one child, the loop body block.
type LoopStmtCursor struct{ NodeRef }

func (c LoopStmtCursor) Body() NodeRef { return c.Child(0, 0) }

// CallExprCursor: extra = argCount. payload: callee child, then argCount
// argument children, visited strictly in order (spec.md §4.5.8's Arg
// state increments arg_no one at a time; no random access is needed).
type CallExprCursor struct{ NodeRef }

func (c CallExprCursor) ArgCount() int    { return int(c.Extra()) }
func (c CallExprCursor) Callee() NodeRef  { return c.Child(0, 0) }
func (c CallExprCursor) Arg(i int) NodeRef {
	calleeSpan := c.Callee().Span()
	off := c.PayloadOffset() + calleeSpan
	for step := 0; step < i; step++ {
		off += NodeRef{PST: c.PST, Offset: off}.Span()
	}
	return NodeRef{PST: c.PST, Offset: off}
}

// DotExprCursor: target child, member name constant.
type DotExprCursor struct{ NodeRef }

func (c DotExprCursor) Target() NodeRef      { return c.Child(1, 0) }
func (c DotExprCursor) NameConstIdx() uint32 { return c.Word(0) }

// ArrowExprCursor: extra = paramCount. payload: paramCount paramConstIdx
// words, then one child (the expression body).
type ArrowExprCursor struct{ NodeRef }

func (c ArrowExprCursor) ParamCount() int { return int(c.Extra()) }
func (c ArrowExprCursor) ParamConstIdx(i int) uint32 {
	return c.Word(uint32(i))
}
func (c ArrowExprCursor) Body() NodeRef {
	return c.Child(uint32(c.ParamCount()), 0)
}

// Unary/binary arithmetic cursors.
type UnaryExprCursor struct{ NodeRef }
type BinaryExprCursor struct{ NodeRef }

func (c UnaryExprCursor) Operand() NodeRef { return c.Child(0, 0) }
func (c BinaryExprCursor) Left() NodeRef   { return c.Child(0, 0) }
func (c BinaryExprCursor) Right() NodeRef  { return c.Child(0, 1) }

// ParenExprCursor: one child, the inner expression.
type ParenExprCursor struct{ NodeRef }

func (c ParenExprCursor) Inner() NodeRef { return c.Child(0, 0) }

// NameExprCursor: identifier constant index.
type NameExprCursor struct{ NodeRef }

func (c NameExprCursor) NameConstIdx() uint32 { return c.Word(0) }

// IntegerExprCursor: literal constant index.
type IntegerExprCursor struct{ NodeRef }

func (c IntegerExprCursor) LiteralConstIdx() uint32 { return c.Word(0) }
