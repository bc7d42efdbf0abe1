package syntax

import "github.com/kannanvijayan/whisper/internal/value"

// emitter accumulates the packed data array and constants pool while
// walking an in-memory AST bottom-up: every emit method writes its
// node's two-word header, writes its payload (recursing into children
// first so each child's Span is already known), then patches its own
// span word once the whole subtree has been written.
type emitter struct {
	data      []uint32
	constants []value.Box
	constIdx  map[string]uint32
}

func newEmitter() *emitter {
	return &emitter{constIdx: make(map[string]uint32)}
}

// constString interns a string constant by content, matching the
// interning contract string constants get at the value layer
// (spec.md §4.1/§9).
func (e *emitter) constString(s string) uint32 {
	key := "s:" + s
	if idx, ok := e.constIdx[key]; ok {
		return idx
	}
	box, ok := value.TryInlineString(s)
	if !ok {
		box = value.Undefined() // unreachable for the grammar this builder accepts
	}
	idx := uint32(len(e.constants))
	e.constants = append(e.constants, box)
	e.constIdx[key] = idx
	return idx
}

func (e *emitter) constInt(n int32) uint32 {
	idx := uint32(len(e.constants))
	e.constants = append(e.constants, value.Int32(n))
	return idx
}

// header reserves the two-word header for a node and returns its
// offset; the caller must call e.patchSpan(offset) after writing the
// node's payload.
func (e *emitter) header(t NodeType, extra uint32) uint32 {
	off := uint32(len(e.data))
	e.data = append(e.data, packHeaderWord(t, extra), 0)
	return off
}

func (e *emitter) word(w uint32) {
	e.data = append(e.data, w)
}

func (e *emitter) patchSpan(offset uint32) {
	e.data[offset+1] = uint32(len(e.data)) - offset
}

func (e *emitter) emitStmts(stmts []Stmt) {
	for _, s := range stmts {
		s.emit(e)
	}
}

// Program's own root node is a Block, not a File: spec.md §4.5.4 defines
// File's result as always Undefined (a pure statement sequence), but
// spec.md §8's end-to-end scenarios (E1, E2, E5, E6) require the result
// of running a whole source file to be its last statement's value, which
// is Block's behaviour (§4.5.5). "@File" stays bound to FileSyntaxFrame
// for any syntax tree that explicitly contains a File node (e.g. an
// embedder parsing a multi-file unit); a top-level Program, which is the
// only thing this package's parser ever produces, emits as a Block.
func (p *Program) emit(e *emitter) uint32 {
	off := e.header(NodeBlock, uint32(len(p.Stmts)))
	e.emitStmts(p.Stmts)
	e.patchSpan(off)
	return off
}

func (b *Block) emit(e *emitter) uint32 {
	off := e.header(NodeBlock, uint32(len(b.Stmts)))
	e.emitStmts(b.Stmts)
	e.patchSpan(off)
	return off
}

func (s *EmptyStmt) emit(e *emitter) uint32 {
	off := e.header(NodeEmptyStmt, 0)
	e.patchSpan(off)
	return off
}

func (s *ExprStmt) emit(e *emitter) uint32 {
	off := e.header(NodeExprStmt, 0)
	s.X.emit(e)
	e.patchSpan(off)
	return off
}

func (s *ReturnStmt) emit(e *emitter) uint32 {
	hasExpr := uint32(0)
	if s.X != nil {
		hasExpr = 1
	}
	off := e.header(NodeReturnStmt, hasExpr)
	if s.X != nil {
		s.X.emit(e)
	}
	e.patchSpan(off)
	return off
}

func (s *IfStmt) emit(e *emitter) uint32 {
	hasElse := uint32(0)
	if s.Else != nil {
		hasElse = 1
	}
	off := e.header(NodeIfStmt, hasElse)
	s.Cond.emit(e)
	s.Then.emit(e)
	if s.Else != nil {
		s.Else.emit(e)
	}
	e.patchSpan(off)
	return off
}

func (s *DefStmt) emit(e *emitter) uint32 {
	off := e.header(NodeDefStmt, uint32(len(s.Params)))
	e.word(e.constString(s.Name))
	for _, p := range s.Params {
		e.word(e.constString(p))
	}
	s.Body.emit(e)
	e.patchSpan(off)
	return off
}

func (s *VarStmt) emit(e *emitter) uint32 {
	nt := NodeVarStmt
	if s.Const {
		nt = NodeConstStmt
	}
	off := e.header(nt, uint32(len(s.Bindings)))
	for _, b := range s.Bindings {
		e.word(e.constString(b.Name))
		if b.Init != nil {
			e.word(1)
			b.Init.emit(e)
		} else {
			e.word(0)
		}
	}
	e.patchSpan(off)
	return off
}

func (s *LoopStmt) emit(e *emitter) uint32 {
	off := e.header(NodeLoopStmt, 0)
	s.Body.emit(e)
	e.patchSpan(off)
	return off
}

func (x *CallExpr) emit(e *emitter) uint32 {
	off := e.header(NodeCallExpr, uint32(len(x.Args)))
	x.Callee.emit(e)
	for _, a := range x.Args {
		a.emit(e)
	}
	e.patchSpan(off)
	return off
}

func (x *DotExpr) emit(e *emitter) uint32 {
	off := e.header(NodeDotExpr, 0)
	e.word(e.constString(x.Name))
	x.Target.emit(e)
	e.patchSpan(off)
	return off
}

func (x *ArrowExpr) emit(e *emitter) uint32 {
	off := e.header(NodeArrowExpr, uint32(len(x.Params)))
	for _, p := range x.Params {
		e.word(e.constString(p))
	}
	x.Body.emit(e)
	e.patchSpan(off)
	return off
}

func (x *PosExpr) emit(e *emitter) uint32 {
	off := e.header(NodePosExpr, 0)
	x.X.emit(e)
	e.patchSpan(off)
	return off
}

func (x *NegExpr) emit(e *emitter) uint32 {
	off := e.header(NodeNegExpr, 0)
	x.X.emit(e)
	e.patchSpan(off)
	return off
}

func emitBinary(e *emitter, t NodeType, l, r Expr) uint32 {
	off := e.header(t, 0)
	l.emit(e)
	r.emit(e)
	e.patchSpan(off)
	return off
}

func (x *AddExpr) emit(e *emitter) uint32 { return emitBinary(e, NodeAddExpr, x.L, x.R) }
func (x *SubExpr) emit(e *emitter) uint32 { return emitBinary(e, NodeSubExpr, x.L, x.R) }
func (x *MulExpr) emit(e *emitter) uint32 { return emitBinary(e, NodeMulExpr, x.L, x.R) }
func (x *DivExpr) emit(e *emitter) uint32 { return emitBinary(e, NodeDivExpr, x.L, x.R) }

func (x *ParenExpr) emit(e *emitter) uint32 {
	off := e.header(NodeParenExpr, 0)
	x.X.emit(e)
	e.patchSpan(off)
	return off
}

func (x *NameExpr) emit(e *emitter) uint32 {
	off := e.header(NodeNameExpr, 0)
	e.word(e.constString(x.Name))
	e.patchSpan(off)
	return off
}

func (x *IntegerExpr) emit(e *emitter) uint32 {
	off := e.header(NodeIntegerExpr, 0)
	e.word(e.constInt(x.Value))
	e.patchSpan(off)
	return off
}

// Build serializes an in-memory Program into a read-only
// PackedSyntaxTree, realizing the build_packed_syntax_tree external
// interface from spec.md §6.
func Build(p *Program) *PackedSyntaxTree {
	e := newEmitter()
	p.emit(e)
	return &PackedSyntaxTree{Data: e.data, Constants: e.constants}
}
