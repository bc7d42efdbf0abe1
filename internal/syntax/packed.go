package syntax

import (
	"unicode/utf16"

	"github.com/kannanvijayan/whisper/internal/value"
)

// nodeTypeBits is the width of the NodeType field packed into a node's
// header word; the remainder holds a node-specific "extra" count or
// flag, per spec.md §3 ("low 12 bits name an AST::NodeType and whose
// high 20 bits are a node-specific extra field").
const nodeTypeBits = 12
const nodeTypeMask = (1 << nodeTypeBits) - 1

func packHeaderWord(t NodeType, extra uint32) uint32 {
	return uint32(t)&nodeTypeMask | (extra << nodeTypeBits)
}

func unpackHeaderWord(w uint32) (NodeType, uint32) {
	return NodeType(w & nodeTypeMask), w >> nodeTypeBits
}

// PackedSyntaxTree is the read-only AST representation consumed by the
// interpreter: a flat u32 instruction-like array (data) plus a constants
// pool (strings and numeric literals), per spec.md §3/§4.3.
//
// Every node occupies a fixed two-word header (header word, span word)
// followed by a type-specific payload; this is a deliberate
// simplification of spec.md's variable-arity "sized block" description
// (relative offset tables) — see DESIGN.md — chosen because the frame
// machine specified in spec.md §4.5 only ever needs to visit a node's
// children in order, never at random, so a self-describing span is
// sufficient and is considerably simpler to build and to read back
// without a toolchain to test against.
type PackedSyntaxTree struct {
	Data      []uint32
	Constants []value.Box
}

// NodeRef is the stack-only (pst, offset) pair from spec.md §3's
// SyntaxNodeRef. Frames that must let a reference escape into a heap
// field store the heap-allocated sibling instead (internal/object's
// SyntaxNode type).
type NodeRef struct {
	PST    *PackedSyntaxTree
	Offset uint32
}

func (r NodeRef) Type() NodeType {
	t, _ := unpackHeaderWord(r.PST.Data[r.Offset])
	return t
}

func (r NodeRef) Extra() uint32 {
	_, extra := unpackHeaderWord(r.PST.Data[r.Offset])
	return extra
}

func (r NodeRef) Span() uint32 {
	return r.PST.Data[r.Offset+1]
}

// PayloadOffset is the word offset where this node's type-specific
// payload begins, immediately after the two-word header.
func (r NodeRef) PayloadOffset() uint32 {
	return r.Offset + 2
}

// Word reads one raw payload word at a payload-relative index.
func (r NodeRef) Word(i uint32) uint32 {
	return r.PST.Data[r.PayloadOffset()+i]
}

// Constant resolves a constant pool index to its Box as stored, without
// checking its tag. ConstantString checks for a string tag; a caller of
// Constant itself receives whatever Box the pool holds.
func (r NodeRef) Constant(idx uint32) value.Box {
	return r.PST.Constants[idx]
}

// ConstantString decodes a constant-pool entry expected to hold a
// string, accepting either inline encoding the builder may have chosen
// (Str8 for short ASCII names, Str16 otherwise).
func (r NodeRef) ConstantString(idx uint32) string {
	b := r.Constant(idx)
	switch b.Tag() {
	case value.TagStr8:
		return b.ToStr8String()
	case value.TagStr16:
		return string(utf16.Decode(b.ToStr16Units()))
	default:
		return ""
	}
}

// Child returns the node at payload-relative child index, given the
// number of fixed (non-child) leading words in the payload before the
// first child begins. Children are visited strictly in order by walking
// each one's own Span, so this is the only addressing primitive typed
// cursors need.
func (r NodeRef) Child(fixedWords uint32, childIndex int) NodeRef {
	off := r.PayloadOffset() + fixedWords
	for i := 0; i < childIndex; i++ {
		off += NodeRef{PST: r.PST, Offset: off}.Span()
	}
	return NodeRef{PST: r.PST, Offset: off}
}
