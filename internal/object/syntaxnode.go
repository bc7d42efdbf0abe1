package object

import (
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/syntax"
)

// SyntaxNode is the heap-allocated sibling of syntax.NodeRef, created
// when a (pst, offset) pair must escape into a heap field — for example
// the per-argument references an InvokeOperativeFrame collects, which
// outlive the CallExprSyntaxFrame that evaluated them.
type SyntaxNode struct {
	header heap.Header
	Ref    syntax.NodeRef
}

func NewSyntaxNode(ref syntax.NodeRef) *SyntaxNode {
	return &SyntaxNode{
		header: heap.NewHeader(heap.FormatSyntaxNode, 1),
		Ref:    ref,
	}
}

func (n *SyntaxNode) HeapHeader() *heap.Header { return &n.header }
func (n *SyntaxNode) Address() uintptr         { return n.header.Address() }
func (n *SyntaxNode) HeapTag() uint8           { return n.header.HeapTag() }

// Scan is a no-op: the packed tree and raw offset carry no outgoing heap
// references of their own.
func (n *SyntaxNode) Scan(visit func(heap.Thing)) {}
