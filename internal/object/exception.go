package object

import (
	"strings"

	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/value"
)

// Exception is the data carried by a recoverable Exc result: a
// human-readable message plus zero or more Box arguments for context.
// Exceptions travel the frame spine via Resolve until some frame catches
// them; the only frame in internal/frame that catches one is
// LoopSyntaxFrame, and only an exception whose Message is
// frame.LoopBreakSentinel.
type Exception struct {
	header  heap.Header
	Message string
	Args    []value.Box
}

func NewException(message string, args ...value.Box) *Exception {
	return &Exception{
		header:  heap.NewHeader(heap.FormatException, 1),
		Message: message,
		Args:    args,
	}
}

func (e *Exception) HeapHeader() *heap.Header { return &e.header }
func (e *Exception) Address() uintptr         { return e.header.Address() }
func (e *Exception) HeapTag() uint8           { return e.header.HeapTag() }

func (e *Exception) Scan(visit func(heap.Thing)) {
	for _, a := range e.Args {
		scanBox(a, visit)
	}
}

// String renders the exception the way a diagnostic or a failing test
// would print it: message followed by its arguments.
func (e *Exception) String() string {
	if len(e.Args) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.Tag().String()
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}
