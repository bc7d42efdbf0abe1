// Package embed is the host-facing facade SPEC_FULL.md §4.9 describes:
// a single-type wrapper over internal/interp's Runtime/ThreadContext the
// way the teacher's pkg/embed/vm.go wraps its bytecode vm.VM, but
// scaled to this core's much smaller value surface.
package embed

import (
	"fmt"
	"log/slog"

	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/interp"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// Value is the boxed tagged value a host exchanges with a running
// script, re-exported so callers outside internal/ never need to import
// it directly.
type Value = value.Box

// Result mirrors object.EvalResult at the embedding boundary: Kind is
// the result kind, and Value is meaningful only when Kind is EvalValue.
type Result struct {
	Kind  object.EvalKind
	Value Value
}

// Interpreter is one script-running thread: its own heap, its own
// global scope, seeded with the default "@..." bindings plus whatever
// the host adds via BindGlobal.
type Interpreter struct {
	rt     *interp.Runtime
	thread *interp.ThreadContext
	scope  *object.GlobalScope
}

// New builds an Interpreter with the default heap sizing
// (heap.DefaultConfig); use NewWithConfig to override it.
func New() *Interpreter {
	return NewWithConfig(heap.DefaultConfig())
}

// NewWithConfig is New, but with an explicit heap.Config — the knobs
// internal/config.Config.HeapConfig produces from a loaded whisper.yaml.
func NewWithConfig(cfg heap.Config) *Interpreter {
	return NewWithLogger(cfg, nil)
}

// NewWithLogger is NewWithConfig, additionally handing the trampoline and
// collector a logger to report Debug-level activity to (SPEC_FULL.md
// §4.8) — the seam cmd/whisper uses to pass its configured slog.Logger
// through. A nil logger behaves exactly like NewWithConfig.
func NewWithLogger(cfg heap.Config, logger *slog.Logger) *Interpreter {
	rt := interp.CreateRuntime(cfg)
	rt.SetLogger(logger)
	thread := rt.RegisterThread()
	return &Interpreter{
		rt:     rt,
		thread: thread,
		scope:  thread.MakeGlobalScope(),
	}
}

// BindGlobal defines name on the interpreter's global scope as a
// writable value slot, the embedding counterpart to a script's own `var`
// declaration — a host-bound function is just a Value wrapping a
// *object.FunctionObject over a native object.Function.
func (in *Interpreter) BindGlobal(name string, v Value) {
	in.scope.DefineProperty(name, object.MakeSlot(v, true))
}

// Run tokenizes, parses, builds and interprets source as a complete
// program, per spec.md §6's build_packed_syntax_tree +
// interpret_source_file pipeline.
func (in *Interpreter) Run(source []byte) (Result, error) {
	toks, err := syntax.Tokenize(source)
	if err != nil {
		return Result{}, fmt.Errorf("tokenizing source: %w", err)
	}
	prog, err := syntax.ParseProgram(toks)
	if err != nil {
		return Result{}, fmt.Errorf("parsing source: %w", err)
	}
	return in.RunSyntax(syntax.Build(prog))
}

// RunSyntax interprets an already-built packed syntax tree, for callers
// (like the CLI driver) that need to distinguish a parse failure from an
// evaluation failure.
func (in *Interpreter) RunSyntax(pst *syntax.PackedSyntaxTree) (Result, error) {
	res := in.thread.InterpretSourceFile(pst, in.scope)
	switch res.Kind {
	case object.EvalValue:
		return Result{Kind: object.EvalValue, Value: res.Value}, nil
	case object.EvalVoid:
		return Result{Kind: object.EvalVoid}, nil
	case object.EvalError:
		return Result{Kind: res.Kind}, fmt.Errorf("internal error: %s", res.ErrMessage)
	default:
		return Result{Kind: res.Kind}, fmt.Errorf("uncaught exception: %s", res.Exc.String())
	}
}

// HeapStats exposes the underlying thread's collector counters, for a
// host that wants to log them (SPEC_FULL.md §4.8).
func (in *Interpreter) HeapStats() heap.Stats { return in.thread.HeapStats() }
