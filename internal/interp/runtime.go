// Package interp wires the value/heap/object/frame/syntax/natives layers
// together into the runtime/thread surface spec.md §6 names:
// create_runtime, register_thread, make_global_scope, interpret_source_file
// and interpret_syntax. This is the only package that drives the frame
// trampoline; everything below it only ever returns the next frame to run.
package interp

import (
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/kannanvijayan/whisper/internal/frame"
	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/natives"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// Runtime owns the heap sizing policy shared by every thread it registers;
// nothing else survives across threads (spec.md §4.2 scopes the heap
// itself per-thread, not per-process).
type Runtime struct {
	heapConfig heap.Config
	logger     *slog.Logger
}

// CreateRuntime implements spec.md §6's create_runtime.
func CreateRuntime(cfg heap.Config) *Runtime {
	return &Runtime{heapConfig: cfg}
}

// SetLogger attaches the structured logger every thread this Runtime
// registers afterward will hand its heap and trampoline (SPEC_FULL.md
// §4.8); threads already registered keep whatever they were given.
func (rt *Runtime) SetLogger(logger *slog.Logger) { rt.logger = logger }

// ThreadContext implements spec.md §6's per-thread handle: its own heap,
// root chain, string table and frame.Context, addressed by a uuid that
// RegisterThread attaches as the "thread" attribute to the logger its
// heap and trampoline use, so log lines can be correlated back to a
// thread without exposing the heap itself.
type ThreadContext struct {
	ID uuid.UUID
	cx *frame.Context
}

// RegisterThread implements spec.md §6's register_thread: a fresh heap,
// root chain and string table, isolated from every other thread the same
// Runtime has registered.
func (rt *Runtime) RegisterThread() *ThreadContext {
	id := uuid.New()
	logger := rt.logger
	if logger != nil {
		logger = logger.With("thread", id.String())
	}
	roots := heap.NewRootChain()
	h := heap.NewHeap(rt.heapConfig, roots)
	h.SetLogger(logger)
	spoiler := value.NewSpoiler()
	return &ThreadContext{
		ID: id,
		cx: &frame.Context{
			Heap:    h,
			Roots:   roots,
			Strings: object.NewStringTable(spoiler),
			Spoiler: spoiler,
			Logger:  logger,
		},
	}
}

// HeapStats exposes the thread's heap.Stats for structured logging
// (SPEC_FULL.md §4.8) without leaking the heap itself to callers outside
// this package.
func (tc *ThreadContext) HeapStats() heap.Stats { return tc.cx.Heap.Stats() }

// MakeGlobalScope implements spec.md §6's make_global_scope: a fresh
// GlobalScope seeded with every default "@..." handler from
// internal/natives.
func (tc *ThreadContext) MakeGlobalScope() *object.GlobalScope {
	g := object.NewGlobalScope()
	tc.cx.Track(g)
	natives.Install(tc.cx, g)
	return g
}

// InterpretSourceFile implements spec.md §6's interpret_source_file: run
// the packed syntax tree's root node under scope to completion.
func (tc *ThreadContext) InterpretSourceFile(pst *syntax.PackedSyntaxTree, scope object.Wobject) object.EvalResult {
	return tc.InterpretSyntax(scope, pst, 0)
}

// InterpretSyntax implements spec.md §6's interpret_syntax: run the node
// at offset within pst under scope to completion, driving the frame
// trampoline until a TerminalFrame absorbs the result.
func (tc *ThreadContext) InterpretSyntax(scope object.Wobject, pst *syntax.PackedSyntaxTree, offset uint32) object.EvalResult {
	terminal := frame.NewTerminalFrame(tc.cx)
	node := syntax.NodeRef{PST: pst, Offset: offset}
	entry := frame.NewEntryFrame(tc.cx, terminal, node, scope)
	return runTrampoline(entry, terminal, tc.cx.Logger)
}

// runTrampoline is the outer loop spec.md §4.5/§4.6 assume exists but
// leave to the embedder: repeatedly Step the current top frame until it
// hands control to the terminal, which Resolve marks done. logger is nil
// unless the owning Runtime was given one (SPEC_FULL.md §4.8); a nil
// logger just skips the per-step Debug line.
func runTrampoline(top frame.Frame, terminal *frame.TerminalFrame, logger *slog.Logger) object.EvalResult {
	cur := top
	var stepNo uint64
	for !terminal.Done() {
		if logger != nil {
			stepNo++
			logger.Debug("trampoline step", "n", stepNo, "frame", frameTypeName(cur))
		}
		step := cur.Step()
		if step.Err != "" {
			return object.Error(step.Err)
		}
		cur = step.Next.(frame.Frame)
	}
	return terminal.Result()
}

func frameTypeName(f frame.Frame) string {
	t := reflect.TypeOf(f)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
