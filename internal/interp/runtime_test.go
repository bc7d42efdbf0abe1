package interp

import (
	"testing"

	"github.com/kannanvijayan/whisper/internal/heap"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// run is the test harness every scenario below uses: fresh runtime,
// fresh thread, fresh global scope, tokenize/parse/build/interpret one
// source string to completion.
func run(t *testing.T, source string) object.EvalResult {
	t.Helper()
	rt := CreateRuntime(heap.DefaultConfig())
	tc := rt.RegisterThread()
	scope := tc.MakeGlobalScope()
	return runOn(t, tc, scope, source)
}

func runOn(t *testing.T, tc *ThreadContext, scope object.Wobject, source string) object.EvalResult {
	t.Helper()
	toks, err := syntax.Tokenize([]byte(source))
	if err != nil {
		t.Fatalf("tokenize %q: %v", source, err)
	}
	prog, err := syntax.ParseProgram(toks)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	pst := syntax.Build(prog)
	return tc.InterpretSourceFile(pst, scope)
}

func wantValue(t *testing.T, got object.EvalResult, want value.Box) {
	t.Helper()
	if got.Kind != object.EvalValue {
		t.Fatalf("want Value(%v), got kind %v (exc=%v err=%v)", want, got.Kind, got.Exc, got.ErrMessage)
	}
	if got.Value.Tag() != want.Tag() {
		t.Fatalf("want tag %v, got tag %v", want.Tag(), got.Value.Tag())
	}
	if want.IsInt32() && got.Value.AsInt32() != want.AsInt32() {
		t.Fatalf("want Int32(%d), got Int32(%d)", want.AsInt32(), got.Value.AsInt32())
	}
}

func wantExc(t *testing.T, got object.EvalResult, message string) {
	t.Helper()
	if got.Kind != object.EvalExc {
		t.Fatalf("want Exc(%q), got kind %v", message, got.Kind)
	}
	if got.Exc.Message != message {
		t.Fatalf("want Exc message %q, got %q", message, got.Exc.Message)
	}
}

// E1. var x = 3; x → Value(Int32(3))
func TestE1VarBindingThenName(t *testing.T) {
	wantValue(t, run(t, "var x = 3; x"), value.Int32(3))
}

// E2. def f(x) { return x + 1 } f(41) → Value(Int32(42))
func TestE2DefAndCallWithReturn(t *testing.T) {
	wantValue(t, run(t, "def f(x) { return x + 1 } f(41)"), value.Int32(42))
}

// E3. return 7 at top level → Exc("return used in non-returnable context.")
func TestE3TopLevelReturn(t *testing.T) {
	wantExc(t, run(t, "return 7"), "return used in non-returnable context.")
}

// E4. y unbound → Exc("Name not found", "y")
func TestE4UnboundName(t *testing.T) {
	got := run(t, "y")
	wantExc(t, got, "Name not found")
	if len(got.Exc.Args) != 1 || !got.Exc.Args[0].IsStr8() {
		t.Fatalf("want one inline-string argument naming the unbound name, got %v", got.Exc.Args)
	}
}

// E5. (1 + 2) * 10 → Value(Int32(30))
func TestE5ParenAndPrecedence(t *testing.T) {
	wantValue(t, run(t, "(1 + 2) * 10"), value.Int32(30))
}

// E6. var a = nonexistent() → Exc("Callee expression is not callable",
// Undefined); "nonexistent" is declared (uninitialized, so Undefined)
// rather than unbound, which is what makes this scenario distinct from
// E4's "Name not found" (spec.md's scenario presumes a scope where the
// name already exists but holds no callable value).
func TestE6UncallableCallee(t *testing.T) {
	got := run(t, "var nonexistent; var a = nonexistent()")
	wantExc(t, got, "Callee expression is not callable")
	if !got.Exc.Args[0].IsUndefined() {
		t.Fatalf("want Undefined attached, got %v", got.Exc.Args)
	}
}

// E7. var x = 0; if (x) { 1 } else { 2 } → Exc("@IfStmt condition is not a boolean", Int32(0))
func TestE7NonBooleanIfCondition(t *testing.T) {
	got := run(t, "var x = 0; if (x) { 1 } else { 2 }")
	wantExc(t, got, "@IfStmt condition is not a boolean")
	if !got.Exc.Args[0].IsInt32() || got.Exc.Args[0].AsInt32() != 0 {
		t.Fatalf("want the offending Int32(0) attached, got %v", got.Exc.Args)
	}
}

// E8. def f(x) { x.nonexistent } called with a non-object argument →
// Exc("@Dot not defined", ...).
func TestE8DotOnNonObjectTarget(t *testing.T) {
	got := run(t, "def f(x) { x.nonexistent } f(5)")
	wantExc(t, got, "@Dot not defined")
}

// E9. Re-binding @Add on the global scope changes 1 + 1's result,
// demonstrating invariant 11 for an operator handler.
func TestE9RebindingAddOperator(t *testing.T) {
	rt := CreateRuntime(heap.DefaultConfig())
	tc := rt.RegisterThread()
	scope := tc.MakeGlobalScope()

	zero := object.NewNativeFunction("@Add", true, func(object.NativeCallContext) object.CallResult {
		return object.CallValueResult(value.Int32(0))
	})
	tc.cx.Track(zero)
	scope.DefineProperty("@Add", object.MakeMethod(zero))

	wantValue(t, runOn(t, tc, scope, "1 + 1"), value.Int32(0))
}
