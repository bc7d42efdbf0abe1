package object

import "github.com/kannanvijayan/whisper/internal/value"

// Frame is the capability a Continuation needs to redirect control: every
// concrete frame in internal/frame implements this (and more) but this
// package only needs Resolve, so it is declared here rather than
// importing internal/frame, which itself imports this package for
// Wobject/Function/Exception.
type Frame interface {
	Resolve(result EvalResult) StepResult
}

// EvalKind discriminates EvalResult's variants.
type EvalKind uint8

const (
	EvalValue EvalKind = iota
	EvalVoid
	EvalError
	EvalExc
)

// EvalResult is the value a frame produces when it finishes: Value(Box) |
// Void | Error(internal/fatal) | Exc(raising_frame, Exception). Void is
// legal only for statements; an expression context that receives Void
// must convert it into Exc at the boundary.
type EvalResult struct {
	Kind       EvalKind
	Value      value.Box
	ErrMessage string
	RaisedBy   Frame
	Exc        *Exception
}

func Value(v value.Box) EvalResult  { return EvalResult{Kind: EvalValue, Value: v} }
func Void() EvalResult              { return EvalResult{Kind: EvalVoid} }
func Error(msg string) EvalResult   { return EvalResult{Kind: EvalError, ErrMessage: msg} }
func Exc(by Frame, exc *Exception) EvalResult {
	return EvalResult{Kind: EvalExc, RaisedBy: by, Exc: exc}
}

// CallKind discriminates CallResult's variants.
type CallKind uint8

const (
	CallValue CallKind = iota
	CallVoid
	CallError
	CallExc
	CallContinue
)

// CallResult is the value a native handler returns: Value | Void | Error |
// Exc | Continue(next_frame). Continue is how a native handler asks the
// trampoline to switch to a new top frame, typically one that will
// re-enter the native through a NativeCallResumeFrame once it resolves.
type CallResult struct {
	Kind       CallKind
	Value      value.Box
	ErrMessage string
	Exc        *Exception
	Next       Frame
}

func CallValueResult(v value.Box) CallResult { return CallResult{Kind: CallValue, Value: v} }
func CallVoidResult() CallResult             { return CallResult{Kind: CallVoid} }
func CallErrorResult(msg string) CallResult  { return CallResult{Kind: CallError, ErrMessage: msg} }
func CallExcResult(exc *Exception) CallResult {
	return CallResult{Kind: CallExc, Exc: exc}
}
func CallContinueResult(next Frame) CallResult {
	return CallResult{Kind: CallContinue, Next: next}
}

// AsEval converts a CallResult into the EvalResult an InvokeSyntaxNodeFrame
// forwards to its parent for every kind except Continue, which the
// trampoline handles by switching frames instead.
func (r CallResult) AsEval(raisedBy Frame) EvalResult {
	switch r.Kind {
	case CallValue:
		return Value(r.Value)
	case CallVoid:
		return Void()
	case CallError:
		return Error(r.ErrMessage)
	case CallExc:
		return Exc(raisedBy, r.Exc)
	default:
		return Error("AsEval called on a Continue CallResult")
	}
}

// StepResult is what Step and Resolve return: Continue(new_top_frame) or
// Error. A non-nil Err means the trampoline unwinds straight to the
// terminal frame; Next is meaningless in that case.
type StepResult struct {
	Next Frame
	Err  string
}

func Continue(next Frame) StepResult { return StepResult{Next: next} }
func Fail(msg string) StepResult     { return StepResult{Err: msg} }
