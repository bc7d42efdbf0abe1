// Package natives implements the default "@..." operative bindings that
// make_global_scope seeds onto a fresh GlobalScope, per spec.md §4.6.
// Every syntactic form's default behaviour lives here as a plain
// object.NativeFunc; a script that rebinds one of these names on its own
// scope (invariant 11, spec.md §8) shadows the default without this
// package's knowledge.
package natives

import (
	"github.com/kannanvijayan/whisper/internal/frame"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// Install defines every default "@..." handler on scope as an operative
// method, so InvokeSyntaxNodeFrame's dispatch (spec.md §4.5.3) finds one
// for every AST.NodeType in the grammar §4.3 implements.
func Install(cx *frame.Context, scope object.Wobject) {
	bind := func(name string, fn object.NativeFunc) {
		nf := object.NewNativeFunction(name, true, fn)
		cx.Track(nf)
		scope.DefineProperty(name, object.MakeMethod(nf))
	}

	bind("@File", fileHandler(cx))
	bind("@EmptyStmt", emptyStmtHandler())
	bind("@ExprStmt", exprStmtHandler())
	bind("@ReturnStmt", returnStmtHandler(cx))
	bind("@IfStmt", ifStmtHandler(cx))
	bind("@DefStmt", defStmtHandler(cx))
	bind("@ConstStmt", constStmtHandler(cx))
	bind("@VarStmt", varStmtHandler(cx))
	bind("@LoopStmt", loopStmtHandler(cx))
	bind("@Block", blockHandler(cx))
	bind("@CallExpr", callExprHandler(cx))
	bind("@Dot", dotHandler(cx))
	bind("@Arrow", arrowHandler(cx))
	bind("@Pos", posHandler(cx))
	bind("@Neg", negHandler(cx))
	bind("@Add", addHandler(cx))
	bind("@Sub", subHandler(cx))
	bind("@Mul", mulHandler(cx))
	bind("@Div", divHandler(cx))
	bind("@ParenExpr", parenExprHandler(cx))
	bind("@NameExpr", nameExprHandler())
	bind("@Integer", integerHandler())
}

// soleOperand implements the arity check spec.md §4.6 requires of every
// default handler: exactly one syntax argument.
func soleOperand(ncx object.NativeCallContext) (syntax.NodeRef, *object.CallResult) {
	if len(ncx.OperandSyntax) != 1 {
		r := object.CallExcResult(object.NewException("wrong number of arguments"))
		return syntax.NodeRef{}, &r
	}
	return ncx.OperandSyntax[0], nil
}

// asCallResult is AsEval's inverse: it lifts a child frame's EvalResult
// back into the CallResult vocabulary a native handler's resume callback
// must return.
func asCallResult(r object.EvalResult) object.CallResult {
	switch r.Kind {
	case object.EvalValue:
		return object.CallValueResult(r.Value)
	case object.EvalVoid:
		return object.CallVoidResult()
	case object.EvalError:
		return object.CallErrorResult(r.ErrMessage)
	default:
		return object.CallExcResult(r.Exc)
	}
}

// passThroughResume forwards a sub-evaluation's result unchanged; used by
// handlers (@ParenExpr, @ExprStmt) whose own result is exactly their one
// sub-expression's result.
func passThroughResume(_ object.NativeCallContext, _ any, childResult object.EvalResult) object.CallResult {
	return asCallResult(childResult)
}

// evalAndResume requests evaluation of node under scope and arranges for
// resume to run once it settles, exactly as NativeCallContext.Suspend
// does — but callable from inside a resume callback, where Suspend itself
// is not wired (object.NativeCallContext.Suspend is populated fresh by
// package frame only at the original dispatch, not in the snapshot handed
// to a ResumeFunc). Binary operator handlers need a second evaluation
// chained off the first's resume callback, so they go through this
// instead of ncx.Suspend for that second step.
func evalAndResume(cx *frame.Context, parent frame.Frame, scope object.Wobject, node syntax.NodeRef, resume object.ResumeFunc, state any) object.CallResult {
	rf := frame.NewNativeCallResumeFrame(cx, parent, object.NativeCallContext{Scope: scope}, scope, node, resume, state)
	return object.CallContinueResult(rf)
}

// inlineOrUndefined boxes s as an inline string for use as an Exception
// argument, falling back to Undefined when s fits neither inline
// encoding (more than 7 UTF-8 bytes and more than 3 UTF-16 units), as
// with the operand descriptions voidExc receives.
func inlineOrUndefined(s string) value.Box {
	b, ok := value.TryInlineString(s)
	if !ok {
		return value.Undefined()
	}
	return b
}

// voidExc builds the standard "Void value where a value was required"
// exception naming what subexpression produced the void, per spec.md §7.
func voidExc(what string) *object.Exception {
	return object.NewException("Void value where a value was required", inlineOrUndefined(what))
}
