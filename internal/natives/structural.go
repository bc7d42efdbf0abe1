package natives

import (
	"github.com/kannanvijayan/whisper/internal/frame"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// fileHandler hands the dispatched File node off to FileSyntaxFrame,
// whose own iteration and Undefined-always result implement spec.md
// §4.5.4.
func fileHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewFileSyntaxFrame(cx, rf, syntax.FileCursor{NodeRef: node}, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

// blockHandler mirrors fileHandler for Block nodes (spec.md §4.5.5);
// BlockSyntaxFrame is what makes the last statement's value the block's
// own result.
func blockHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewBlockSyntaxFrame(cx, rf, syntax.BlockCursor{NodeRef: node}, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

// emptyStmtHandler is the trivial no-op statement: Void, nothing else.
func emptyStmtHandler() object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		if _, errRes := soleOperand(ncx); errRes != nil {
			return *errRes
		}
		return object.CallVoidResult()
	}
}

// exprStmtHandler evaluates its inner expression and becomes exactly that
// expression's result — the thing that lets a bare expression serve as a
// block's final "return value" statement (spec.md §8 E1, E5).
func exprStmtHandler() object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.ExprStmtCursor{NodeRef: node}
		return ncx.Suspend(ncx.Scope, cursor.Expr(), passThroughResume, nil)
	}
}

// returnStmtHandler hands off to ReturnStmtSyntaxFrame, which resolves the
// return expression and long-jumps to @retcont (spec.md §4.5.6).
func returnStmtHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewReturnStmtSyntaxFrame(cx, rf, syntax.ReturnStmtCursor{NodeRef: node}, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

// ifStmtHandler evaluates the condition, requires it to be a Bool (E7),
// and continues into whichever branch matched, or Void if the condition
// is false and there is no else branch.
func ifStmtHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.IfStmtCursor{NodeRef: node}
		rf := ncx.RaisingFrame.(frame.Frame)
		scope := ncx.Scope
		return ncx.Suspend(scope, cursor.Cond(), func(_ object.NativeCallContext, _ any, condResult object.EvalResult) object.CallResult {
			if condResult.Kind == object.EvalError || condResult.Kind == object.EvalExc {
				return asCallResult(condResult)
			}
			if condResult.Kind == object.EvalVoid {
				return object.CallExcResult(voidExc("if condition"))
			}
			cond := condResult.Value
			if !cond.IsBool() {
				return object.CallExcResult(object.NewException("@IfStmt condition is not a boolean", cond))
			}
			if cond.AsBool() {
				return object.CallContinueResult(frame.NewEntryFrame(cx, rf, cursor.Then(), scope))
			}
			if cursor.HasElse() {
				return object.CallContinueResult(frame.NewEntryFrame(cx, rf, cursor.Else(), scope))
			}
			return object.CallVoidResult()
		}, nil)
	}
}

// defStmtHandler implements the representative behaviour spec.md §4.6
// spells out: build a ScriptedFunction over the def's body capturing the
// caller's scope, and define it (writable) on the receiver — which, for
// a "@DefStmt" binding found directly on the defining scope, is that
// scope itself, so `def f(...) {...}` defines `f` where it's written.
func defStmtHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		if !ncx.Receiver.IsObjectRef() {
			return object.CallExcResult(object.NewException("@DefStmt receiver is not an object", ncx.Receiver))
		}
		receiver, ok := ncx.Receiver.AsHeapRef().(object.Wobject)
		if !ok {
			return object.CallExcResult(object.NewException("@DefStmt receiver is not an object", ncx.Receiver))
		}
		cursor := syntax.DefStmtCursor{NodeRef: node}
		name := node.ConstantString(cursor.NameConstIdx())
		params := make([]string, cursor.ParamCount())
		for i := range params {
			params[i] = node.ConstantString(cursor.ParamConstIdx(i))
		}
		fn := object.NewScriptedFunction(name, false, node.PST, cursor.Body().Offset, params, ncx.Scope)
		cx.Track(fn)
		fo := object.NewFunctionObject(fn, value.Undefined(), nil)
		cx.Track(fo)
		receiver.DefineProperty(name, object.MakeSlot(value.ObjectRef(fo), true))
		return object.CallValueResult(value.Undefined())
	}
}

// varStmtHandler and constStmtHandler both drive VarSyntaxFrame, per
// spec.md §4.6's note that @ConstStmt shares @VarStmt's machinery with
// writable=false.
func varStmtHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewVarSyntaxFrame(cx, rf, node, false, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

func constStmtHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewVarSyntaxFrame(cx, rf, node, true, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

// loopStmtHandler hands off to LoopSyntaxFrame, which re-enters the body
// under a fresh scope each iteration until a break-sentinel Exc appears.
func loopStmtHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewLoopSyntaxFrame(cx, rf, syntax.LoopStmtCursor{NodeRef: node}, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

// callExprHandler hands off to CallExprSyntaxFrame (spec.md §4.5.8).
func callExprHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewCallExprSyntaxFrame(cx, rf, syntax.CallExprCursor{NodeRef: node}, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

// dotHandler hands off to DotExprSyntaxFrame, which re-dispatches to the
// target's own "@Dot" binding (spec.md §4.5.10) — this default handler is
// what every other object's "@Dot" ultimately falls back to only if it
// delegates here, since property access is itself fully overridable.
func dotHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		rf := ncx.RaisingFrame.(frame.Frame)
		f := frame.NewDotExprSyntaxFrame(cx, rf, syntax.DotExprCursor{NodeRef: node}, ncx.Scope)
		return object.CallContinueResult(f)
	}
}

// arrowHandler builds an applicative ScriptedFunction closing over the
// caller's scope and returns it as a value, the expression-form
// counterpart to @DefStmt's statement form.
func arrowHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.ArrowExprCursor{NodeRef: node}
		params := make([]string, cursor.ParamCount())
		for i := range params {
			params[i] = node.ConstantString(cursor.ParamConstIdx(i))
		}
		fn := object.NewScriptedFunction("", false, node.PST, cursor.Body().Offset, params, ncx.Scope)
		cx.Track(fn)
		fo := object.NewFunctionObject(fn, value.Undefined(), nil)
		cx.Track(fo)
		return object.CallValueResult(value.ObjectRef(fo))
	}
}
