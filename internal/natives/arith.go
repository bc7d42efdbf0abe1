package natives

import (
	"github.com/kannanvijayan/whisper/internal/frame"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// numericBox builds the narrowest Box that represents f: an immediate
// Box.Double when the exponent fits, a heap-allocated HeapDouble (tracked
// through cx) otherwise.
func numericBox(cx *frame.Context, f float64) value.Box {
	if box, ok := value.Double(f); ok {
		return box
	}
	hd := object.NewHeapDouble(f)
	cx.Track(hd)
	return value.HeapDouble(hd)
}

// unaryNumeric builds a "@Pos"/"@Neg"-shaped handler: evaluate the one
// operand, require it to be a number, apply intOp/floatOp depending on
// which representation it arrived in.
func unaryNumeric(cx *frame.Context, opName string, intOp func(int32) int32, floatOp func(float64) float64) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.UnaryExprCursor{NodeRef: node}
		return ncx.Suspend(ncx.Scope, cursor.Operand(), func(_ object.NativeCallContext, _ any, operandResult object.EvalResult) object.CallResult {
			if operandResult.Kind == object.EvalError || operandResult.Kind == object.EvalExc {
				return asCallResult(operandResult)
			}
			if operandResult.Kind == object.EvalVoid {
				return object.CallExcResult(voidExc(opName + " operand"))
			}
			v := operandResult.Value
			if !v.IsNumber() {
				return object.CallExcResult(object.NewException(opName+": operand is not a number", v))
			}
			if v.IsInt32() {
				return object.CallValueResult(value.Int32(intOp(v.AsInt32())))
			}
			return object.CallValueResult(numericBox(cx, floatOp(v.AsFloat64())))
		}, nil)
	}
}

func posHandler(cx *frame.Context) object.NativeFunc {
	return unaryNumeric(cx, "@Pos", func(n int32) int32 { return n }, func(f float64) float64 { return f })
}

func negHandler(cx *frame.Context) object.NativeFunc {
	return unaryNumeric(cx, "@Neg", func(n int32) int32 { return -n }, func(f float64) float64 { return -f })
}

// binaryIntOp computes an int32 result from two int32 operands, reporting
// false when the result would overflow int32 (the caller falls back to
// float arithmetic).
type binaryIntOp func(a, b int32) (int32, bool)

// binaryNumeric builds an "@Add"/"@Sub"/"@Mul"/"@Div"-shaped handler:
// evaluate left, then right (chained through evalAndResume since the
// second evaluation happens from inside the first's resume callback, see
// evalAndResume's doc comment), then combine via intOp when both operands
// are Int32 and it doesn't overflow, or floatOp otherwise.
func binaryNumeric(cx *frame.Context, opName string, intOp binaryIntOp, floatOp func(a, b float64) float64) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.BinaryExprCursor{NodeRef: node}
		rf := ncx.RaisingFrame.(frame.Frame)
		scope := ncx.Scope
		return ncx.Suspend(scope, cursor.Left(), func(_ object.NativeCallContext, _ any, leftResult object.EvalResult) object.CallResult {
			if leftResult.Kind == object.EvalError || leftResult.Kind == object.EvalExc {
				return asCallResult(leftResult)
			}
			if leftResult.Kind == object.EvalVoid {
				return object.CallExcResult(voidExc(opName + " left operand"))
			}
			left := leftResult.Value
			if !left.IsNumber() {
				return object.CallExcResult(object.NewException(opName+": left operand is not a number", left))
			}
			return evalAndResume(cx, rf, scope, cursor.Right(), func(_ object.NativeCallContext, _ any, rightResult object.EvalResult) object.CallResult {
				if rightResult.Kind == object.EvalError || rightResult.Kind == object.EvalExc {
					return asCallResult(rightResult)
				}
				if rightResult.Kind == object.EvalVoid {
					return object.CallExcResult(voidExc(opName + " right operand"))
				}
				right := rightResult.Value
				if !right.IsNumber() {
					return object.CallExcResult(object.NewException(opName+": right operand is not a number", right))
				}
				if left.IsInt32() && right.IsInt32() {
					if r, ok := intOp(left.AsInt32(), right.AsInt32()); ok {
						return object.CallValueResult(value.Int32(r))
					}
				}
				return object.CallValueResult(numericBox(cx, floatOp(left.AsFloat64(), right.AsFloat64())))
			}, nil)
		}, nil)
	}
}

func addHandler(cx *frame.Context) object.NativeFunc {
	return binaryNumeric(cx, "@Add",
		func(a, b int32) (int32, bool) {
			r := int64(a) + int64(b)
			return int32(r), r == int64(int32(r))
		},
		func(a, b float64) float64 { return a + b })
}

func subHandler(cx *frame.Context) object.NativeFunc {
	return binaryNumeric(cx, "@Sub",
		func(a, b int32) (int32, bool) {
			r := int64(a) - int64(b)
			return int32(r), r == int64(int32(r))
		},
		func(a, b float64) float64 { return a - b })
}

func mulHandler(cx *frame.Context) object.NativeFunc {
	return binaryNumeric(cx, "@Mul",
		func(a, b int32) (int32, bool) {
			r := int64(a) * int64(b)
			return int32(r), r == int64(int32(r))
		},
		func(a, b float64) float64 { return a * b })
}

func divHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.BinaryExprCursor{NodeRef: node}
		rf := ncx.RaisingFrame.(frame.Frame)
		scope := ncx.Scope
		return ncx.Suspend(scope, cursor.Left(), func(_ object.NativeCallContext, _ any, leftResult object.EvalResult) object.CallResult {
			if leftResult.Kind == object.EvalError || leftResult.Kind == object.EvalExc {
				return asCallResult(leftResult)
			}
			if leftResult.Kind == object.EvalVoid {
				return object.CallExcResult(voidExc("@Div left operand"))
			}
			left := leftResult.Value
			if !left.IsNumber() {
				return object.CallExcResult(object.NewException("@Div: left operand is not a number", left))
			}
			return evalAndResume(cx, rf, scope, cursor.Right(), func(_ object.NativeCallContext, _ any, rightResult object.EvalResult) object.CallResult {
				if rightResult.Kind == object.EvalError || rightResult.Kind == object.EvalExc {
					return asCallResult(rightResult)
				}
				if rightResult.Kind == object.EvalVoid {
					return object.CallExcResult(voidExc("@Div right operand"))
				}
				right := rightResult.Value
				if !right.IsNumber() {
					return object.CallExcResult(object.NewException("@Div: right operand is not a number", right))
				}
				if right.AsFloat64() == 0 {
					return object.CallExcResult(object.NewException("@Div: division by zero", left, right))
				}
				if left.IsInt32() && right.IsInt32() {
					a, b := left.AsInt32(), right.AsInt32()
					if a%b == 0 {
						return object.CallValueResult(value.Int32(a / b))
					}
				}
				return object.CallValueResult(numericBox(cx, left.AsFloat64()/right.AsFloat64()))
			}, nil)
		}, nil)
	}
}
