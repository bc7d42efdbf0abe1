package natives

import (
	"github.com/kannanvijayan/whisper/internal/frame"
	"github.com/kannanvijayan/whisper/internal/object"
	"github.com/kannanvijayan/whisper/internal/syntax"
)

// parenExprHandler requests evaluation of the parenthesized inner
// expression and becomes its result unchanged.
func parenExprHandler(cx *frame.Context) object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.ParenExprCursor{NodeRef: node}
		return ncx.Suspend(ncx.Scope, cursor.Inner(), passThroughResume, nil)
	}
}

// nameExprHandler looks the identifier up on the caller's scope, per
// spec.md §4.6 and §8 E4.
func nameExprHandler() object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.NameExprCursor{NodeRef: node}
		name := node.ConstantString(cursor.NameConstIdx())
		desc, _, found := ncx.Scope.LookupProperty(name)
		if !found {
			return object.CallExcResult(object.NewException("Name not found", inlineOrUndefined(name)))
		}
		if desc.Kind != object.DescValue {
			return object.CallExcResult(object.NewException("Name does not resolve to a value", inlineOrUndefined(name)))
		}
		return object.CallValueResult(desc.Value)
	}
}

// integerHandler returns the literal constant as an immediate Int32,
// per spec.md §4.6.
func integerHandler() object.NativeFunc {
	return func(ncx object.NativeCallContext) object.CallResult {
		node, errRes := soleOperand(ncx)
		if errRes != nil {
			return *errRes
		}
		cursor := syntax.IntegerExprCursor{NodeRef: node}
		return object.CallValueResult(node.Constant(cursor.LiteralConstIdx()))
	}
}
