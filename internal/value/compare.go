package value

import "fmt"

// TypeError reports a cross-category comparison, per spec.md §4.1: ordering
// is defined only within equal categories (numbers, strings); anything
// else fails with a TypeError-class exception rather than panicking, since
// the caller (a frame's Resolve) needs to turn this into an Exc rather
// than aborting the trampoline.
type TypeError struct {
	Op       string
	LeftTag  Tag
	RightTag Tag
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: incompatible operand tags %s and %s", e.Op, e.LeftTag, e.RightTag)
}

// Equal implements raw-word-equality-implies-semantic-equality for every
// non-heap variant (invariant (i) in spec.md §3); heap-referencing boxes
// compare by pointer identity of the referenced object, which the caller
// may combine with a deep String content-comparison at a higher layer.
func Equal(a, b Box) bool {
	if a.tag != b.tag {
		if a.IsNumber() && b.IsNumber() {
			return a.AsFloat64() == b.AsFloat64()
		}
		return false
	}
	switch a.tag {
	case TagObjectRef, TagHeapDouble, TagHeapString:
		return a.obj == b.obj
	default:
		return a.data == b.data
	}
}

// Compare orders two boxes within a shared category, returning -1, 0, or
// 1. It returns a *TypeError when the two boxes are not both numbers or
// both Str8 strings; Str16 and heap strings are not ordered.
func Compare(a, b Box) (int, error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		af, bf := a.AsFloat64(), b.AsFloat64()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case a.IsStr8() && b.IsStr8():
		as, bs := a.ToStr8String(), b.ToStr8String()
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, &TypeError{Op: "compare", LeftTag: a.tag, RightTag: b.tag}
	}
}
