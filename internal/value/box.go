// Package value implements ValBox, the tagged dynamic value used as the
// universal currency between every other component of the interpreter.
package value

import "fmt"

// Tag identifies which representation a Box currently holds.
type Tag uint8

const (
	TagInvalid Tag = iota
	TagUndefined
	TagNull
	TagBool
	TagInt32
	TagDouble
	TagHeapDouble
	TagStr8
	TagStr16
	TagHeapString
	TagObjectRef
	TagMagic
)

func (t Tag) String() string {
	switch t {
	case TagInvalid:
		return "Invalid"
	case TagUndefined:
		return "Undefined"
	case TagNull:
		return "Null"
	case TagBool:
		return "Bool"
	case TagInt32:
		return "Int32"
	case TagDouble:
		return "Double"
	case TagHeapDouble:
		return "HeapDouble"
	case TagStr8:
		return "Str8"
	case TagStr16:
		return "Str16"
	case TagHeapString:
		return "HeapString"
	case TagObjectRef:
		return "ObjectRef"
	case TagMagic:
		return "Magic"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// HeapRef is an opaque, GC-visible reference to a heap object. It is the
// realization of spec.md's "heap pointer" case in idiomatic Go: the real
// object graph is traced by Go's own collector (the field is never hidden
// inside an integer), while whisper's own slab/generation bookkeeping is
// carried on the referenced object's header (see internal/heap).
type HeapRef interface {
	// HeapTag distinguishes the kind of heap object without a type switch
	// on every access; internal/heap.Thing satisfies it via an embedded
	// header.
	HeapTag() uint8
}

// Box is the tagged union described in spec.md §3. Exactly one of the
// fields below is meaningful at a time, selected by Tag; the zero value
// (Tag == TagInvalid) is the "raw == 0" sentinel, never observable by
// script code.
type Box struct {
	tag Tag
	// data carries the payload for every non-heap-referencing variant:
	// a bool as 0/1, an int32 sign-extended, a float64's bits, or the
	// packed bytes + length of an inline string.
	data uint64
	// obj carries the payload for every heap-referencing variant. Kept
	// as a typed nil unless tag is one of TagHeapDouble, TagHeapString,
	// TagObjectRef.
	obj HeapRef
}

// Invalid is the zero Box; raw == 0 in spec terms.
var Invalid = Box{}

func Undefined() Box { return Box{tag: TagUndefined} }
func Null() Box      { return Box{tag: TagNull} }

func Bool(b bool) Box {
	var d uint64
	if b {
		d = 1
	}
	return Box{tag: TagBool, data: d}
}

// Int32 constructs an immediate 32-bit integer. The full int32 range is
// representable; there is no validation to fail (invariant (iii): Int32
// and the immediate-double ranges are disjoint encodings by construction,
// since they occupy different Tag values rather than sharing one).
func Int32(n int32) Box {
	return Box{tag: TagInt32, data: uint64(uint32(n))}
}

// Magic constructs a runtime-private value. Script code never produces
// one directly; native handlers use Magic values as internal sentinels
// (e.g. the break-signal Exc marker in the default @LoopStmt handler
// uses an Exc, not Magic, but the type exists for future native-private
// plumbing per spec.md §3's listed variants).
func Magic(bits uint64) Box {
	return Box{tag: TagMagic, data: bits}
}

func (b Box) Tag() Tag { return b.tag }

func (b Box) IsInvalid() bool   { return b.tag == TagInvalid }
func (b Box) IsUndefined() bool { return b.tag == TagUndefined }
func (b Box) IsNull() bool      { return b.tag == TagNull }
func (b Box) IsBool() bool      { return b.tag == TagBool }
func (b Box) IsInt32() bool     { return b.tag == TagInt32 }
func (b Box) IsDouble() bool    { return b.tag == TagDouble || b.tag == TagHeapDouble }
func (b Box) IsNumber() bool    { return b.IsInt32() || b.IsDouble() }
func (b Box) IsStr8() bool      { return b.tag == TagStr8 }
func (b Box) IsStr16() bool     { return b.tag == TagStr16 }
func (b Box) IsString() bool {
	return b.tag == TagStr8 || b.tag == TagStr16 || b.tag == TagHeapString
}
func (b Box) IsObjectRef() bool { return b.tag == TagObjectRef }
func (b Box) IsMagic() bool     { return b.tag == TagMagic }

func (b Box) AsBool() bool {
	mustTag(b, TagBool)
	return b.data != 0
}

func (b Box) AsInt32() int32 {
	mustTag(b, TagInt32)
	return int32(uint32(b.data))
}

func (b Box) AsHeapRef() HeapRef {
	if !b.IsObjectRef() && b.tag != TagHeapString && b.tag != TagHeapDouble {
		panic(fmt.Sprintf("ValBox: AsHeapRef on tag %s", b.tag))
	}
	return b.obj
}

func mustTag(b Box, want Tag) {
	if b.tag != want {
		panic(fmt.Sprintf("ValBox: precondition failed, want tag %s, got %s", want, b.tag))
	}
}

// ObjectRef wraps a heap object reference as a ValBox.
func ObjectRef(r HeapRef) Box {
	if r == nil {
		return Null()
	}
	return Box{tag: TagObjectRef, obj: r}
}

// HeapDouble wraps a heap-allocated double (outside the immediate
// exponent range described in spec.md §3).
func HeapDouble(r HeapRef) Box {
	return Box{tag: TagHeapDouble, obj: r}
}

// HeapString wraps a heap-allocated String object.
func HeapString(r HeapRef) Box {
	return Box{tag: TagHeapString, obj: r}
}
