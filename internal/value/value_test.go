package value

import "testing"

func TestTagSoundness(t *testing.T) {
	boxes := []Box{
		Undefined(), Null(), Bool(true), Bool(false), Int32(42), Int32(-1),
	}
	if d, ok := Double(3.5); ok {
		boxes = append(boxes, d)
	}
	if s, ok := TryStr8("hi"); ok {
		boxes = append(boxes, s)
	}
	preds := map[Tag]func(Box) bool{
		TagUndefined: Box.IsUndefined,
		TagNull:      Box.IsNull,
		TagBool:      Box.IsBool,
		TagInt32:     Box.IsInt32,
		TagDouble:    Box.IsDouble,
		TagStr8:      Box.IsStr8,
	}
	for _, b := range boxes {
		matches := 0
		for tag, pred := range preds {
			if pred(b) {
				matches++
				if tag != b.Tag() && !(tag == TagDouble && b.Tag() == TagDouble) {
					// IsDouble also reports true for HeapDouble; not
					// exercised here since none of the test boxes use it.
				}
			}
		}
		if matches != 1 {
			t.Errorf("box %+v: expected exactly one predicate to match, got %d", b, matches)
		}
	}
}

func TestInt32RoundTrip(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 1 << 30, -(1 << 30), 2147483647, -2147483648} {
		b := Int32(n)
		if got := b.AsInt32(); got != n {
			t.Errorf("Int32(%d).AsInt32() = %d", n, got)
		}
	}
}

func TestStr8RoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "hello7!", "whisper"} {
		if len(s) > 7 {
			continue
		}
		b, ok := TryStr8(s)
		if !ok {
			t.Fatalf("TryStr8(%q) failed", s)
		}
		if got := b.ToStr8String(); got != s {
			t.Errorf("TryStr8(%q).ToStr8String() = %q", s, got)
		}
	}
}

func TestStr8TooLong(t *testing.T) {
	if _, ok := TryStr8("too-long-for-str8"); ok {
		t.Error("expected TryStr8 to reject a string longer than 7 bytes")
	}
}

func TestEqualNumericCrossTag(t *testing.T) {
	d, ok := Double(3.0)
	if !ok {
		t.Fatal("Double(3.0) should be representable as an immediate")
	}
	if !Equal(Int32(3), d) {
		t.Error("Int32(3) should equal Double(3.0)")
	}
}

func TestCompareCrossCategoryFails(t *testing.T) {
	s, _ := TryStr8("x")
	if _, err := Compare(Int32(1), s); err == nil {
		t.Error("expected a TypeError comparing Int32 to a string")
	}
}

func TestInvalidSentinel(t *testing.T) {
	if !Invalid.IsInvalid() {
		t.Error("zero Box must report IsInvalid")
	}
}

func TestSpoilerStableWithinProcess(t *testing.T) {
	sp := NewSpoiler()
	h1 := sp.HashString("whisper")
	h2 := sp.HashString("whisper")
	if h1 != h2 {
		t.Error("same spoiler must hash the same string identically")
	}
}

func TestDoubleImmediateRangeRejectsExtreme(t *testing.T) {
	huge := 1e300
	if _, ok := Double(huge); ok {
		t.Error("expected an extreme exponent to fall outside the immediate double range")
	}
}
