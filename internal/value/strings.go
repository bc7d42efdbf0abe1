package value

// Str8 packs up to 7 bytes directly into the Box's data word, per spec.md
// §3's inline-string variants. Bytes above 0xFF are rejected by the
// caller going through Str16 instead.
const maxStr8Len = 7

// Str16 packs up to 3 UTF-16 code units directly into the Box.
const maxStr16Len = 3

// TryStr8 constructs an inline Str8 box, returning false if s is too long
// or contains a byte above 0xFF (impossible for a Go string byte, kept as
// a documented invariant rather than a runtime check).
func TryStr8(s string) (Box, bool) {
	if len(s) > maxStr8Len {
		return Box{}, false
	}
	var data uint64
	data |= uint64(len(s))
	for i := 0; i < len(s); i++ {
		data |= uint64(s[i]) << (8 * (i + 1))
	}
	return Box{tag: TagStr8, data: data}, true
}

// ToStr8String decodes an inline Str8 box back to a Go string, satisfying
// round-trip property 9 of spec.md §8.
func (b Box) ToStr8String() string {
	mustTag(b, TagStr8)
	n := int(b.data & 0xFF)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		buf[i] = byte(b.data >> (8 * (i + 1)))
	}
	return string(buf)
}

// TryStr16 constructs an inline Str16 box from UTF-16 code units.
func TryStr16(units []uint16) (Box, bool) {
	if len(units) > maxStr16Len {
		return Box{}, false
	}
	var data uint64
	data |= uint64(len(units))
	for i, u := range units {
		data |= uint64(u) << (16 * (i + 1))
	}
	return Box{tag: TagStr16, data: data}, true
}

// ToStr16Units decodes an inline Str16 box back to UTF-16 code units.
func (b Box) ToStr16Units() []uint16 {
	mustTag(b, TagStr16)
	n := int(b.data & 0xFFFF)
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = uint16(b.data >> (16 * (i + 1)))
	}
	return units
}

// TryInlineString picks Str8 when the string's UTF-8 bytes fit in 7,
// otherwise Str16 when its UTF-16 encoding fits in 3 units, and reports
// false when the string must be heap-allocated instead.
func TryInlineString(s string) (Box, bool) {
	if box, ok := TryStr8(s); ok {
		return box, true
	}
	units := encodeUTF16(s)
	return TryStr16(units)
}

func encodeUTF16(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r <= 0xFFFF {
			units = append(units, uint16(r))
			continue
		}
		r -= 0x10000
		hi := uint16(0xD800 + (r >> 10))
		lo := uint16(0xDC00 + (r & 0x3FF))
		units = append(units, hi, lo)
	}
	return units
}
