package frame

import (
	"unicode/utf16"

	"github.com/kannanvijayan/whisper/internal/syntax"
	"github.com/kannanvijayan/whisper/internal/value"
)

// constantString decodes a constant-pool entry expected to be a string,
// handling both inline encodings the builder may have chosen.
func constantString(ref syntax.NodeRef, idx uint32) string {
	b := ref.Constant(idx)
	switch b.Tag() {
	case value.TagStr8:
		return b.ToStr8String()
	case value.TagStr16:
		return string(utf16.Decode(b.ToStr16Units()))
	default:
		return ""
	}
}
