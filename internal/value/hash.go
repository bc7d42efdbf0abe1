package value

import "hash/maphash"

// Spoiler is the per-thread hash seed described in spec.md §4.1: "string
// hashes are seeded with a per-thread spoiler derived at startup to
// prevent adversarial collisions." It wraps hash/maphash.Seed, which
// already derives a fresh random seed per process/goroutine-independent
// value without hand-rolling a PRNG.
type Spoiler struct {
	seed maphash.Seed
}

// NewSpoiler derives a fresh spoiler. Called once per ThreadContext at
// register_thread time.
func NewSpoiler() Spoiler {
	return Spoiler{seed: maphash.MakeSeed()}
}

// HashString computes a stable-within-process hash of s, seeded by the
// spoiler so that two ThreadContexts (and thus two processes observing
// the same strings) do not share exploitable collision patterns.
func (s Spoiler) HashString(str string) uint64 {
	var h maphash.Hash
	h.SetSeed(s.seed)
	_, _ = h.WriteString(str)
	return h.Sum64()
}

// Hash computes a stable hash for any Box. Numbers and bools hash their
// raw data word; strings hash their content through the spoiler; object
// references hash their heap identity.
func (s Spoiler) Hash(b Box) uint64 {
	switch b.tag {
	case TagStr8:
		return s.HashString(b.ToStr8String())
	case TagStr16:
		units := b.ToStr16Units()
		buf := make([]byte, len(units)*2)
		for i, u := range units {
			buf[2*i] = byte(u)
			buf[2*i+1] = byte(u >> 8)
		}
		var h maphash.Hash
		h.SetSeed(s.seed)
		_, _ = h.Write(buf)
		return h.Sum64()
	case TagObjectRef, TagHeapDouble, TagHeapString:
		return uint64(uintptr(hashPointer(b.obj)))
	default:
		return b.data ^ uint64(b.tag)<<56
	}
}

// hashPointer extracts a stable integer identity for a heap reference
// without depending on internal/heap (which would create an import
// cycle); internal/heap.Thing values satisfy this via their address.
func hashPointer(r HeapRef) uintptr {
	type addressable interface{ Address() uintptr }
	if a, ok := r.(addressable); ok {
		return a.Address()
	}
	return 0
}
