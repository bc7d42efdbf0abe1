package heap

// CardWords is the number of 8-byte words in one 1 KiB card, per spec.md
// §3/§4.2 ("Cards are 1 KiB; the card number of any in-slab pointer is
// derivable by shift").
const CardWords = 1024 / 8

// CardOf returns the card number of an offset (in words) within a slab's
// data region.
func CardOf(wordOffset uint32) uint32 {
	return wordOffset / CardWords
}

// CardTable records which cards of a slab the write barrier
// (Slab.MarkDirty) has marked dirty. No collection clears or reads it:
// dirty marks accumulate for the slab's lifetime, and the mark phase
// traces the whole live graph instead of starting from dirty cards (see
// Heap.mark).
type CardTable struct {
	dirty []bool
}

func newCardTable(numCards uint32) CardTable {
	return CardTable{dirty: make([]bool, numCards)}
}

func (c *CardTable) markDirty(card uint32) {
	if int(card) < len(c.dirty) {
		c.dirty[card] = true
	}
}

func (c *CardTable) isDirty(card uint32) bool {
	return int(card) < len(c.dirty) && c.dirty[card]
}

func (c *CardTable) clear() {
	for i := range c.dirty {
		c.dirty[i] = false
	}
}

// DirtyCards returns every card index currently marked dirty.
func (c *CardTable) DirtyCards() []uint32 {
	var out []uint32
	for i, d := range c.dirty {
		if d {
			out = append(out, uint32(i))
		}
	}
	return out
}
