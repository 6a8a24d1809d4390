package facet

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Bitset is a fixed-width set of facet flags. The width is decided by the
// catalog kind and never changes after construction.
//
// Copies of a Bitset share storage. Set and Union are meant for building a
// value; use Clone when an independent copy is needed.
type Bitset struct {
	n    int
	bits *bitset.BitSet
}

// NewBitset returns an empty Bitset of width n.
func NewBitset(n int) Bitset {
	if n < 0 {
		panic(fmt.Sprintf("facet: negative bitset width %d", n))
	}
	return Bitset{n: n, bits: bitset.New(uint(n))}
}

// ParseBitset builds a Bitset of width n from a digit string. The last
// character of s is bit 0, the one before it bit 1, and so on. A '0' leaves
// the bit clear and any other character sets it. Only the trailing
// min(len(s), n) characters are read; bits without a character stay clear.
func ParseBitset(s string, n int) Bitset {
	b := NewBitset(n)
	limit := min(len(s), n)
	for k := 0; k < limit; k++ {
		if s[len(s)-1-k] != '0' {
			b.bits.Set(uint(k))
		}
	}
	return b
}

// BitsetOf returns a Bitset of width n with the given indices set.
func BitsetOf(n int, indices ...int) Bitset {
	b := NewBitset(n)
	for _, i := range indices {
		b.Set(i)
	}
	return b
}

// Len reports the width of the set.
func (b Bitset) Len() int { return b.n }

func (b Bitset) store() *bitset.BitSet {
	if b.bits == nil {
		return bitset.New(0)
	}
	return b.bits
}

func (b Bitset) check(i int) {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("facet: bit index %d out of range [0,%d)", i, b.n))
	}
}

func (b Bitset) same(other Bitset) {
	if b.n != other.n {
		panic(fmt.Sprintf("facet: bitset width mismatch %d != %d", b.n, other.n))
	}
}

// Test reports whether bit i is set.
func (b Bitset) Test(i int) bool {
	b.check(i)
	return b.bits.Test(uint(i))
}

// Set sets bit i. Setting an already set bit is a no-op.
func (b Bitset) Set(i int) {
	b.check(i)
	b.bits.Set(uint(i))
}

// Union ORs other into b.
func (b Bitset) Union(other Bitset) {
	b.same(other)
	if other.bits == nil {
		return
	}
	b.bits.InPlaceUnion(other.bits)
}

// All reports whether every bit set in mask is also set in b. An empty mask
// is always contained.
func (b Bitset) All(mask Bitset) bool {
	b.same(mask)
	return b.store().IsSuperSet(mask.store())
}

// Any reports whether b and mask share at least one set bit.
func (b Bitset) Any(mask Bitset) bool {
	b.same(mask)
	return b.store().IntersectionCardinality(mask.store()) > 0
}

// None reports whether b and mask share no set bit.
func (b Bitset) None(mask Bitset) bool {
	return !b.Any(mask)
}

// IsEmpty reports whether no bit is set.
func (b Bitset) IsEmpty() bool {
	return b.store().None()
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	return int(b.store().Count())
}

// Indices returns the set bit positions in ascending order.
func (b Bitset) Indices() []int {
	out := make([]int, 0, b.Count())
	s := b.store()
	for i, ok := s.NextSet(0); ok && int(i) < b.n; i, ok = s.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Equal reports whether both sets have the same width and bits.
func (b Bitset) Equal(other Bitset) bool {
	if b.n != other.n {
		return false
	}
	return b.store().Equal(other.store())
}

// Clone returns an independent copy.
func (b Bitset) Clone() Bitset {
	return Bitset{n: b.n, bits: b.store().Clone()}
}

// Encode renders the set as a digit string of the given width, the inverse
// of ParseBitset: bit i lands at position width-1-i.
func (b Bitset) Encode(width int) string {
	buf := []byte(strings.Repeat("0", width))
	for _, i := range b.Indices() {
		if i < width {
			buf[width-1-i] = '1'
		}
	}
	return string(buf)
}

func (b Bitset) String() string {
	return b.Encode(b.n)
}
