package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBitsetReadsFromTheRight(t *testing.T) {
	b := ParseBitset("0101", 4)
	assert.True(t, b.Test(0))
	assert.False(t, b.Test(1))
	assert.True(t, b.Test(2))
	assert.False(t, b.Test(3))
	assert.Equal(t, []int{0, 2}, b.Indices())
}

func TestParseBitsetShortAndLongInput(t *testing.T) {
	short := ParseBitset("11", 6)
	assert.Equal(t, []int{0, 1}, short.Indices())
	assert.Equal(t, 6, short.Len())

	long := ParseBitset("1110", 2)
	assert.Equal(t, []int{1}, long.Indices())

	empty := ParseBitset("", 5)
	assert.True(t, empty.IsEmpty())
}

func TestParseBitsetNonZeroCharactersSet(t *testing.T) {
	b := ParseBitset("2x0", 3)
	assert.Equal(t, []int{1, 2}, b.Indices())
}

func TestEncodeRoundTrip(t *testing.T) {
	cases := []string{"", "0", "1", "0110", "1000000001", "111111111111"}
	for _, s := range cases {
		b := ParseBitset(s, 12)
		assert.Equal(t, s, b.Encode(len(s)), "round trip of %q", s)
	}
}

func TestSetAndUnion(t *testing.T) {
	a := NewBitset(8)
	a.Set(3)
	a.Set(3)
	assert.Equal(t, 1, a.Count())

	other := BitsetOf(8, 1, 7)
	a.Union(other)
	assert.Equal(t, []int{1, 3, 7}, a.Indices())
	assert.Equal(t, []int{1, 7}, other.Indices())
}

func TestAllAnyNone(t *testing.T) {
	rec := BitsetOf(6, 0, 2, 4)
	empty := NewBitset(6)

	assert.True(t, rec.All(empty))
	assert.False(t, rec.Any(empty))
	assert.True(t, rec.None(empty))

	assert.True(t, rec.All(BitsetOf(6, 0, 4)))
	assert.False(t, rec.All(BitsetOf(6, 0, 1)))
	assert.True(t, rec.Any(BitsetOf(6, 1, 2)))
	assert.False(t, rec.Any(BitsetOf(6, 1, 3, 5)))

	masks := []Bitset{empty, BitsetOf(6, 1), BitsetOf(6, 2), BitsetOf(6, 1, 3, 5), BitsetOf(6, 0, 1, 2, 3, 4, 5)}
	for _, m := range masks {
		assert.Equal(t, !rec.Any(m), rec.None(m), "mask %s", m)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := BitsetOf(4, 1)
	b := a.Clone()
	b.Set(2)
	assert.Equal(t, []int{1}, a.Indices())
	assert.Equal(t, []int{1, 2}, b.Indices())
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(BitsetOf(4, 1)))
}

func TestOutOfRangePanics(t *testing.T) {
	b := NewBitset(4)
	require.Panics(t, func() { b.Test(4) })
	require.Panics(t, func() { b.Set(-1) })
	require.Panics(t, func() { b.Union(NewBitset(5)) })
	require.Panics(t, func() { b.All(NewBitset(3)) })
}

func TestString(t *testing.T) {
	assert.Equal(t, "0000", NewBitset(4).String())
	assert.Equal(t, "1001", BitsetOf(4, 0, 3).String())
}
