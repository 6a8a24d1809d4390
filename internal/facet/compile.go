package facet

import (
	"fmt"
	"strings"
)

// Filter is the compiled form of a toggle tree. A record passes when it
// has every Required bit, no Excluded bit and at least one bit from each
// Alternates group.
type Filter struct {
	Required   Bitset
	Excluded   Bitset
	Alternates []Bitset
}

// IsEmpty reports whether the filter accepts every record.
func (f Filter) IsEmpty() bool {
	return f.Required.IsEmpty() && f.Excluded.IsEmpty() && len(f.Alternates) == 0
}

func (f Filter) String() string {
	groups := make([]string, len(f.Alternates))
	for i, g := range f.Alternates {
		groups[i] = fmt.Sprint(g.Indices())
	}
	return fmt.Sprintf("required=%v excluded=%v alternates=[%s]",
		f.Required.Indices(), f.Excluded.Indices(), strings.Join(groups, " "))
}

// Compile walks the forest and builds a Filter of width n. Every top-level
// entry owns one alternate accumulator, appended after the entry when it
// collected any bit. Pure containers are transparent: their children are
// classified as if they were entries themselves, sharing the accumulator of
// the enclosing top-level entry.
func Compile(forest []*Node, n int) Filter {
	f := Filter{Required: NewBitset(n), Excluded: NewBitset(n)}
	for _, e := range forest {
		alt := NewBitset(n)
		f.visit(e, n, alt)
		if !alt.IsEmpty() {
			f.Alternates = append(f.Alternates, alt)
		}
	}
	return f
}

func (f *Filter) visit(t *Node, n int, alt Bitset) {
	if t.Structural() {
		for _, c := range t.Children {
			f.visit(c, n, alt)
		}
		return
	}
	f.classify(t, n, alt)
}

func (f *Filter) classify(t *Node, n int, alt Bitset) {
	switch t.State {
	case Neutral:
		// Only the immediate children are inspected, each by its own state.
		for _, c := range t.Children {
			if !c.HasBit {
				continue
			}
			switch c.State {
			case Require:
				f.Required.Set(c.Bit)
			case Exclude:
				f.Excluded.Set(c.Bit)
			case Alternate:
				alt.Set(c.Bit)
			}
		}
	case Require:
		if t.IsLeaf() {
			if t.HasBit {
				f.Required.Set(t.Bit)
			}
			return
		}
		g := NewBitset(n)
		leaves(t, g)
		if !g.IsEmpty() {
			f.Alternates = append(f.Alternates, g)
		}
	case Exclude:
		leaves(t, f.Excluded)
	case Alternate:
		leaves(t, alt)
	}
}
