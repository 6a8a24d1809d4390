package facet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fire = iota
	cold
	ranged
	touch
	width
)

func energyRange() []*Node {
	return []*Node{
		Group("Energy", ToggleFacet, Leaf("Fire", fire), Leaf("Cold", cold)),
		Group("Range", ToggleFacet, Leaf("Ranged", ranged), Leaf("Touch", touch)),
	}
}

func indices(groups []Bitset) [][]int {
	out := make([][]int, len(groups))
	for i, g := range groups {
		out[i] = g.Indices()
	}
	return out
}

func TestCompileAllNeutralIsEmpty(t *testing.T) {
	f := Compile(energyRange(), width)
	assert.True(t, f.IsEmpty())
	assert.Empty(t, f.Alternates)
}

func TestCompileRequireLeaf(t *testing.T) {
	forest := []*Node{Leaf("Fire", fire), Leaf("Cold", cold)}
	forest[0].State = Require

	f := Compile(forest, width)
	assert.Equal(t, []int{fire}, f.Required.Indices())
	assert.True(t, f.Excluded.IsEmpty())
	assert.Empty(t, f.Alternates)
}

func TestCompileRequireBranchIsOneAlternateGroup(t *testing.T) {
	forest := energyRange()
	forest[0].State = Require
	forest[0].Children[0].State = Exclude // ignored under a forced branch

	f := Compile(forest, width)
	assert.True(t, f.Required.IsEmpty())
	assert.True(t, f.Excluded.IsEmpty())
	assert.Equal(t, [][]int{{fire, cold}}, indices(f.Alternates))
}

func TestCompileExcludeBranch(t *testing.T) {
	forest := energyRange()
	forest[1].State = Exclude

	f := Compile(forest, width)
	assert.Equal(t, []int{ranged, touch}, f.Excluded.Indices())
	assert.Empty(t, f.Alternates)
}

func TestCompileAlternateBranchAndLeaf(t *testing.T) {
	branch := energyRange()
	branch[0].State = Alternate
	f := Compile(branch, width)
	assert.Equal(t, [][]int{{fire, cold}}, indices(f.Alternates))

	leaf := []*Node{Leaf("Fire", fire)}
	leaf[0].State = Alternate
	f = Compile(leaf, width)
	assert.Equal(t, [][]int{{fire}}, indices(f.Alternates))
}

func TestCompileNeutralBranchLooksAtChildren(t *testing.T) {
	forest := energyRange()
	forest[0].Children[0].State = Alternate
	forest[0].Children[1].State = Alternate
	forest[1].Children[0].State = Require
	forest[1].Children[1].State = Exclude

	f := Compile(forest, width)
	assert.Equal(t, []int{ranged}, f.Required.Indices())
	assert.Equal(t, []int{touch}, f.Excluded.Indices())
	assert.Equal(t, [][]int{{fire, cold}}, indices(f.Alternates))
}

func TestCompileAlternatesAreScopedPerEntry(t *testing.T) {
	forest := energyRange()
	forest[0].Children[0].State = Alternate
	forest[1].Children[1].State = Alternate

	f := Compile(forest, width)
	assert.Equal(t, [][]int{{fire}, {touch}}, indices(f.Alternates))
}

func TestCompileNeutralBranchDoesNotRecurse(t *testing.T) {
	inner := Group("Inner", ToggleFacet, Leaf("Cold", cold))
	inner.Children[0].State = Require
	forest := []*Node{Group("Outer", ToggleFacet, Leaf("Fire", fire), inner)}

	f := Compile(forest, width)
	assert.True(t, f.IsEmpty())
}

func TestCompileContainersShareTheEntryAccumulator(t *testing.T) {
	forest := []*Node{Container("Root", energyRange()...)}
	forest[0].Children[0].Children[0].State = Alternate
	forest[0].Children[1].Children[0].State = Alternate

	f := Compile(forest, width)
	assert.Equal(t, [][]int{{fire, ranged}}, indices(f.Alternates))
}

func TestCompileCategoryAlternatesAreOneGroup(t *testing.T) {
	ranges := Container("Ranges", Leaf("Ranged", ranged), Leaf("Touch", touch))
	energy := Container("Energy", Leaf("Fire", fire), Leaf("Cold", cold))
	ranges.Children[0].State = Alternate
	ranges.Children[1].State = Alternate
	energy.Children[0].State = Require

	f := Compile([]*Node{energy, ranges}, width)
	assert.Equal(t, []int{fire}, f.Required.Indices())
	assert.Equal(t, [][]int{{ranged, touch}}, indices(f.Alternates))
}

func TestCompileForcedUnionUsesDescendantLeaves(t *testing.T) {
	sources := Group("Sources", ToggleGroup,
		Leaf("Core", fire),
		Container("Other", Leaf("Splat", cold), Leaf("Web", ranged)),
	)
	sources.State = Exclude

	f := Compile([]*Node{sources}, width)
	assert.Equal(t, []int{fire, cold, ranged}, f.Excluded.Indices())
}

func TestCompileIsFreshEachCall(t *testing.T) {
	forest := energyRange()
	forest[0].Children[0].State = Require
	first := Compile(forest, width)

	Reset(forest)
	second := Compile(forest, width)
	require.True(t, second.IsEmpty())
	assert.Equal(t, []int{fire}, first.Required.Indices())
}
