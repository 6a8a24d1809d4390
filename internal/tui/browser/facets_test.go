package browser

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Paintersrp/tome/internal/facet"
)

func newSpellFacets() *FacetModel {
	return NewFacetModel([]*facet.Node{
		facet.Group("Energy", facet.ToggleGroup, facet.Leaf("Fire", 0), facet.Leaf("Cold", 1)),
		facet.Container("Ranges", facet.Leaf("Ranged", 2), facet.Leaf("Touch", 3)),
		facet.Leaf("Evocation", 4),
	})
}

func labels(m *FacetModel) []string {
	out := make([]string, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.node.Label
	}
	return out
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "f3":
		return tea.KeyMsg{Type: tea.KeyF3}
	case "f4":
		return tea.KeyMsg{Type: tea.KeyF4}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFacetTreeStartsCollapsed(t *testing.T) {
	m := newSpellFacets()
	assert.Equal(t, []string{"Energy", "Ranges", "Evocation"}, labels(m))
}

func TestFacetExpandAndCollapse(t *testing.T) {
	m := newSpellFacets()
	keys := newKeyMap()

	m.Update(keyMsg("right"), keys)
	assert.Equal(t, []string{"Energy", "Fire", "Cold", "Ranges", "Evocation"}, labels(m))

	m.Update(keyMsg("down"), keys)
	assert.Equal(t, "Fire", m.Current().Label)

	// Left on a leaf moves to its parent, left again folds it.
	m.Update(keyMsg("left"), keys)
	assert.Equal(t, "Energy", m.Current().Label)
	m.Update(keyMsg("left"), keys)
	assert.Equal(t, []string{"Energy", "Ranges", "Evocation"}, labels(m))
	assert.Equal(t, "Energy", m.Current().Label)
}

func TestFacetSpaceCyclesButtons(t *testing.T) {
	m := newSpellFacets()
	keys := newKeyMap()

	// Group buttons skip Alternate.
	for _, want := range []facet.State{facet.Require, facet.Exclude, facet.Neutral} {
		assert.True(t, m.Update(keyMsg("space"), keys))
		assert.Equal(t, want, m.Current().State)
	}

	m.Update(keyMsg("down"), keys)
	assert.Equal(t, "Ranges", m.Current().Label)
	assert.False(t, m.Update(keyMsg("space"), keys), "containers have no button")
	assert.Equal(t, []string{"Energy", "Ranges", "Ranged", "Touch", "Evocation"}, labels(m))

	m.Update(keyMsg("down"), keys)
	for _, want := range []facet.State{facet.Require, facet.Exclude, facet.Alternate, facet.Neutral} {
		m.Update(keyMsg("space"), keys)
		assert.Equal(t, want, m.Current().State)
	}
}

func TestFacetFilterAndReset(t *testing.T) {
	m := newSpellFacets()
	keys := newKeyMap()

	m.Update(keyMsg("right"), keys)
	m.Update(keyMsg("down"), keys)
	m.Update(keyMsg("space"), keys)
	assert.Equal(t, 1, m.Active())

	f := m.Filter(5)
	assert.Equal(t, []int{0}, f.Required.Indices())

	m.Reset()
	assert.Equal(t, 0, m.Active())
	assert.True(t, m.Filter(5).IsEmpty())
}

func TestFacetCursorScrolls(t *testing.T) {
	m := newSpellFacets()
	keys := newKeyMap()
	m.SetHeight(2)

	m.Update(keyMsg("down"), keys)
	m.Update(keyMsg("down"), keys)
	assert.Equal(t, "Evocation", m.Current().Label)
	assert.Equal(t, 1, m.offset)

	m.Update(keyMsg("down"), keys)
	assert.Equal(t, "Evocation", m.Current().Label, "cursor stops at the last row")
}
