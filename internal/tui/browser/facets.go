package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/tome/internal/facet"
)

type facetRow struct {
	node  *facet.Node
	depth int
}

// FacetModel is the toggle tree panel. Nodes with children start collapsed.
type FacetModel struct {
	forest   []*facet.Node
	expanded map[*facet.Node]bool
	rows     []facetRow
	cursor   int
	offset   int
	height   int
}

func NewFacetModel(forest []*facet.Node) *FacetModel {
	m := &FacetModel{
		forest:   forest,
		expanded: make(map[*facet.Node]bool),
		height:   10,
	}
	m.rebuild()
	return m
}

// rebuild recomputes the visible rows, keeping the cursor on the same node
// when it is still visible.
func (m *FacetModel) rebuild() {
	var current *facet.Node
	if m.cursor < len(m.rows) {
		current = m.rows[m.cursor].node
	}

	m.rows = m.rows[:0]
	facet.Walk(m.forest, func(path []string, n *facet.Node) bool {
		m.rows = append(m.rows, facetRow{node: n, depth: len(path) - 1})
		return m.expanded[n]
	})

	m.cursor = 0
	for i, r := range m.rows {
		if r.node == current {
			m.cursor = i
			break
		}
	}
	m.scroll()
}

func (m *FacetModel) SetHeight(h int) {
	m.height = max(h, 1)
	m.scroll()
}

func (m *FacetModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	m.offset = max(min(m.offset, len(m.rows)-m.height), 0)
}

func (m *FacetModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor = max(min(m.cursor+delta, len(m.rows)-1), 0)
	m.scroll()
}

// Current is the node under the cursor.
func (m *FacetModel) Current() *facet.Node {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.cursor].node
}

// Update handles a key press and reports whether any toggle changed.
func (m *FacetModel) Update(msg tea.KeyMsg, keys keyMap) bool {
	switch {
	case key.Matches(msg, keys.up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.down):
		m.moveCursor(1)
	case key.Matches(msg, keys.expand):
		if n := m.Current(); n != nil && !n.IsLeaf() && !m.expanded[n] {
			m.expanded[n] = true
			m.rebuild()
		}
	case key.Matches(msg, keys.collapse):
		m.collapse()
	case key.Matches(msg, keys.cycle):
		n := m.Current()
		if n == nil {
			return false
		}
		if n.Toggle == facet.ToggleNone {
			// Containers have no button; space folds them instead.
			m.expanded[n] = !m.expanded[n]
			m.rebuild()
			return false
		}
		n.Cycle()
		return true
	}
	return false
}

// collapse folds the node under the cursor, or moves to its parent when it
// is already folded.
func (m *FacetModel) collapse() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.cursor]
	if m.expanded[row.node] {
		m.expanded[row.node] = false
		m.rebuild()
		return
	}
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].depth < row.depth {
			m.cursor = i
			m.scroll()
			return
		}
	}
}

func (m *FacetModel) Reset() {
	facet.Reset(m.forest)
}

// Filter compiles the current toggles over a universe of n facets.
func (m *FacetModel) Filter(n int) facet.Filter {
	return facet.Compile(m.forest, n)
}

// Active counts the nodes away from Neutral.
func (m *FacetModel) Active() int {
	var n int
	facet.Walk(m.forest, func(_ []string, node *facet.Node) bool {
		if node.State != facet.Neutral {
			n++
		}
		return true
	})
	return n
}

func stateMark(n *facet.Node) string {
	if n.Toggle == facet.ToggleNone {
		return "   "
	}
	switch n.State {
	case facet.Require:
		return requireStyle.Render("[+]")
	case facet.Exclude:
		return excludeStyle.Render("[-]")
	case facet.Alternate:
		return alternateStyle.Render("[~]")
	}
	return "[ ]"
}

func (m *FacetModel) View(focused bool) string {
	if len(m.rows) == 0 {
		return dimStyle.Render("No facets")
	}

	var b strings.Builder
	end := min(m.offset+m.height, len(m.rows))
	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		fold := "  "
		if !row.node.IsLeaf() {
			fold = "▸ "
			if m.expanded[row.node] {
				fold = "▾ "
			}
		}

		label := row.node.Label
		if row.node.Toggle == facet.ToggleNone && row.node.IsLeaf() {
			label = dimStyle.Render(label)
		}
		if focused && i == m.cursor {
			label = cursorStyle.Render(row.node.Label)
		}

		b.WriteString(strings.Repeat("  ", row.depth) + fold + stateMark(row.node) + " " + label)
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
