package facet

import "strings"

// Node is one entry in a toggle tree. A node may be bound to a facet bit,
// may carry a button, and may group children. Nodes with neither a bit nor
// a button are pure containers and never hold a state.
type Node struct {
	Label    string
	Bit      int
	HasBit   bool
	Toggle   Toggle
	State    State
	Children []*Node
}

// Leaf returns a facet-bound node with a four-state button.
func Leaf(label string, bit int) *Node {
	return &Node{Label: label, Bit: bit, HasBit: true, Toggle: ToggleFacet}
}

// Group returns a node with a button of kind t over children.
func Group(label string, t Toggle, children ...*Node) *Node {
	return &Node{Label: label, Toggle: t, Children: children}
}

// Container returns a pure container over children.
func Container(label string, children ...*Node) *Node {
	return &Node{Label: label, Children: children}
}

// Structural reports whether n is a pure container.
func (n *Node) Structural() bool {
	return !n.HasBit && n.Toggle == ToggleNone
}

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Cycle advances the node's state to the next position of its button.
func (n *Node) Cycle() State {
	if n.Toggle == ToggleNone {
		return n.State
	}
	n.State = n.State.Next(n.Toggle)
	return n.State
}

// SetState sets the node's state, clamping Alternate to Neutral for group
// buttons that cannot express it. It reports whether the state was accepted.
func (n *Node) SetState(s State) bool {
	switch {
	case n.Toggle == ToggleNone:
		return false
	case n.Toggle == ToggleGroup && s == Alternate:
		return false
	}
	n.State = s
	return true
}

// Walk visits every node depth first with its label path. Returning false
// from fn skips the node's children.
func Walk(forest []*Node, fn func(path []string, n *Node) bool) {
	var visit func(prefix []string, nodes []*Node)
	visit = func(prefix []string, nodes []*Node) {
		for _, n := range nodes {
			path := append(append([]string(nil), prefix...), n.Label)
			if fn(path, n) {
				visit(path, n.Children)
			}
		}
	}
	visit(nil, forest)
}

// Reset returns every node to Neutral.
func Reset(forest []*Node) {
	Walk(forest, func(_ []string, n *Node) bool {
		n.State = Neutral
		return true
	})
}

// Find locates a node by its slash separated label path. A single label is
// also accepted when it names exactly one node in the forest.
func Find(forest []*Node, path string) (*Node, bool) {
	want := strings.Split(path, "/")
	var found []*Node
	Walk(forest, func(p []string, n *Node) bool {
		if len(want) == 1 {
			if strings.EqualFold(n.Label, want[0]) {
				found = append(found, n)
			}
			return true
		}
		if len(p) > len(want) {
			return false
		}
		for i := range p {
			if !strings.EqualFold(p[i], want[i]) {
				return false
			}
		}
		if len(p) == len(want) {
			found = append(found, n)
			return false
		}
		return true
	})
	if len(found) != 1 {
		return nil, false
	}
	return found[0], true
}

// leaves ORs every descendant leaf bit of n into dst, ignoring states.
func leaves(n *Node, dst Bitset) {
	if n.IsLeaf() {
		if n.HasBit {
			dst.Set(n.Bit)
		}
		return
	}
	for _, c := range n.Children {
		leaves(c, dst)
	}
}
