package facet

// State is the position of a toggle control.
type State int

const (
	Neutral State = iota
	Require
	Exclude
	Alternate
)

func (s State) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Require:
		return "require"
	case Exclude:
		return "exclude"
	case Alternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// Toggle is the kind of button attached to a node.
type Toggle int

const (
	// ToggleNone marks a node without a button.
	ToggleNone Toggle = iota
	// ToggleFacet buttons cycle through all four states.
	ToggleFacet
	// ToggleGroup buttons govern a whole group and skip Alternate.
	ToggleGroup
)

func (t Toggle) String() string {
	switch t {
	case ToggleFacet:
		return "facet"
	case ToggleGroup:
		return "group"
	default:
		return "none"
	}
}

// ParseToggle maps a schema keyword to a Toggle.
func ParseToggle(s string) (Toggle, bool) {
	switch s {
	case "", "facet":
		return ToggleFacet, true
	case "group":
		return ToggleGroup, true
	case "none":
		return ToggleNone, true
	}
	return ToggleNone, false
}

// Next returns the state following s for a button of kind t.
func (s State) Next(t Toggle) State {
	switch t {
	case ToggleFacet:
		return (s + 1) % 4
	case ToggleGroup:
		switch s {
		case Neutral:
			return Require
		case Require:
			return Exclude
		default:
			return Neutral
		}
	}
	return Neutral
}
