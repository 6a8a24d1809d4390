package browser

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	nextFocus key.Binding
	prevFocus key.Binding
	search    key.Binding
	quit      key.Binding

	up       key.Binding
	down     key.Binding
	cycle    key.Binding
	expand   key.Binding
	collapse key.Binding
	reset    key.Binding

	barNames key.Binding
	barTexts key.Binding
	keepList key.Binding

	copyName   key.Binding
	follow     key.Binding
	back       key.Binding
	scrollUp   key.Binding
	scrollDown key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		nextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		prevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous panel"),
		),
		search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		cycle: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "cycle toggle"),
		),
		expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		reset: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "reset toggles"),
		),
		barNames: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "bar names"),
		),
		barTexts: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "bar texts"),
		),
		keepList: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("f4", "keep list"),
		),
		copyName: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy name"),
		),
		follow: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "follow reference"),
		),
		back: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "back to record"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll preview up"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll preview down"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextFocus, k.search, k.cycle, k.reset, k.barNames, k.barTexts, k.keepList, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.nextFocus, k.prevFocus, k.search, k.quit},
		{k.up, k.down, k.cycle, k.expand, k.collapse, k.reset},
		{k.barNames, k.barTexts, k.keepList},
		{k.copyName, k.follow, k.back, k.scrollUp, k.scrollDown},
	}
}
