// Package browser is the interactive faceted browser over one catalog.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/tome/internal/cache"
	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/correlate"
	"github.com/Paintersrp/tome/internal/facet"
	"github.com/Paintersrp/tome/internal/lore"
	"github.com/Paintersrp/tome/internal/match"
	"github.com/Paintersrp/tome/internal/state"
)

type focus int

const (
	focusFacets focus = iota
	focusName
	focusLore
	focusResults
	focusCount
)

const facetPanelWidth = 34

type Model struct {
	ctx      context.Context
	state    *state.State
	catalog  *catalog.Catalog
	resolver *correlate.Resolver
	session  *match.Session
	watcher  *state.CatalogWatcher
	rendered *cache.Previews

	facets    *FacetModel
	name      textinput.Model
	lore      textinput.Model
	results   list.Model
	preview   viewport.Model
	help      help.Model
	keys      keyMap
	highlight facet.Bitset

	barNames bool
	barTexts bool
	keepList bool

	focus  focus
	status string
	width  int
	height int

	// refs holds the resolved references of the selected record; refIndex
	// is the one being previewed, or -1 for the record itself.
	refs     []correlate.Ref
	refIndex int

	copy func(string) error
}

// New builds a browser over the named catalog and runs an unfiltered search
// so every record is listed.
func New(ctx context.Context, s *state.State, name string) (Model, error) {
	c, err := s.Catalog(ctx, name)
	if err != nil {
		return Model{}, err
	}
	resolver, err := s.Resolver(ctx)
	if err != nil {
		return Model{}, err
	}
	watcher, err := s.Watcher()
	if err != nil {
		s.Logger.Warn("catalog watch disabled", "err", err)
		watcher = nil
	}

	rendered, err := cache.New(256)
	if err != nil {
		return Model{}, err
	}

	nameInput := textinput.New()
	nameInput.Prompt = ""
	nameInput.Placeholder = "name contains"
	nameInput.Width = 20

	loreInput := textinput.New()
	loreInput.Prompt = ""
	loreInput.Placeholder = "text contains"
	loreInput.Width = 20

	results := list.New(nil, recordDelegate{}, 0, 0)
	results.Title = c.Name
	results.Styles.Title = titleStyle
	results.SetShowHelp(false)
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)
	results.DisableQuitKeybindings()

	m := Model{
		ctx:       ctx,
		state:     s,
		catalog:   c,
		resolver:  resolver,
		session:   match.NewSession(c, s.Logger),
		watcher:   watcher,
		rendered:  rendered,
		facets:    NewFacetModel(c.Schema.Forest()),
		name:      nameInput,
		lore:      loreInput,
		results:   results,
		preview:   viewport.New(0, 0),
		help:      help.New(),
		keys:      newKeyMap(),
		highlight: c.Schema.HighlightSet(),
		refIndex:  -1,
		copy:      clipboard.WriteAll,
	}
	m.resize(120, 40)
	m.search(match.Full)
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.watcher.Start()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.resize(msg.Width-h, msg.Height-v)
		m.updatePreview()
		return m, nil

	case state.CatalogChangedMsg:
		m.reload(msg.Catalog)
		return m, m.watcher.Start()

	case state.CatalogWatcherErrMsg:
		m.status = "Watch error: " + msg.Err.Error()
		return m, m.watcher.Start()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.nextFocus):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.prevFocus):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.search):
		mode := match.Full
		if m.keepList {
			mode = match.Refine
		}
		m.search(mode)
		return m, nil
	case key.Matches(msg, m.keys.reset):
		m.facets.Reset()
		m.status = "Toggles reset."
		return m, nil
	case key.Matches(msg, m.keys.barNames):
		m.barNames = !m.barNames
		return m, nil
	case key.Matches(msg, m.keys.barTexts):
		m.barTexts = !m.barTexts
		return m, nil
	case key.Matches(msg, m.keys.keepList):
		m.keepList = !m.keepList
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusFacets:
		m.facets.Update(msg, m.keys)
	case focusName:
		m.name, cmd = m.name.Update(msg)
	case focusLore:
		m.lore, cmd = m.lore.Update(msg)
	case focusResults:
		cmd = m.handleResultsKey(msg)
	}
	return m, cmd
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.copyName):
		rec, _, ok := m.current()
		if !ok {
			return nil
		}
		if err := m.copy(rec.Name); err != nil {
			m.status = "Copy failed: " + err.Error()
			return nil
		}
		m.status = fmt.Sprintf("Copied %q.", rec.Name)
		return nil
	case key.Matches(msg, m.keys.follow):
		m.followReference()
		return nil
	case key.Matches(msg, m.keys.back):
		if m.refIndex >= 0 {
			m.refIndex = -1
			m.updatePreview()
		}
		return nil
	case key.Matches(msg, m.keys.scrollUp):
		m.preview.ViewUp()
		return nil
	case key.Matches(msg, m.keys.scrollDown):
		m.preview.ViewDown()
		return nil
	}

	before := m.results.Index()
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	if m.results.Index() != before {
		m.refs = nil
		m.refIndex = -1
		m.updatePreview()
	}
	return cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.name.Blur()
	m.lore.Blur()
	switch f {
	case focusName:
		return m.name.Focus()
	case focusLore:
		return m.lore.Focus()
	}
	return nil
}

func (m *Model) query() match.Query {
	return match.Query{
		Name:       m.name.Value(),
		Lore:       m.lore.Value(),
		InvertName: m.barNames,
		InvertLore: m.barTexts,
	}
}

func (m *Model) search(mode match.Mode) {
	f := m.facets.Filter(m.catalog.Schema.Universe())
	records, err := m.session.Search(m.ctx, f, m.query(), mode)
	if err != nil {
		m.state.Logger.Error("search failed", "catalog", m.catalog.Name, "err", err)
		m.status = "Search failed: " + err.Error()
		return
	}
	m.setResults(records)
	m.status = match.Summary(len(records))
}

func (m *Model) setResults(records []catalog.Record) {
	items := make([]list.Item, len(records))
	for i, rec := range records {
		items[i] = newRecordItem(m.catalog.Schema, m.highlight, rec)
	}
	m.results.SetItems(items)
	m.results.ResetSelected()
	m.refs = nil
	m.refIndex = -1
	m.updatePreview()
}

// current is the record shown in the preview: the selected result or the
// reference being followed.
func (m *Model) current() (catalog.Record, *catalog.Catalog, bool) {
	if m.refIndex >= 0 && m.refIndex < len(m.refs) {
		ref := m.refs[m.refIndex]
		return ref.Record, ref.Catalog, true
	}
	item, ok := m.results.SelectedItem().(RecordItem)
	if !ok {
		return catalog.Record{}, nil, false
	}
	return item.Record(), m.catalog, true
}

func (m *Model) updatePreview() {
	rec, c, ok := m.current()
	if !ok {
		m.preview.SetContent(dimStyle.Render("No record selected."))
		return
	}

	var highlight string
	if !m.barTexts {
		highlight = m.lore.Value()
	}
	k := cache.Key{Catalog: c.Name, Record: rec.ID, Highlight: highlight, Width: m.preview.Width}
	out, ok := m.rendered.Get(k)
	if !ok {
		md, err := lore.Preview(c, rec, highlight)
		if err != nil {
			m.preview.SetContent("Error reading record: " + err.Error())
			return
		}
		if out, err = lore.Render(md, m.preview.Width-2); err != nil {
			out = md
		}
		m.rendered.Put(k, out)
	}
	m.preview.SetContent(out)
	m.preview.GotoTop()
}

// followReference previews the next resolved reference of the selected
// record, wrapping back to the first.
func (m *Model) followReference() {
	if m.refs == nil {
		item, ok := m.results.SelectedItem().(RecordItem)
		if !ok {
			return
		}
		line, err := m.catalog.Line(item.Record())
		if err != nil {
			m.status = "Error reading record: " + err.Error()
			return
		}
		m.refs = []correlate.Ref{}
		seen := make(map[string]bool)
		for _, lr := range lore.References(line) {
			ref, ok := m.resolver.Resolve(lr.Kind, lr.Name)
			if !ok {
				continue
			}
			id := ref.Catalog.Name + "/" + ref.Record.Name
			if !seen[id] {
				seen[id] = true
				m.refs = append(m.refs, ref)
			}
		}
	}

	if len(m.refs) == 0 {
		m.status = "No references."
		return
	}
	m.refIndex = (m.refIndex + 1) % len(m.refs)
	ref := m.refs[m.refIndex]
	m.status = fmt.Sprintf("Reference %d/%d: %s (%s)", m.refIndex+1, len(m.refs), ref.Record.Name, ref.Catalog.Name)
	m.updatePreview()
}

// reload swaps in a fresh load of a changed catalog. The retained results
// refer to the old record ids, so a full search is rerun.
func (m *Model) reload(name string) {
	c, err := m.state.Reload(m.ctx, name)
	if err != nil {
		m.state.Logger.Error("reload failed", "catalog", name, "err", err)
		m.status = fmt.Sprintf("Reload of %s failed: %v", name, err)
		return
	}
	m.rendered.Purge(name)
	if resolver, err := m.state.Resolver(m.ctx); err == nil {
		m.resolver = resolver
	}
	if name != m.catalog.Name {
		m.refs = nil
		m.refIndex = -1
		return
	}

	m.catalog = c
	m.session = match.NewSession(c, m.state.Logger)
	m.highlight = c.Schema.HighlightSet()
	m.search(match.Full)
	m.status = fmt.Sprintf("Reloaded %s. %s", name, m.status)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	bodyHeight := max(height-6, 3)
	frameW, frameH := panelStyle.GetFrameSize()

	m.facets.SetHeight(bodyHeight - frameH)

	listWidth := max((width-facetPanelWidth)/3, 20)
	m.results.SetSize(listWidth-frameW, bodyHeight-frameH)

	m.preview.Width = max(width-facetPanelWidth-listWidth-previewStyle.GetHorizontalFrameSize(), 20)
	m.preview.Height = bodyHeight
	m.help.Width = width
}

func (m Model) panel(f focus, content string, width int) string {
	style := panelStyle
	if m.focus == f {
		style = focusedPanelStyle
	}
	return style.Copy().Width(width - style.GetHorizontalFrameSize()).Render(content)
}

func (m Model) inputView(label string, in textinput.Model, f focus) string {
	text := inputLabelStyle.Render(label+": ") + in.View()
	if m.focus == f {
		return focusedPanelStyle.Render(text)
	}
	return panelStyle.Render(text)
}

func checkbox(label string, on bool) string {
	if on {
		return "[x] " + label
	}
	return "[ ] " + label
}

func (m Model) View() string {
	options := strings.Join([]string{
		checkbox("Bar names", m.barNames),
		checkbox("Bar texts", m.barTexts),
		checkbox("Keep list", m.keepList),
	}, "  ")

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		m.inputView("Names", m.name, focusName),
		" ",
		m.inputView("Texts", m.lore, focusLore),
		"  ",
		options,
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(focusFacets, m.facets.View(m.focus == focusFacets), facetPanelWidth),
		m.panel(focusResults, m.results.View(), m.results.Width()+panelStyle.GetHorizontalFrameSize()),
		previewStyle.Render(m.preview.View()),
	)

	status := m.status
	if n := m.facets.Active(); n > 0 {
		status += fmt.Sprintf("  %d toggles set.", n)
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		statusStyle(status),
		m.help.View(m.keys),
	))
}

// Run starts the browser on the named catalog.
func Run(ctx context.Context, s *state.State, name string) error {
	m, err := New(ctx, s, name)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("browser: %w", err)
	}
	return nil
}
