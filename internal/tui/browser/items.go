package browser

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/facet"
	"github.com/Paintersrp/tome/internal/schema"
)

// RecordItem is one search result.
type RecordItem struct {
	record catalog.Record
	style  lipgloss.Style
}

func newRecordItem(sch *schema.Schema, highlight facet.Bitset, rec catalog.Record) RecordItem {
	style := lipgloss.NewStyle()
	if colour, ok := sch.Colour(rec.Bits); ok {
		style = style.Foreground(lipgloss.Color(colour))
	}
	if rec.Bits.Any(highlight) {
		style = style.Bold(true)
	}
	return RecordItem{record: rec, style: style}
}

func (i RecordItem) Record() catalog.Record { return i.record }
func (i RecordItem) FilterValue() string    { return i.record.Name }

type recordDelegate struct{}

func (recordDelegate) Height() int                             { return 1 }
func (recordDelegate) Spacing() int                            { return 0 }
func (recordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (recordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(RecordItem)
	if !ok {
		return
	}
	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("> "+i.record.Name))
		return
	}
	fmt.Fprint(w, "  "+i.style.Render(i.record.Name))
}
