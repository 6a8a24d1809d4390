package lore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/tome/internal/catalog"
)

// Markdown converts a description line to Markdown. Non-empty highlight
// terms are bolded wherever they occur in plain text, ignoring case.
func Markdown(line, highlight string) string {
	md, _ := convert(line, highlight)
	return md
}

// References lists the cross-references of a description line in order of
// appearance.
func References(line string) []Reference {
	_, refs := convert(line, "")
	return refs
}

func convert(line, highlight string) (string, []Reference) {
	var (
		parts []string
		refs  []Reference
	)
	conv := func(s string) string {
		md, r := inline(s, highlight)
		refs = append(refs, r...)
		return strings.TrimSpace(md)
	}

	for _, b := range split(line) {
		switch b.kind {
		case blockPara:
			if p := conv(b.text); p != "" {
				parts = append(parts, p)
			}
		case blockList:
			var sb strings.Builder
			for _, it := range b.items {
				sb.WriteString(strings.Repeat("  ", it.level) + "- " + conv(it.text) + "\n")
			}
			parts = append(parts, strings.TrimRight(sb.String(), "\n"))
		case blockTable:
			parts = append(parts, table(b, conv))
		}
	}
	return strings.Join(parts, "\n\n"), refs
}

func table(b block, conv func(string) string) string {
	cols := len(b.cells) / max(b.rows, 1)
	if cols == 0 {
		cols = len(b.cells)
	}
	var sb strings.Builder
	for i, c := range b.cells {
		if i%cols == 0 {
			sb.WriteString("|")
		}
		sb.WriteString(" " + conv(c) + " |")
		if i%cols == cols-1 || i == len(b.cells)-1 {
			sb.WriteString("\n")
			if i < cols {
				sb.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Document renders a whole record: its name, detail lines and description.
func Document(name string, details []catalog.DetailLine, line, highlight string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", escape(name))
	for _, d := range details {
		if d.Label == "" {
			fmt.Fprintf(&sb, "*%s*  \n", escape(d.Value))
			continue
		}
		fmt.Fprintf(&sb, "**%s:** %s  \n", escape(d.Label), escape(d.Value))
	}
	if len(details) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(Markdown(line, highlight))
	sb.WriteString("\n")
	return sb.String()
}

// Preview builds the document of rec. A record whose detail info does not fit
// the schema is shown without detail lines.
func Preview(c *catalog.Catalog, rec catalog.Record, highlight string) (string, error) {
	details, err := c.Detail(rec)
	if err != nil && !errors.Is(err, catalog.ErrDetailFieldCount) {
		return "", err
	}
	line, err := c.Line(rec)
	if err != nil {
		return "", err
	}
	return Document(rec.Name, details, line, highlight), nil
}

// Render styles Markdown for the terminal.
func Render(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", fmt.Errorf("lore: renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("lore: render: %w", err)
	}
	return out, nil
}
