package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/facet"
	"github.com/Paintersrp/tome/internal/match"
	"github.com/Paintersrp/tome/internal/schema"
	"github.com/Paintersrp/tome/internal/state"
)

type options struct {
	require  []string
	exclude  []string
	alt      []string
	name     string
	lore     string
	barNames bool
	barTexts bool
	json     bool
	colour   bool
}

func NewCmdSearch(s *state.State) *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:     "search [catalog]",
		Aliases: []string{"s"},
		Short:   "Filter a catalog by facets and text",
		Long: heredoc.Doc(`
			Filter a catalog without opening the browser.

			Facets are named by label path, unique label or facet name. A
			required facet must be present, an excluded facet must be absent
			and at least one alternate facet of each category must be present.
			Naming a group requires any of its members.
		`),
		Example: heredoc.Doc(`
			tome search spells -r Energy/Fire -x "Saving Throw/Will" --name ball
			tome search powers -a Psion,Wilder --lore damage --json
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			name, err := s.CatalogName(arg)
			if err != nil {
				return err
			}
			c, err := s.Catalog(cmd.Context(), name)
			if err != nil {
				return err
			}
			o.colour = isTerminal(cmd.OutOrStdout())
			return run(cmd.Context(), s, c, o, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringSliceVarP(&o.require, "require", "r", nil, "Facets that must be present")
	cmd.Flags().StringSliceVarP(&o.exclude, "exclude", "x", nil, "Facets that must be absent")
	cmd.Flags().StringSliceVarP(&o.alt, "alt", "a", nil, "Facets of which each category needs one")
	cmd.Flags().StringVar(&o.name, "name", "", "Text the record name must contain")
	cmd.Flags().StringVar(&o.lore, "lore", "", "Text the description must contain")
	cmd.Flags().BoolVar(&o.barNames, "bar-names", false, "Exclude names containing --name instead")
	cmd.Flags().BoolVar(&o.barTexts, "bar-texts", false, "Exclude descriptions containing --lore instead")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print results as JSON")

	return cmd
}

// Compile applies facet references to a fresh toggle tree of sch and
// compiles it.
func Compile(sch *schema.Schema, require, exclude, alt []string) (facet.Filter, error) {
	forest := sch.Forest()
	apply := func(refs []string, st facet.State) error {
		for _, ref := range refs {
			n, err := sch.Find(forest, ref)
			if err != nil {
				return err
			}
			if !n.SetState(st) {
				return fmt.Errorf("facet %q cannot be set to %s", ref, st)
			}
		}
		return nil
	}
	if err := apply(require, facet.Require); err != nil {
		return facet.Filter{}, err
	}
	if err := apply(exclude, facet.Exclude); err != nil {
		return facet.Filter{}, err
	}
	if err := apply(alt, facet.Alternate); err != nil {
		return facet.Filter{}, err
	}
	return facet.Compile(forest, sch.Universe()), nil
}

type result struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Facets []string `json:"facets"`
}

func run(ctx context.Context, s *state.State, c *catalog.Catalog, o options, out io.Writer) error {
	f, err := Compile(c.Schema, o.require, o.exclude, o.alt)
	if err != nil {
		return err
	}
	s.Logger.Debug("search", "catalog", c.Name, "filter", f.String())

	sess := match.NewSession(c, s.Logger)
	records, err := sess.Search(ctx, f, match.Query{
		Name:       o.name,
		Lore:       o.lore,
		InvertName: o.barNames,
		InvertLore: o.barTexts,
	}, match.Full)
	if err != nil {
		return err
	}

	if o.json {
		results := make([]result, 0, len(records))
		for _, rec := range records {
			r := result{ID: rec.ID, Name: rec.Name, Facets: []string{}}
			for _, i := range rec.Bits.Indices() {
				r.Facets = append(r.Facets, c.Schema.Label(i))
			}
			results = append(results, r)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	hl := c.Schema.HighlightSet()
	for _, rec := range records {
		fmt.Fprintln(out, styleName(c.Schema, hl, rec, o.colour))
	}
	if o.colour {
		fmt.Fprintln(out, match.Summary(len(records)))
	}
	return nil
}

// styleName colours a record name by its first coloured facet and bolds
// records carrying a highlighted facet.
func styleName(sch *schema.Schema, hl facet.Bitset, rec catalog.Record, colour bool) string {
	if !colour {
		return rec.Name
	}
	style := lipgloss.NewStyle()
	if col, ok := sch.Colour(rec.Bits); ok {
		style = style.Foreground(lipgloss.Color(col))
	}
	if rec.Bits.Any(hl) {
		style = style.Bold(true)
	}
	return style.Render(rec.Name)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
