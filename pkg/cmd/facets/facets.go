package facets

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/tome/internal/facet"
	"github.com/Paintersrp/tome/internal/schema"
	"github.com/Paintersrp/tome/internal/state"
)

func NewCmdFacets(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facets [catalog]",
		Short: "List the facet tree of a catalog",
		Long: heredoc.Doc(`
			Print the toggle tree of a catalog with the bit index of every
			facet. Use the labels or label paths shown here with search.
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
			sch, err := s.Schema(name)
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), sch)
		},
	}

	return cmd
}

// Print writes the toggle tree of sch, one node per line.
func Print(w io.Writer, sch *schema.Schema) error {
	var err error
	facet.Walk(sch.Forest(), func(path []string, n *facet.Node) bool {
		if err != nil {
			return false
		}
		var sb strings.Builder
		sb.WriteString(strings.Repeat("  ", len(path)-1))
		sb.WriteString(n.Label)
		if n.HasBit {
			fmt.Fprintf(&sb, " #%d", n.Bit)
			if name := sch.Facets[n.Bit]; !strings.EqualFold(name, n.Label) {
				fmt.Fprintf(&sb, " (%s)", name)
			}
		}
		switch {
		case n.Toggle == facet.ToggleGroup:
			sb.WriteString(" [group]")
		case n.Toggle == facet.ToggleNone && n.HasBit:
			sb.WriteString(" [info]")
		}
		_, err = fmt.Fprintln(w, sb.String())
		return err == nil
	})
	return err
}
