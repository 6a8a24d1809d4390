package show

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Paintersrp/tome/internal/correlate"
	"github.com/Paintersrp/tome/internal/lore"
	"github.com/Paintersrp/tome/internal/state"
)

type options struct {
	kind      string
	highlight string
	raw       bool
	refs      bool
	width     int
}

func NewCmdShow(s *state.State) *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show the details and description of a record",
		Long: heredoc.Doc(`
			Show a record by name. An exact name wins; otherwise names sharing
			the first three letters are compared loosely, so plurals and small
			typos still resolve. Without --kind every catalog is searched.
		`),
		Example: heredoc.Doc(`
			tome show Fireball
			tome show "Magic Missiles" --kind spells --refs
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.raw = o.raw || !isTerminal(cmd.OutOrStdout())
			if o.width == 0 {
				o.width = s.Config.Preview.Width
			}
			return run(cmd.Context(), s, strings.Join(args, " "), o, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&o.kind, "kind", "k", "", "Catalog kind to search")
	cmd.Flags().StringVar(&o.highlight, "highlight", "", "Text to emphasise in the description")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "Print Markdown instead of rendering it")
	cmd.Flags().BoolVar(&o.refs, "refs", false, "List the records the description refers to")
	cmd.Flags().IntVarP(&o.width, "width", "w", 0, "Wrap width of rendered output")

	return cmd
}

func resolve(r *correlate.Resolver, kinds []string, kind, name string) (correlate.Ref, bool) {
	if kind != "" {
		return r.Resolve(kind, name)
	}
	if ref, ok := r.Resolve("", name); ok {
		return ref, true
	}
	for _, k := range kinds {
		if ref, ok := r.Resolve(k, name); ok {
			return ref, true
		}
	}
	return correlate.Ref{}, false
}

func run(ctx context.Context, s *state.State, name string, o options, out io.Writer) error {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	r := correlate.NewResolver(s.Logger, all...)
	kinds := make([]string, 0, len(all))
	for _, c := range all {
		kinds = append(kinds, c.Schema.Kind)
	}

	ref, ok := resolve(r, kinds, o.kind, name)
	if !ok {
		return fmt.Errorf("%q: no such record", name)
	}

	md, err := lore.Preview(ref.Catalog, ref.Record, o.highlight)
	if err != nil {
		return err
	}

	if o.refs {
		line, err := ref.Catalog.Line(ref.Record)
		if err != nil {
			return err
		}
		if refs := lore.References(line); len(refs) > 0 {
			var sb strings.Builder
			sb.WriteString("\n## References\n\n")
			for _, lr := range refs {
				if target, ok := r.Resolve(lr.Kind, lr.Name); ok {
					fmt.Fprintf(&sb, "- %s (%s)\n", target.Record.Name, target.Catalog.Name)
				} else {
					fmt.Fprintf(&sb, "- %s (unresolved)\n", lr.Name)
				}
			}
			md += sb.String()
		}
	}

	if o.raw {
		_, err = io.WriteString(out, md)
		return err
	}
	rendered, err := lore.Render(md, o.width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
