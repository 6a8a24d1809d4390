package find

import (
	"errors"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/tome/internal/fzf"
	"github.com/Paintersrp/tome/internal/lore"
	"github.com/Paintersrp/tome/internal/state"
)

func NewCmdFind(s *state.State) *cobra.Command {
	var (
		query    string
		copyName bool
	)

	cmd := &cobra.Command{
		Use:     "find [catalog]",
		Aliases: []string{"f"},
		Short:   "Fuzzy find a record by name",
		Long: heredoc.Doc(`
			Pick a record with a fuzzy finder showing a rendered preview, then
			print it.
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
			s.Quiet()
			c, err := s.Catalog(cmd.Context(), name)
			if err != nil {
				return err
			}

			finder := fzf.NewFuzzyFinder(c, nil, fmt.Sprintf("%s: %d records", c.Name, c.Len()))
			rec, err := finder.RunWithQuery(query)
			if errors.Is(err, fzf.ErrNoSelection) {
				fmt.Fprintln(cmd.ErrOrStderr(), "No record selected")
				return nil
			}
			if err != nil {
				return err
			}

			if copyName {
				if err := clipboard.WriteAll(rec.Name); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}

			md, err := lore.Preview(c, rec, "")
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), md, s.Config.Preview.Width)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Initial query")
	cmd.Flags().BoolVarP(&copyName, "copy", "y", false, "Copy the chosen name to the clipboard")

	return cmd
}

func write(w io.Writer, md string, width int) error {
	out, err := lore.Render(md, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
