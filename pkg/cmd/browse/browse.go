package browse

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/tome/internal/state"
	"github.com/Paintersrp/tome/internal/tui/browser"
)

func NewCmdBrowse(s *state.State) *cobra.Command {
	var pick bool

	cmd := &cobra.Command{
		Use:     "browse [catalog]",
		Aliases: []string{"b"},
		Short:   "Browse a catalog interactively",
		Long: heredoc.Doc(`
			Open the faceted browser. Toggle facets in the tree on the left,
			narrow by name or description text, and press enter to search.
			Keep list refines the previous results instead of starting over.
		`),
		Example: heredoc.Doc(`
			tome browse
			tome browse powers
			tome browse --pick
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			if arg == "" && pick {
				choice, err := pickCatalog(s)
				if err != nil {
					return err
				}
				arg = choice
			}

			name, err := s.CatalogName(arg)
			if err != nil {
				return err
			}

			s.Quiet()
			return browser.Run(cmd.Context(), s, name)
		},
	}

	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "Choose the catalog from a list")

	return cmd
}

func pickCatalog(s *state.State) (string, error) {
	switch len(s.Config.Order) {
	case 0:
		return "", state.ErrNoCatalog
	case 1:
		return s.Config.Order[0], nil
	}

	sp := selection.New("Select a catalog", s.Config.Order)
	sp.PageSize = 10
	choice, err := sp.RunPrompt()
	if err != nil {
		return "", fmt.Errorf("select catalog: %w", err)
	}
	return choice, nil
}
