package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/tome/internal/constants"
	"github.com/Paintersrp/tome/internal/state"
	"github.com/Paintersrp/tome/pkg/cmd/browse"
	"github.com/Paintersrp/tome/pkg/cmd/catalogs"
	"github.com/Paintersrp/tome/pkg/cmd/facets"
	"github.com/Paintersrp/tome/pkg/cmd/find"
	"github.com/Paintersrp/tome/pkg/cmd/search"
	"github.com/Paintersrp/tome/pkg/cmd/show"
)

var catalogName string

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	browseCmd := browse.NewCmdBrowse(s)

	cmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Search rules catalogs by facet, name and description.",
		Version: constants.Version,
		Long: heredoc.Doc(`
			Browse and query catalogs of game rules records. Each record carries
			a set of facets; the facet tree lets you require, exclude or accept
			alternatives before narrowing by name or description text.

			  tome search -r Fire -x Touch
			  tome show "Magic Missile"
		`),
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(1),
		// Browse by default.
		RunE: browseCmd.RunE,
	}

	cmd.PersistentFlags().
		StringVarP(
			&catalogName,
			"catalog",
			"c",
			"",
			"Catalog to use for this command.",
		)
	if err := viper.BindPFlag("catalog", cmd.PersistentFlags().Lookup("catalog")); err != nil {
		return nil, err
	}

	cmd.AddCommand(
		browseCmd,
		search.NewCmdSearch(s),
		show.NewCmdShow(s),
		find.NewCmdFind(s),
		facets.NewCmdFacets(s),
		catalogs.NewCmdCatalogs(s),
	)

	return cmd, nil
}
