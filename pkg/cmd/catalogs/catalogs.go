package catalogs

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/tome/internal/config"
	"github.com/Paintersrp/tome/internal/schema"
	"github.com/Paintersrp/tome/internal/state"
)

func NewCmdCatalogs(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "catalogs",
		Aliases: []string{"cat"},
		Short:   "List and manage configured catalogs",
		Long: heredoc.Docf(`
			List the configured catalogs. The default catalog is marked
			with *.

			Builtin schema kinds: %s.
		`, strings.Join(schema.Kinds(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(s.Config.Order) == 0 {
				cmd.Println("No catalogs configured. Add one with: tome catalogs add <name> <source>")
				return nil
			}
			for _, name := range s.Config.Order {
				cc := s.Config.Catalogs[name]
				marker := " "
				if name == s.Config.DefaultCatalog {
					marker = "*"
				}
				line := fmt.Sprintf("%s %s\t%s\t%s", marker, name, cc.Schema, cc.Source)
				if cc.Watch {
					line += "\t(watched)"
				}
				cmd.Println(line)
			}
			return nil
		},
	}

	cmd.AddCommand(
		newCmdAdd(s),
		newCmdRemove(s),
		newCmdDefault(s),
	)

	return cmd
}

func newCmdAdd(s *state.State) *cobra.Command {
	var cc config.CatalogConfig

	cmd := &cobra.Command{
		Use:   "add <name> <source>",
		Short: "Add a catalog",
		Long: heredoc.Doc(`
			Add a catalog. The source is a file path, file:// URL or
			s3://bucket/key URI. The schema defaults to the catalog name.
		`),
		Example: heredoc.Doc(`
			tome catalogs add spells ~/tome/spells.txt --watch
			tome catalogs add homebrew s3://my-bucket/homebrew.txt --schema spells
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc.Source = args[1]
			if err := s.Config.AddCatalog(args[0], cc); err != nil {
				return err
			}
			if _, err := s.Schema(args[0]); err != nil {
				cmd.PrintErrf("Warning: schema %q does not load: %v\n", s.Config.Catalogs[args[0]].Schema, err)
			}
			cmd.Printf("Added catalog %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&cc.Schema, "schema", "", "Builtin schema kind or schema file")
	cmd.Flags().BoolVar(&cc.Watch, "watch", false, "Reload the browser when the file changes")

	return cmd
}

func newCmdRemove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a catalog from the configuration",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.RemoveCatalog(args[0]); err != nil {
				return err
			}
			cmd.Printf("Removed catalog %s\n", args[0])
			return nil
		},
	}
}

func newCmdDefault(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "default <name>",
		Short: "Set the catalog used when none is named",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.SetDefaultCatalog(args[0]); err != nil {
				return err
			}
			cmd.Printf("Default catalog is now %s\n", args[0])
			return nil
		},
	}
}
