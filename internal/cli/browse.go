package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jcoliz/LogoSlideMaker-sub000/pkg/pipeline"
)

// browseCommand creates the browse command, an interactive view of the
// document's variants and the logos each one shows.
func (c *CLI) browseCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:               "browse [document]",
		Short:             "Browse variants and their logos interactively",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: documentArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := pipeline.Load(args[0])
			if err != nil {
				return err
			}
			listings, err := pipeline.GenerateListings(def, def.EffectiveVariants(), pipeline.Options{Language: language})
			if err != nil {
				return err
			}
			model := NewVariantBrowserModel(def.Title, summarizeVariants(listings, language))
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&language, "lang", "", "show every variant in this language")
	return cmd
}
