package main

import (
	"fmt"
	"os"

	"nutriai/internal/app"
	"nutriai/internal/core/recipe"
	"nutriai/internal/pkg/common"

	"github.com/spf13/cobra"
)

type importedRecipe struct {
	Title       string                    `json:"title"`
	URL         string                    `json:"url"`
	Ingredients []common.IngredientRecord `json:"ingredients"`
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import extracted recipes from a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var recipes []importedRecipe
			if err := common.DecodeJSON(f, &recipes); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				for _, r := range recipes {
					if r.Title == "" {
						return fmt.Errorf("recipe without title in %s", args[0])
					}
					id, err := a.Recipes.Store().SaveRecipe(cmd.Context(), recipe.NewRecipe{
						Title:       r.Title,
						URL:         r.URL,
						Ingredients: r.Ingredients,
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Imported recipe %d: %s\n", id, r.Title)
				}
				return nil
			})
		},
	}
}
