package main

import (
	"fmt"

	"nutriai/internal/app"
	"nutriai/internal/core/shopping"

	"github.com/spf13/cobra"
)

func newShoppingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shopping <id> [id...]",
		Short: "Print a consolidated shopping list for stored recipes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				items, err := a.Recipes.ShoppingList(cmd.Context(), ids)
				if err != nil {
					return err
				}
				for _, line := range shopping.Lines(items) {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			})
		},
	}
}
