package main

import (
	"fmt"
	"strings"

	"nutriai/internal/app"

	"github.com/spf13/cobra"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <ingredient name>",
		Short: "Show how an ingredient name resolves to a nutrient profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return opts.withApp(cmd.Context(), func(a *app.App) error {
				res := a.Resolver.Resolve(cmd.Context(), name)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Name: %s\nOutcome: %s\nTier: %s\n", res.Name, res.Outcome, res.Tier)
				if res.Match != "" {
					fmt.Fprintf(out, "Match: %s (%.2f)\n", res.Match, res.Score)
				}
				v := res.Vector
				fmt.Fprintf(out, "Per 100 g: %.1f kcal, P %.1f g, F %.1f g, C %.1f g, fiber %.1f g\n",
					v.Calories, v.Protein, v.Fat, v.Carbohydrates, v.Fiber)
				return nil
			})
		},
	}
}
