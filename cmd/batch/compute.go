package main

import (
	"fmt"
	"time"

	"nutriai/internal/app"
	"nutriai/internal/core/recipe"

	"github.com/spf13/cobra"
)

func newComputeCmd(opts *rootOptions) *cobra.Command {
	var (
		mode    string
		limit   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "compute [id | from to]",
		Short: "Compute nutrient totals for extracted recipes",
		Long: "Compute nutrient totals for extracted recipes.\n\n" +
			"Modes: new (not yet computed), all (every extracted recipe, overwriting on success),\n" +
			"range (one id, or the inclusive range between the two smallest ids given).",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			if len(ids) > 0 && mode == string(recipe.ModeNew) && !cmd.Flags().Changed("mode") {
				mode = string(recipe.ModeRange)
			}
			sel := recipe.Selection{Mode: recipe.Mode(mode), Limit: limit, IDs: ids}
			if err := sel.Validate(); err != nil {
				return err
			}

			return opts.withApp(cmd.Context(), func(a *app.App) error {
				queueCfg := a.Config.Queue
				if workers > 0 {
					queueCfg.Workers = workers
				}
				summary, err := a.BatchRunner(queueCfg).Run(cmd.Context(), sel)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(),
					"run %s: %d recipes, %d succeeded, %d failed (%d estimation unavailable), %d invalid in %s\n",
					summary.RunID, summary.Total, summary.Succeeded, summary.Failed,
					summary.EstimationUnavailable, summary.Invalid, summary.Duration.Round(time.Millisecond),
				)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(recipe.ModeNew), "Selection mode: new, all or range")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of recipes (0 = no limit)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of workers (default from config)")
	return cmd
}
