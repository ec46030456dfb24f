package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nutriai/internal/app"
	"nutriai/internal/infrastructure/config"

	"github.com/spf13/cobra"
)

type configLoader func() (*config.Config, error)

type rootOptions struct {
	load  configLoader
	dsn   string
	cache string
}

func newRootCmd(load configLoader) *cobra.Command {
	opts := &rootOptions{load: load}
	root := &cobra.Command{
		Use:           "nutriai-batch",
		Short:         "Compute recipe nutrients and shopping lists from the recipe database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "Database DSN (overrides DATABASE_URL)")
	root.PersistentFlags().StringVar(&opts.cache, "cache", "", "Cache driver: memory, redis or sql")

	root.AddCommand(
		newComputeCmd(opts),
		newShoppingCmd(opts),
		newImportCmd(opts),
		newResolveCmd(opts),
	)
	return root
}

func (o *rootOptions) config() (*config.Config, error) {
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	if o.dsn != "" {
		cfg.Database.DSN = o.dsn
	}
	if o.cache != "" {
		cfg.Cache.Driver = o.cache
	}
	return cfg, nil
}

func (o *rootOptions) withApp(ctx context.Context, run func(*app.App) error) error {
	cfg, err := o.config()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return run(a)
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid recipe id %q", arg)
		}
		if v <= 0 {
			return nil, fmt.Errorf("recipe id must be > 0")
		}
		ids = append(ids, v)
	}
	return ids, nil
}
