package main

import (
	"fmt"
	"os"

	"nutriai/internal/infrastructure/config"
	"nutriai/internal/pkg/common"
)

func main() {
	defer common.Sync()
	if err := newRootCmd(loadConfig).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if err := common.InitLogger(cfg.LogLevel, cfg.LogDir); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}
