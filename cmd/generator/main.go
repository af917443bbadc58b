package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/config"
	"github.com/palemoky/schooldata/internal/logger"
)

var (
	configPath string
	dbPath     string
)

func main() {
	// Initialize logger (always debug mode for the generator)
	logger.Init(true)
	defer logger.Sync()

	// Ctrl-C stops a generation run between stages
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error("Command execution failed", zap.Error(err))
		stop()
		logger.Sync()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "generator",
		Short:         "School data generator",
		Long:          "Generate a synthetic German school database (students, teachers, courses, grades) and inspect or export it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (yaml)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite database path (overrides database.path)")

	rootCmd.AddCommand(newGenerateCmd(), newStatsCmd(), newExportCmd(), newMCPConfigCmd())
	return rootCmd
}

// loadConfig reads the configuration and applies the --db flag
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}
