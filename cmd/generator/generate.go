package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/config"
	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/generator"
	"github.com/palemoky/schooldata/internal/logger"
)

type generateFlags struct {
	seed             uint64
	studentsPerClass int
	maxPerSubject    int
	progress         bool
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Recreate the database and fill it with synthetic data",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyGenerateFlags(cmd, &cfg.Generator, flags)
			if err := cfg.Generator.Validate(); err != nil {
				return err
			}
			return runGenerate(cmd, cfg, flags.progress)
		},
	}

	cmd.Flags().Uint64VarP(&flags.seed, "seed", "s", 0, "Random seed (0 = derive from the clock)")
	cmd.Flags().IntVarP(&flags.studentsPerClass, "students-per-class", "n", 0, "Students per class (overrides generator.students_per_class)")
	cmd.Flags().IntVar(&flags.maxPerSubject, "cap", 0, "Max classes per teacher per subject (overrides generator.max_classes_per_teacher_per_subject)")
	cmd.Flags().BoolVarP(&flags.progress, "progress", "p", true, "Show progress bars")

	return cmd
}

// applyGenerateFlags lets explicitly set flags win over the configuration
func applyGenerateFlags(cmd *cobra.Command, gc *config.GeneratorConfig, flags generateFlags) {
	if cmd.Flags().Changed("seed") {
		gc.Seed = flags.seed
	}
	if cmd.Flags().Changed("students-per-class") {
		gc.StudentsPerClass = flags.studentsPerClass
	}
	if cmd.Flags().Changed("cap") {
		gc.MaxClassesPerSub = flags.maxPerSubject
	}
}

func generatorOptions(gc config.GeneratorConfig, progress bool) generator.Options {
	return generator.Options{
		Classes:          gc.Classes,
		StudentsPerClass: gc.StudentsPerClass,
		MaxPerSubject:    gc.MaxClassesPerSub,
		Seed:             gc.Seed,
		BatchSize:        gc.BatchSize,
		TransactionSize:  gc.TransactionSize,
		Progress:         progress,
	}
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, progress bool) error {
	logger.Info("Generating school database",
		zap.String("database", cfg.Database.Path),
		zap.Strings("classes", cfg.Generator.Classes),
		zap.Int("students_per_class", cfg.Generator.StudentsPerClass),
		zap.Int("cap", cfg.Generator.MaxClassesPerSub),
	)

	// Open database with single connection (safe for data generation)
	db, err := database.Open(cfg.Database.Path, 1, 1)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := database.NewRepository(db)
	gen := generator.New(db, repo, generatorOptions(cfg.Generator, progress))

	report, err := gen.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to generate data: %w", err)
	}

	// Optimize database
	if err := db.Exec("VACUUM").Error; err != nil {
		logger.Warn("Failed to vacuum database", zap.Error(err))
	}
	if err := db.Exec("ANALYZE").Error; err != nil {
		logger.Warn("Failed to analyze database", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nRun %s (seed %d) finished in %s\n", report.RunID, report.Seed, report.Duration.Round(time.Millisecond))

	stats, err := repo.GetStatistics()
	if err != nil {
		logger.Warn("Failed to read statistics", zap.Error(err))
		return nil
	}
	return renderStatistics(out, stats)
}
