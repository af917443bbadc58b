package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/export"
	"github.com/palemoky/schooldata/internal/logger"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tables to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.OpenReadOnly(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			summary, err := export.WriteFile(cmd.Context(), db, database.CoreTables, out)
			if err != nil {
				return err
			}

			for _, table := range database.CoreTables {
				logger.Info("Sheet written", zap.String("sheet", table), zap.Int("rows", summary[table]))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tables to %s\n", len(summary), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "schule.xlsx", "Output workbook path")
	return cmd
}
