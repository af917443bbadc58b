// Package export writes the school tables to an Excel workbook, one sheet per table.
package export

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/logger"
)

// Source yields table rows. *database.DB satisfies it.
type Source interface {
	QueryRows(ctx context.Context, query string, args ...any) ([]database.Row, error)
}

// Summary reports the number of data rows written per sheet
type Summary map[string]int

// Write builds the workbook for tables and writes it to w.
// Each sheet is named after its table and starts with a bold header row.
func Write(ctx context.Context, src Source, tables []string, w io.Writer) (Summary, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close workbook", zap.Error(err))
		}
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	summary := make(Summary, len(tables))
	for i, table := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), table); err != nil {
				return nil, fmt.Errorf("failed to name sheet %s: %w", table, err)
			}
		} else if _, err := f.NewSheet(table); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", table, err)
		}

		n, err := writeSheet(ctx, f, src, table, header)
		if err != nil {
			return nil, err
		}
		summary[table] = n
	}

	if err := f.Write(w); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return summary, nil
}

// WriteFile exports tables to an .xlsx file at path
func WriteFile(ctx context.Context, src Source, tables []string, path string) (Summary, error) {
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	summary, err := Write(ctx, src, tables, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func writeSheet(ctx context.Context, f *excelize.File, src Source, table string, headerStyle int) (int, error) {
	columns, err := src.QueryRows(ctx, `SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return 0, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("table %s does not exist", table)
	}

	// table names come from the schema constants, never from user input
	rows, err := src.QueryRows(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY id", table))
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", table, err)
	}

	sw, err := f.NewStreamWriter(table)
	if err != nil {
		return 0, fmt.Errorf("failed to open sheet %s: %w", table, err)
	}

	head := make([]any, len(columns))
	for i, c := range columns {
		name, _ := c.Get("name")
		head[i] = excelize.Cell{StyleID: headerStyle, Value: name}
	}
	if err := sw.SetRow("A1", head); err != nil {
		return 0, fmt.Errorf("failed to write header of %s: %w", table, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := sw.SetRow(cell, row.Values); err != nil {
			return 0, fmt.Errorf("failed to write row %d of %s: %w", i+1, table, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to flush sheet %s: %w", table, err)
	}
	return len(rows), nil
}
