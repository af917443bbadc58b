package database

import (
	"fmt"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/palemoky/schooldata/internal/logger"
)

// Write operations for data generation

const (
	defaultTransactionSize = 5000
	defaultBatchSize       = 500
)

// InsertStudents inserts students in batched transactions, filling in their IDs
func (r *Repository) InsertStudents(students []*Student, transactionSize, batchSize int, progress *mpb.Progress) error {
	return batchInsertWithTransaction(r.db, "Students", students, transactionSize, batchSize, progress)
}

// InsertTeachers inserts the teacher list in one statement, preserving declaration order
func (r *Repository) InsertTeachers(teachers []*Teacher) error {
	if len(teachers) == 0 {
		return nil
	}
	return r.db.Create(teachers).Error
}

// InsertCourses inserts courses in batches within a single transaction
func (r *Repository) InsertCourses(courses []*Course, batchSize int) error {
	if len(courses) == 0 {
		return nil
	}

	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(courses, batchSize).Error
	})
}

// InsertGrades inserts grades in large transactions for maximum performance
func (r *Repository) InsertGrades(grades []*Grade, transactionSize, batchSize int, progress *mpb.Progress) error {
	return batchInsertWithTransaction(r.db, "Grades", grades, transactionSize, batchSize, progress)
}

// batchInsertWithTransaction inserts rows in large transactions.
// This reduces fsync overhead by grouping multiple batches into one transaction.
// transactionSize: number of rows per transaction (e.g., 5000)
// batchSize: number of rows per insert statement (e.g., 500)
// progress: optional progress container for a per-row bar
func batchInsertWithTransaction[T any](db *DB, label string, rows []*T, transactionSize, batchSize int, progress *mpb.Progress) error {
	if len(rows) == 0 {
		return nil
	}

	if transactionSize <= 0 {
		transactionSize = defaultTransactionSize
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	totalTransactions := (len(rows) + transactionSize - 1) / transactionSize

	var bar *mpb.Bar
	if progress != nil {
		name := "Inserting " + label + ": "
		bar = progress.AddBar(int64(len(rows)),
			mpb.PrependDecorators(
				decor.Name(name, decor.WC{W: len(name), C: decor.DindentRight}),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WC{W: 5}),
				decor.Name(" | "),
				decor.AverageETA(decor.ET_STYLE_GO, decor.WC{W: 6}),
			),
		)
	}

	logger.Debug("Starting batch insertion",
		zap.String("rows", label),
		zap.Int("count", len(rows)),
		zap.Int("transactions", totalTransactions),
		zap.Int("batch_size", batchSize),
	)

	for i := 0; i < len(rows); i += transactionSize {
		end := min(i+transactionSize, len(rows))
		chunk := rows[i:end]

		err := db.Transaction(func(tx *gorm.DB) error {
			for j := 0; j < len(chunk); j += batchSize {
				batchEnd := min(j+batchSize, len(chunk))
				batch := chunk[j:batchEnd]

				if err := tx.Create(batch).Error; err != nil {
					return err
				}

				if bar != nil {
					bar.IncrBy(len(batch))
				}
			}
			return nil
		})
		if err != nil {
			if bar != nil {
				bar.Abort(false)
			}
			txNum := i/transactionSize + 1
			return fmt.Errorf("failed to insert transaction %d/%d (%s %d-%d): %w",
				txNum, totalTransactions, label, i, end, err)
		}
	}

	return nil
}
