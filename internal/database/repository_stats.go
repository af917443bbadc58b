package database

import (
	"fmt"
	"slices"
)

// Statistics and counting methods

// CountRows returns the number of rows in one of the core tables
func (r *Repository) CountRows(table string) (int64, error) {
	if !slices.Contains(CoreTables, table) {
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	var count int64
	err := r.db.Table(table).Count(&count).Error
	return count, err
}

// GetStatistics returns row counts and the grade distribution
func (r *Repository) GetStatistics() (*Statistics, error) {
	stats := &Statistics{
		Tables:       make([]TableCount, 0, len(CoreTables)),
		GradeBuckets: []GradeBucket{},
	}

	for _, table := range CoreTables {
		count, err := r.CountRows(table)
		if err != nil {
			return nil, err
		}
		stats.Tables = append(stats.Tables, TableCount{Table: table, Rows: count})
	}

	err := r.db.Table(TableGrades).
		Select("note, COUNT(*) AS count").
		Group("note").
		Order("note").
		Scan(&stats.GradeBuckets).Error
	if err != nil {
		return nil, err
	}

	var avg *float64
	if err := r.db.Table(TableGrades).Select("AVG(note)").Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageGrade = *avg
	}

	return stats, nil
}
