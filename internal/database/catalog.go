package database

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Catalog and ad-hoc query access used by the query gateway

const (
	listTablesSQL = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`
	tableInfoSQL  = `SELECT * FROM pragma_table_info(?)`
)

// Row is one result row; columns keep the order of the select list
type Row struct {
	Columns []string
	Values  []any
}

// Get returns the value of a column by name
func (r Row) Get(column string) (any, bool) {
	for i, c := range r.Columns {
		if c == column {
			return r.Values[i], true
		}
	}
	return nil, false
}

// MarshalJSON encodes the row as an object in column order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, col); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, r.Values[i]); err != nil {
			return nil, fmt.Errorf("column %s: %w", col, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	// REAL columns keep their decimal point: a 2.0 grade reads 2.0, not 2
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1e16 {
		buf.WriteString(strconv.FormatFloat(f, 'f', 1, 64))
		return nil
	}

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always appends a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// QueryRows runs a single statement inside a transaction that is always
// rolled back, so nothing the statement does can persist. Text holding a
// second statement is rejected before it reaches the driver, which would
// otherwise execute every statement and return the rows of the last.
func (db *DB) QueryRows(ctx context.Context, query string, args ...any) ([]Row, error) {
	query, err := firstStatement(query)
	if err != nil {
		return nil, err
	}

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer tx.Rollback()

	rows, err := tx.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRows(rows)
}

// ListTables returns the user tables, excluding sqlite's internal catalog tables
func (db *DB) ListTables(ctx context.Context) ([]Row, error) {
	return db.QueryRows(ctx, listTablesSQL)
}

// TableInfo returns the column descriptors of a table.
// An unknown table yields no rows, not an error.
func (db *DB) TableInfo(ctx context.Context, table string) ([]Row, error) {
	return db.QueryRows(ctx, tableInfoSQL, table)
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		for i, v := range values {
			values[i] = normalizeValue(v)
		}

		result = append(result, Row{Columns: columns, Values: values})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// normalizeValue makes driver values JSON friendly. TEXT and BLOB come back as
// bytes; columns declared DATE or DATETIME come back as time.Time.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		if t.Equal(t.Truncate(24*time.Hour)) && t.Location() == time.UTC {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	default:
		return v
	}
}
