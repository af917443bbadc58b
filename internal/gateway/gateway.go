// Package gateway exposes the school database to tool-calling clients as three
// read-only operations. Every result and every failure is plain text: JSON rows
// on success, "Error: ..." otherwise.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/logger"
)

// ErrReadOnly rejects anything that does not start with SELECT
var ErrReadOnly = errors.New("only SELECT queries are allowed")

// QueryError wraps a failure reported by the database while executing a query
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return e.Err.Error() }
func (e *QueryError) Unwrap() error { return e.Err }

// Catalog is the database access the gateway needs. *database.DB satisfies it.
type Catalog interface {
	QueryRows(ctx context.Context, query string, args ...any) ([]database.Row, error)
	ListTables(ctx context.Context) ([]database.Row, error)
	TableInfo(ctx context.Context, table string) ([]database.Row, error)
}

// Gateway serves read-only queries, one at a time
type Gateway struct {
	db  Catalog
	mu  sync.Mutex
	log *zap.Logger
}

// New creates a gateway over db
func New(db Catalog) *Gateway {
	return &Gateway{
		db:  db,
		log: logger.Named("gateway"),
	}
}

// IsSelect reports whether sql passes the read-only guard: after trimming,
// the upper-cased text must start with SELECT.
func IsSelect(sql string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(sql)), "SELECT")
}

// Query runs a SELECT statement and returns its rows.
// Non-SELECT input returns ErrReadOnly without touching the database.
func (g *Gateway) Query(ctx context.Context, sql string) (rows []database.Row, err error) {
	defer observe(ToolQueryDatabase, time.Now(), &err)

	if !IsSelect(sql) {
		g.log.Warn("Rejected non-SELECT query", zap.String("query", truncate(sql, 200)))
		return nil, ErrReadOnly
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err = g.db.QueryRows(ctx, sql)
	if err != nil {
		g.log.Debug("Query failed", zap.String("query", truncate(sql, 200)), zap.Error(err))
		return nil, &QueryError{Err: err}
	}
	return rows, nil
}

// Tables returns one {name} row per user table
func (g *Gateway) Tables(ctx context.Context) (rows []database.Row, err error) {
	defer observe(ToolListTables, time.Now(), &err)

	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err = g.db.ListTables(ctx)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return rows, nil
}

// Columns returns the column descriptors of table. The name is bound as a
// parameter, never spliced into SQL. An unknown table yields no rows.
func (g *Gateway) Columns(ctx context.Context, table string) (rows []database.Row, err error) {
	defer observe(ToolDescribeTable, time.Now(), &err)

	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err = g.db.TableInfo(ctx, table)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	return rows, nil
}

// QueryDatabase is the text form of Query
func (g *Gateway) QueryDatabase(ctx context.Context, sql string) string {
	return render(g.Query(ctx, sql))
}

// ListTables is the text form of Tables
func (g *Gateway) ListTables(ctx context.Context) string {
	return render(g.Tables(ctx))
}

// DescribeTable is the text form of Columns
func (g *Gateway) DescribeTable(ctx context.Context, table string) string {
	return render(g.Columns(ctx, table))
}

func render(rows []database.Row, err error) string {
	text, _, _ := renderResult(rows, err)
	return text
}

// ErrorText is the textual failure returned to tool clients
func ErrorText(err error) string {
	return "Error: " + err.Error()
}

// FormatRows encodes rows as a 2-space indented JSON array, keeping column
// order and non-ASCII text as is. No rows encode as [].
func FormatRows(rows []database.Row) (string, error) {
	if rows == nil {
		rows = []database.Row{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
