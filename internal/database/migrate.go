package database

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the gorm connection
type DB struct {
	*gorm.DB
}

// newGormLogger writes slow queries and errors to stderr; stdout belongs to the stdio transport
func newGormLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Open opens a connection to the SQLite database with the given pool limits,
// creating the file when it does not exist
func Open(path string, maxOpenConns, maxIdleConns int) (*DB, error) {
	dsn, err := fileDSN(path, "rwc")
	if err != nil {
		return nil, err
	}
	return open(dsn, maxOpenConns, maxIdleConns)
}

// OpenReadOnly opens an existing database file with a single read-only connection
func OpenReadOnly(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	dsn, err := fileDSN(path, "ro")
	if err != nil {
		return nil, err
	}
	return open(dsn, 1, 1)
}

// fileDSN builds a sqlite URI for path. The path is made absolute and
// percent-escaped so '?', '#' and '%' in file names survive.
func fileDSN(path, mode string) (string, error) {
	if path == ":memory:" {
		return path, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// windows drive letter
		p = "/" + p
	}

	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=" + mode}
	return u.String(), nil
}

func open(dsn string, maxOpenConns, maxIdleConns int) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if maxOpenConns <= 0 {
		maxOpenConns = 1
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 1
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)

	return &DB{gormDB}, nil
}

// NewDBFromGorm wraps an already opened gorm connection
func NewDBFromGorm(gormDB *gorm.DB) *DB {
	return &DB{gormDB}
}

// Migrate creates all tables and indexes and records the schema version
func (db *DB) Migrate() error {
	err := db.Transaction(func(tx *gorm.DB) error {
		for _, stmt := range CreateTablesSQL {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create table: %w", err)
			}
		}

		for _, stmt := range CreateIndexesSQL {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}

		// PRAGMA does not take bound parameters
		if err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)).Error; err != nil {
			return fmt.Errorf("failed to update schema version: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

// Reset drops every core table and recreates the schema.
// Each generation run starts from an empty dataset.
func (db *DB) Reset() error {
	for _, stmt := range DropTablesSQL {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return db.Migrate()
}

// GetSchemaVersion returns the current schema version
func (db *DB) GetSchemaVersion() (int, error) {
	var version int
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return 0, err
	}
	return version, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
