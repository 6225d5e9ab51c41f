// Package database opens the SQL backends and keeps their schema current.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// driverName maps a dialect to its database/sql driver.
func (d Dialect) driverName() string {
	if d == Postgres {
		return "pgx"
	}

	return "sqlite"
}

// OpenSQLite opens the database file at path, creating it and its directory
// when missing, and migrates it.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := open(ctx, SQLite, path)
	if err != nil {
		return nil, err
	}

	// A single connection serialises writers on the file.
	db.SetMaxOpenConns(1)

	if err := Migrate(SQLite, path); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// OpenPostgres connects with a pgx connection string and migrates the schema.
func OpenPostgres(ctx context.Context, connStr string) (*sql.DB, error) {
	db, err := open(ctx, Postgres, connStr)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := Migrate(Postgres, connStr); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}
