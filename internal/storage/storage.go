// Package storage selects the expense.Repository for the configured backend.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/spendlog/internal/config"
	"github.com/MrJamesThe3rd/spendlog/internal/database"
	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/csvfile"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/jsonl"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/sqlstore"
)

// Open returns the repository for cfg and a func that releases it.
func Open(ctx context.Context, cfg *config.Config) (expense.Repository, func() error, error) {
	noop := func() error { return nil }

	slog.Debug("opening storage", "backend", cfg.Storage.Backend, "data", cfg.Storage.Data)

	switch cfg.Storage.Backend {
	case config.BackendCSV:
		return csvfile.New(cfg.Storage.Data), noop, nil
	case config.BackendJSONL:
		return jsonl.New(cfg.Storage.Data), noop, nil
	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.Storage.Data)
		if err != nil {
			return nil, nil, err
		}

		repo, err := sqlstore.New(db, database.SQLite)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		return repo, db.Close, nil
	case config.BackendPostgres:
		db, err := database.OpenPostgres(ctx, cfg.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}

		repo, err := sqlstore.New(db, database.Postgres)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		return repo, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", cfg.Storage.Backend)
	}
}
