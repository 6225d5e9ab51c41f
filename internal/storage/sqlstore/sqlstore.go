// Package sqlstore keeps expenses in SQLite or PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/MrJamesThe3rd/spendlog/internal/database"
	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

const seqKey = "next_id"

type queries struct {
	selectAll string
	selectSeq string
	deleteAll string
	insert    string
	upsertSeq string
}

var dialects = map[database.Dialect]queries{
	database.SQLite: {
		selectAll: `SELECT id, date, category, amount_cents, note FROM expenses ORDER BY id`,
		selectSeq: `SELECT value FROM meta WHERE key = ?`,
		deleteAll: `DELETE FROM expenses`,
		insert:    `INSERT INTO expenses (id, date, category, amount_cents, note) VALUES (?, ?, ?, ?, ?)`,
		upsertSeq: `INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
	},
	database.Postgres: {
		selectAll: `SELECT id, to_char(date, 'YYYY-MM-DD'), category, amount_cents, note FROM expenses ORDER BY id`,
		selectSeq: `SELECT value FROM meta WHERE key = $1`,
		deleteAll: `DELETE FROM expenses`,
		insert:    `INSERT INTO expenses (id, date, category, amount_cents, note) VALUES ($1, $2::date, $3, $4, $5)`,
		upsertSeq: `INSERT INTO meta (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
	},
}

// Store is an expense.Repository over a migrated database handle.
type Store struct {
	db *sql.DB
	q  queries
}

func New(db *sql.DB, d database.Dialect) (*Store, error) {
	q, ok := dialects[d]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", d)
	}

	return &Store{db: db, q: q}, nil
}

func (s *Store) Load(ctx context.Context) (expense.State, error) {
	var state expense.State

	err := s.db.QueryRowContext(ctx, s.q.selectSeq, seqKey).Scan(&state.NextID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return expense.State{}, fmt.Errorf("reading sequence: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.q.selectAll)
	if err != nil {
		return expense.State{}, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    int64
			cents int64
			r     expense.Row
		)

		if err := rows.Scan(&id, &r.Date, &r.Category, &cents, &r.Note); err != nil {
			return expense.State{}, fmt.Errorf("scanning expense: %w", err)
		}

		r.ID = strconv.FormatInt(id, 10)
		r.Amount = expense.FormatAmount(cents)
		state.Rows = append(state.Rows, r)
	}

	if err := rows.Err(); err != nil {
		return expense.State{}, fmt.Errorf("iterating expenses: %w", err)
	}

	return state, nil
}

// Save replaces every stored expense and the sequence in one transaction.
func (s *Store) Save(ctx context.Context, state expense.State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.q.deleteAll); err != nil {
		return fmt.Errorf("clearing expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, s.q.insert)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range state.Rows {
		id, err := strconv.ParseInt(r.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", r.ID, err)
		}

		cents, err := expense.ParseAmount(r.Amount)
		if err != nil {
			return fmt.Errorf("expense %d: %w", id, err)
		}

		if _, err := stmt.ExecContext(ctx, id, r.Date, r.Category, cents, r.Note); err != nil {
			return fmt.Errorf("inserting expense %d: %w", id, err)
		}
	}

	if _, err := tx.ExecContext(ctx, s.q.upsertSeq, seqKey, state.NextID); err != nil {
		return fmt.Errorf("writing sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	return nil
}
