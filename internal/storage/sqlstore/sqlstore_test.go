package sqlstore_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendlog/internal/database"
	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/sqlstore"
)

func sqliteStore(t *testing.T) (*sqlstore.Store, *sql.DB) {
	t.Helper()

	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "spendlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := sqlstore.New(db, database.SQLite)
	require.NoError(t, err)

	return s, db
}

func postgresStore(t *testing.T) *sqlstore.Store {
	t.Helper()

	dsn := os.Getenv("SPENDLOG_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SPENDLOG_TEST_POSTGRES_DSN not set")
	}

	db, err := database.OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := sqlstore.New(db, database.Postgres)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), expense.State{}))

	return s
}

func sampleState() expense.State {
	return expense.State{
		Rows: []expense.Row{
			{ID: "1", Date: "2024-01-05", Category: "food", Amount: "10.00"},
			{ID: "3", Date: "2024-02-01", Category: "travel", Amount: "20.00", Note: "train"},
		},
		NextID: 4,
	}
}

func testSaveLoad(t *testing.T, s *sqlstore.Store) {
	ctx := context.Background()

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)

	require.NoError(t, s.Save(ctx, sampleState()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)

	smaller := expense.State{Rows: sampleState().Rows[1:], NextID: 4}
	require.NoError(t, s.Save(ctx, smaller))

	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller, got)
}

func TestStore_SQLite(t *testing.T) {
	s, _ := sqliteStore(t)
	testSaveLoad(t, s)
}

func TestStore_Postgres(t *testing.T) {
	testSaveLoad(t, postgresStore(t))
}

func TestStore_SaveIsAtomic(t *testing.T) {
	ctx := context.Background()
	s, _ := sqliteStore(t)

	require.NoError(t, s.Save(ctx, sampleState()))

	bad := expense.State{
		Rows: []expense.Row{
			{ID: "1", Date: "2024-01-05", Category: "food", Amount: "10.00"},
			{ID: "1", Date: "2024-01-06", Category: "food", Amount: "1.00"},
		},
		NextID: 9,
	}
	require.Error(t, s.Save(ctx, bad))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}

func TestStore_WithService(t *testing.T) {
	ctx := context.Background()
	s, _ := sqliteStore(t)

	svc := expense.NewService(s)
	require.NoError(t, svc.Open(ctx))

	for _, p := range []expense.CreateParams{
		{Amount: "10.00", Category: "Food", Date: "2024-01-05"},
		{Amount: "5.50", Category: "Food", Date: "2024-01-20"},
		{Amount: "20.00", Category: "Travel", Date: "2024-02-01"},
	} {
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Delete(ctx, 2))

	reopened := expense.NewService(s)
	require.NoError(t, reopened.Open(ctx))

	got := reopened.Snapshot()
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	created, err := reopened.Create(ctx, expense.CreateParams{Amount: "1", Category: "misc", Date: "2024-03-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := sqlstore.New(nil, "oracle")
	assert.Error(t, err)
}
