package jsonl_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/fsutil"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/jsonl"
)

func TestStore_LoadMissingFile(t *testing.T) {
	s := jsonl.New(filepath.Join(t.TempDir(), "expenses.jsonl"))

	state, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Rows)
	assert.Zero(t, state.NextID)
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "expenses.jsonl")
	s := jsonl.New(path)

	want := expense.State{
		Rows: []expense.Row{
			{ID: "1", Date: "2024-01-05", Category: "food", Amount: "10.00"},
			{ID: "3", Date: "2024-02-01", Category: "travel", Amount: "20.00", Note: "train"},
		},
		NextID: 4,
	}

	require.NoError(t, s.Save(ctx, want))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		`{"id":1,"date":"2024-01-05","category":"food","amount":10.00}`+"\n"+
			`{"id":3,"date":"2024-02-01","category":"travel","amount":20.00,"note":"train"}`+"\n",
		string(content))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_LoadLegacyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expense.txt")
	legacy := `{"category": "Food", "item": "bread", "amount": 2.5, "date": "2024-03-01"}

{"category": "Travel", "item": "bus", "amount": "1.8", "date": "2024-03-02"}
`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	state, err := jsonl.New(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []expense.Row{
		{ID: "1", Date: "2024-03-01", Category: "Food", Amount: "2.5", Note: "bread"},
		{ID: "2", Date: "2024-03-02", Category: "Travel", Amount: "1.8", Note: "bus"},
	}, state.Rows)

	store := expense.NewStore()
	require.NoError(t, store.Load(state))
	assert.Equal(t, int64(3), store.NextID())
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := jsonl.Decode(strings.NewReader(`{"id":1,"date":"2024-01-01","category":"a","amount":1}` + "\n{oops\n"))
	require.ErrorIs(t, err, jsonl.ErrMalformed)
	assert.NotErrorIs(t, err, expense.ErrCorruptData)
	assert.ErrorContains(t, err, "line 2")
}

func TestDecode_KeepsPresentIDs(t *testing.T) {
	rows, err := jsonl.Decode(strings.NewReader(
		`{"id":0,"date":"2024-01-01","category":"a","amount":1}` + "\n" +
			`{"id":-3,"date":"2024-01-01","category":"a","amount":1}` + "\n" +
			`{"date":"2024-01-01","category":"a","amount":1}` + "\n"))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "0", rows[0].ID)
	assert.Equal(t, "-3", rows[1].ID)
	assert.Empty(t, rows[2].ID)
}

func TestStore_LoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "ZeroID",
			content: `{"id":5,"date":"2024-01-01","category":"a","amount":1}
{"id":0,"date":"2024-01-02","category":"b","amount":2}
`,
		},
		{
			name:    "NegativeID",
			content: `{"id":-1,"date":"2024-01-01","category":"a","amount":1}` + "\n",
		},
		{
			name:    "MalformedLine",
			content: `{"id":1,"date":"2024-01-01"` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "expenses.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			state, err := jsonl.New(path).Load(context.Background())
			if err == nil {
				err = expense.NewStore().Load(state)
			}

			require.ErrorIs(t, err, expense.ErrCorruptData)
		})
	}
}

func TestStore_SaveWritesSequenceFirst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.jsonl")

	// A non-empty directory at the data path makes the final rename fail.
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o755))

	err := jsonl.New(path).Save(context.Background(), expense.State{
		Rows:   []expense.Row{{ID: "1", Date: "2024-01-01", Category: "a", Amount: "1.00"}},
		NextID: 9,
	})
	require.Error(t, err)

	seq, err := fsutil.ReadSeq(path)
	require.NoError(t, err)
	assert.Equal(t, int64(9), seq)
}

func TestDecode_MixedIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.jsonl")
	content := `{"id":7,"date":"2024-01-01","category":"a","amount":1}
{"date":"2024-01-02","category":"b","amount":2}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	state, err := jsonl.New(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, state.Rows, 2)
	assert.Equal(t, "7", state.Rows[0].ID)
	assert.Equal(t, "8", state.Rows[1].ID)
}
