// Package csvfile stores expenses in a CSV file laid out like a records export.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/export"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/fsutil"
)

// Store is an expense.Repository backed by a CSV file. The id high-water mark
// lives in a sidecar next to it.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load(_ context.Context) (expense.State, error) {
	next, err := fsutil.ReadSeq(s.path)
	if err != nil {
		return expense.State{}, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return expense.State{NextID: next}, nil
	}

	if err != nil {
		return expense.State{}, fmt.Errorf("opening %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return expense.State{}, fmt.Errorf("%s: %w", s.path, err)
	}

	return expense.State{Rows: rows, NextID: next}, nil
}

func (s *Store) Save(_ context.Context, state expense.State) error {
	table := make([][]string, 0, len(state.Rows)+1)
	table = append(table, export.RecordHeader)

	for _, r := range state.Rows {
		table = append(table, []string{r.ID, r.Date, r.Category, r.Amount, r.Note})
	}

	// The sequence goes first: one ahead of the rows only leaves a gap in the ids.
	if err := fsutil.WriteSeq(s.path, state.NextID); err != nil {
		return err
	}

	return fsutil.WriteAtomic(s.path, func(w io.Writer) error {
		return export.WriteCSV(w, table)
	})
}

func readRows(r io.Reader) ([]expense.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(export.RecordHeader)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", expense.ErrCorruptData, err)
	}

	if !slices.Equal(header, export.RecordHeader) {
		return nil, fmt.Errorf("%w: unexpected header %v", expense.ErrCorruptData, header)
	}

	var rows []expense.Row

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", expense.ErrCorruptData, err)
		}

		rows = append(rows, expense.Row{ID: rec[0], Date: rec[1], Category: rec[2], Amount: rec[3], Note: rec[4]})
	}

	return rows, nil
}
