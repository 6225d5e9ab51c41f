// Package jsonl stores expenses as one JSON object per line.
//
// Lines written by older versions of the tool carry no id and name the note
// "item"; both are accepted on load.
package jsonl

import (
	"bufio"
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/storage/fsutil"
)

const maxLineSize = 1 << 20

// ErrMalformed marks a line that is not a JSON expense object.
var ErrMalformed = errors.New("malformed line")

type line struct {
	ID       *int64      `json:"id,omitempty"` // nil only on legacy lines
	Date     string      `json:"date"`
	Category string      `json:"category"`
	Amount   json.Number `json:"amount"`
	Note     string      `json:"note,omitempty"`
	Item     string      `json:"item,omitempty"`
}

// Store is an expense.Repository backed by a line JSON file.
type Store struct {
	path string
}

func New(path string) *Store {
	return &Store{path: path}
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

	rows, err := Decode(f)
	if err != nil {
		return expense.State{}, fmt.Errorf("%w: %s: %w", expense.ErrCorruptData, s.path, err)
	}

	return expense.State{Rows: assignIDs(rows, next), NextID: next}, nil
}

// Save writes the sequence first: a sequence ahead of the rows only leaves a
// gap in the ids.
func (s *Store) Save(_ context.Context, state expense.State) error {
	if err := fsutil.WriteSeq(s.path, state.NextID); err != nil {
		return err
	}

	return fsutil.WriteAtomic(s.path, func(w io.Writer) error {
		return Encode(w, state.Rows)
	})
}

// Decode reads every non-blank line of r. Rows without an id key get an empty
// ID; a present id is kept as written for the validator to judge.
func Decode(r io.Reader) ([]expense.Row, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var rows []expense.Row

	for n := 1; sc.Scan(); n++ {
		b := sc.Bytes()
		if len(bytes.TrimSpace(b)) == 0 {
			continue
		}

		var l line
		if err := json.Unmarshal(b, &l); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformed, n, err)
		}

		row := expense.Row{
			Date:     l.Date,
			Category: l.Category,
			Amount:   l.Amount.String(),
			Note:     cmp.Or(l.Note, l.Item),
		}

		if l.ID != nil {
			row.ID = strconv.FormatInt(*l.ID, 10)
		}

		rows = append(rows, row)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}

	return rows, nil
}

func Encode(w io.Writer, rows []expense.Row) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)

	for _, r := range rows {
		id, err := strconv.ParseInt(r.ID, 10, 64)
		if err != nil {
			return fmt.Errorf("encoding row %q: %w", r.ID, err)
		}

		if err := enc.Encode(line{
			ID:       &id,
			Date:     r.Date,
			Category: r.Category,
			Amount:   json.Number(r.Amount),
			Note:     r.Note,
		}); err != nil {
			return fmt.Errorf("encoding row %s: %w", r.ID, err)
		}
	}

	return bw.Flush()
}

// assignIDs numbers id-less rows after the highest id in use.
func assignIDs(rows []expense.Row, next int64) []expense.Row {
	top := next - 1

	for _, r := range rows {
		if id, err := strconv.ParseInt(r.ID, 10, 64); err == nil {
			top = max(top, id)
		}
	}

	for i := range rows {
		if rows[i].ID == "" {
			top++
			rows[i].ID = strconv.FormatInt(top, 10)
		}
	}

	return rows
}
