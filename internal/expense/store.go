package expense

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Store owns the in-memory collection of expenses for a session.
// It is not safe for concurrent use.
type Store struct {
	records []Expense
	nextID  int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add validates the candidate, assigns a fresh id and appends it.
func (s *Store) Add(p CreateParams) (Expense, error) {
	e, err := Validate(p)
	if err != nil {
		return Expense{}, err
	}

	e.ID = s.nextID
	s.nextID++
	s.records = append(s.records, e)

	return e, nil
}

// Delete removes the expense with the given id.
func (s *Store) Delete(id int64) error {
	idx := s.index(id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	s.records = slices.Delete(s.records, idx, idx+1)

	return nil
}

// Update rebuilds the expense with the given id from its current fields
// overlaid with the non-empty fields of p. The id and position are kept.
func (s *Store) Update(id int64, p CreateParams) (Expense, error) {
	idx := s.index(id)
	if idx < 0 {
		return Expense{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	cur := ToRow(s.records[idx])
	merged := CreateParams{
		Amount:   cmp.Or(strings.TrimSpace(p.Amount), cur.Amount),
		Category: cmp.Or(strings.TrimSpace(p.Category), cur.Category),
		Date:     cmp.Or(strings.TrimSpace(p.Date), cur.Date),
		Note:     cmp.Or(strings.TrimSpace(p.Note), cur.Note),
	}

	e, err := Validate(merged)
	if err != nil {
		return Expense{}, err
	}

	e.ID = id
	s.records[idx] = e

	return e, nil
}

func (s *Store) Get(id int64) (Expense, error) {
	idx := s.index(id)
	if idx < 0 {
		return Expense{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return s.records[idx], nil
}

// List yields the expenses matching the filter in insertion order.
func (s *Store) List(filter ListFilter) iter.Seq[Expense] {
	match := filter.matcher()

	return func(yield func(Expense) bool) {
		for _, e := range s.records {
			if !match(e) {
				continue
			}

			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store) Len() int {
	return len(s.records)
}

// Snapshot returns a copy of every expense in insertion order.
func (s *Store) Snapshot() []Expense {
	return slices.Clone(s.records)
}

// Load replaces the whole collection with the persisted state.
// Any invalid row aborts the load with ErrCorruptData and leaves the store unchanged.
func (s *Store) Load(state State) error {
	records := make([]Expense, 0, len(state.Rows))
	seen := make(map[int64]struct{}, len(state.Rows))

	var maxID int64

	for i, r := range state.Rows {
		e, err := FromRow(r)
		if err != nil {
			return fmt.Errorf("%w: row %d: %w", ErrCorruptData, i+1, err)
		}

		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: row %d: duplicate id %d", ErrCorruptData, i+1, e.ID)
		}

		seen[e.ID] = struct{}{}
		maxID = max(maxID, e.ID)
		records = append(records, e)
	}

	s.records = records
	s.nextID = max(state.NextID, maxID+1, 1)

	return nil
}

// State returns the persisted form of the store.
func (s *Store) State() State {
	rows := make([]Row, len(s.records))
	for i, e := range s.records {
		rows[i] = ToRow(e)
	}

	return State{Rows: rows, NextID: s.nextID}
}

// NextID is the id the next added expense will receive.
func (s *Store) NextID() int64 {
	return s.nextID
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.records, func(e Expense) bool { return e.ID == id })
}

// restore puts back a previous collection, keeping the id high-water mark
// so ids handed out in between are never reused.
func (s *Store) restore(records []Expense, nextID int64) {
	s.records = records
	s.nextID = max(s.nextID, nextID)
}
