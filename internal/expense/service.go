package expense

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, state State) error
}

// Service binds a Store to its Repository. Every successful mutation is
// saved before it returns; a failed save rolls the Store back.
type Service struct {
	repo  Repository
	store *Store
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, store: NewStore()}
}

// Open loads the persisted state into the store.
func (s *Service) Open(ctx context.Context) error {
	state, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}

	if err := s.store.Load(state); err != nil {
		return fmt.Errorf("loading expenses: %w", err)
	}

	slog.Debug("expenses loaded", "count", s.store.Len(), "next_id", s.store.NextID())

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Expense, error) {
	var created Expense

	err := s.mutate(ctx, func(st *Store) error {
		e, err := st.Add(params)
		created = e

		return err
	})
	if err != nil {
		return Expense{}, err
	}

	slog.Info("expense created", "id", created.ID, "amount_cents", created.Amount, "category", created.Category)

	return created, nil
}

// CreateBatch adds every candidate or none of them.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	created := make([]Expense, 0, len(params))

	err := s.mutate(ctx, func(st *Store) error {
		for i, p := range params {
			e, err := st.Add(p)
			if err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}

			created = append(created, e)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("expenses imported", "count", len(created))

	return created, nil
}

// ImportRows adds previously exported rows as new expenses. Row ids are
// ignored and fresh ones assigned.
func (s *Service) ImportRows(ctx context.Context, rows []Row) ([]Expense, error) {
	params := make([]CreateParams, len(rows))
	for i, r := range rows {
		params[i] = CreateParams{
			Amount:   r.Amount,
			Category: r.Category,
			Date:     r.Date,
			Note:     r.Note,
		}
	}

	return s.CreateBatch(ctx, params)
}

// Update changes the non-empty fields of an existing expense.
func (s *Service) Update(ctx context.Context, id int64, params CreateParams) (Expense, error) {
	var updated Expense

	err := s.mutate(ctx, func(st *Store) error {
		e, err := st.Update(id, params)
		updated = e

		return err
	})
	if err != nil {
		return Expense{}, err
	}

	slog.Info("expense updated", "id", updated.ID, "amount_cents", updated.Amount, "category", updated.Category)

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.mutate(ctx, func(st *Store) error {
		return st.Delete(id)
	})
	if err != nil {
		return err
	}

	slog.Info("expense deleted", "id", id)

	return nil
}

func (s *Service) Get(_ context.Context, id int64) (Expense, error) {
	return s.store.Get(id)
}

func (s *Service) List(_ context.Context, filter ListFilter) []Expense {
	return slices.Collect(s.store.List(filter))
}

// Snapshot returns every expense in insertion order.
func (s *Service) Snapshot() []Expense {
	return s.store.Snapshot()
}

// mutate applies fn to the store and saves the result. On any error the
// store goes back to what it held before fn ran.
func (s *Service) mutate(ctx context.Context, fn func(*Store) error) error {
	prev := s.store.Snapshot()
	prevNext := s.store.NextID()

	if err := fn(s.store); err != nil {
		s.store.restore(prev, prevNext)
		return err
	}

	if err := s.repo.Save(ctx, s.store.State()); err != nil {
		s.store.restore(prev, prevNext)
		return fmt.Errorf("saving expenses: %w", err)
	}

	slog.Debug("expenses saved", "count", s.store.Len())

	return nil
}
