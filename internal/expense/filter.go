package expense

import (
	"slices"
	"time"
)

// ListFilter selects expenses. Every set option must match (logical AND);
// the zero value matches everything.
type ListFilter struct {
	Categories []string   // any of these, compared after normalization
	From       *time.Time // inclusive
	To         *time.Time // inclusive
	MinAmount  *int64     // inclusive, cents
	MaxAmount  *int64     // inclusive, cents
}

// Match reports whether e satisfies the filter.
func (f ListFilter) Match(e Expense) bool {
	return f.matcher()(e)
}

// matcher normalizes the filter once and returns the predicate.
func (f ListFilter) matcher() func(Expense) bool {
	var categories []string
	for _, c := range f.Categories {
		if n := NormalizeCategory(c); n != "" {
			categories = append(categories, n)
		}
	}

	var from, to time.Time
	if f.From != nil {
		from = truncateDay(*f.From)
	}

	if f.To != nil {
		to = truncateDay(*f.To)
	}

	return func(e Expense) bool {
		if len(categories) > 0 && !slices.Contains(categories, e.Category) {
			return false
		}

		if f.From != nil && e.Date.Before(from) {
			return false
		}

		if f.To != nil && e.Date.After(to) {
			return false
		}

		if f.MinAmount != nil && e.Amount < *f.MinAmount {
			return false
		}

		if f.MaxAmount != nil && e.Amount > *f.MaxAmount {
			return false
		}

		return true
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
