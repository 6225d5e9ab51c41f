package cli

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

type filterFlags struct {
	categories []string
	from       string
	to         string
	min        string
	max        string
}

func (f *filterFlags) register(fs *pflag.FlagSet) {
	fs.StringArrayVar(&f.categories, "category", nil, "Only this category (repeatable)")
	fs.StringVar(&f.from, "from", "", "Earliest date, inclusive (YYYY-MM-DD or today)")
	fs.StringVar(&f.to, "to", "", "Latest date, inclusive (YYYY-MM-DD or today)")
	fs.StringVar(&f.min, "min", "", "Smallest amount, inclusive")
	fs.StringVar(&f.max, "max", "", "Largest amount, inclusive")
}

// build turns the flags into a filter. Invalid values are validation errors.
func (f *filterFlags) build(now time.Time) (expense.ListFilter, error) {
	filter := expense.ListFilter{Categories: f.categories}

	if f.from != "" {
		t, err := expense.ParseDate(expense.ResolveDate(f.from, now))
		if err != nil {
			return expense.ListFilter{}, err
		}

		filter.From = &t
	}

	if f.to != "" {
		t, err := expense.ParseDate(expense.ResolveDate(f.to, now))
		if err != nil {
			return expense.ListFilter{}, err
		}

		filter.To = &t
	}

	if f.min != "" {
		cents, err := expense.ParseAmount(f.min)
		if err != nil {
			return expense.ListFilter{}, err
		}

		filter.MinAmount = &cents
	}

	if f.max != "" {
		cents, err := expense.ParseAmount(f.max)
		if err != nil {
			return expense.ListFilter{}, err
		}

		filter.MaxAmount = &cents
	}

	return filter, nil
}
