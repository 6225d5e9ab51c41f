package view

import (
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

// expenseFields backs the huh inputs. It lives behind a pointer so the form
// keeps writing into the same values as the model is copied around.
type expenseFields struct {
	amount   string
	category string
	date     string
	note     string
}

func fieldsFrom(e expense.Expense) *expenseFields {
	r := expense.ToRow(e)

	return &expenseFields{amount: r.Amount, category: r.Category, date: r.Date, note: r.Note}
}

func (f *expenseFields) params(now time.Time) expense.CreateParams {
	return expense.CreateParams{
		Amount:   f.amount,
		Category: f.category,
		Date:     expense.ResolveDate(f.date, now),
		Note:     f.note,
	}
}

// newExpenseForm builds the add/edit form. With partial set, empty fields are
// accepted and leave the stored value unchanged.
func newExpenseForm(f *expenseFields, partial bool) *huh.Form {
	optional := func(check func(string) error) func(string) error {
		return func(s string) error {
			if partial && strings.TrimSpace(s) == "" {
				return nil
			}

			return check(s)
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&f.amount).
				Validate(optional(func(s string) error {
					_, err := expense.ParseAmount(s)
					return err
				})),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("food").
				Value(&f.category).
				Validate(optional(func(s string) error {
					_, err := expense.Validate(expense.CreateParams{Amount: "1", Category: s, Date: "2000-01-01"})
					return err
				})),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD, today or yesterday").
				Value(&f.date).
				Validate(optional(func(s string) error {
					_, err := expense.ParseDate(expense.ResolveDate(s, time.Now()))
					return err
				})),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&f.note),
		),
	).WithWidth(45).WithShowHelp(false)
}
