package expense

import (
	"errors"
	"time"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrNotFound        = errors.New("expense not found")
	ErrCorruptData     = errors.New("corrupt data")
)

// Expense is a single recorded expense. Values are never mutated once stored.
type Expense struct {
	ID       int64
	Amount   int64 // Amount in cents
	Category string
	Date     time.Time
	Note     string
}

// CreateParams holds user input for a new expense before validation.
type CreateParams struct {
	Amount   string
	Category string
	Date     string
	Note     string
}

// Row is the persisted layout of an expense.
// Column order matches the CSV export: id, date, category, amount, note.
type Row struct {
	ID       string
	Date     string
	Category string
	Amount   string
	Note     string
}

// State is everything a Repository needs to persist between sessions.
// NextID is the id the next created expense will receive.
type State struct {
	Rows   []Row
	NextID int64
}

// IsValidationError reports whether err was produced by Validate.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidDate)
}

// ToRow converts an expense to its persisted layout.
func ToRow(e Expense) Row {
	return Row{
		ID:       formatID(e.ID),
		Date:     FormatDate(e.Date),
		Category: e.Category,
		Amount:   FormatAmount(e.Amount),
		Note:     e.Note,
	}
}
