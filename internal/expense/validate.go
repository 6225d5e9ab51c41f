package expense

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// minorUnits is the number of fraction digits kept for amounts.
const minorUnits = 2

// MaxAmountCents is the largest single amount accepted: 100 billion units.
// Sums of up to about 900,000 such amounts still fit in an int64.
const MaxAmountCents int64 = 1e13

// Decimal exponents outside this window are rejected before rounding, which
// would otherwise build a power of ten of that size.
const (
	minExponent = -10
	maxExponent = 20
)

var maxCents = decimal.NewFromInt(MaxAmountCents)

// Validate checks the candidate against the domain rules and returns the
// normalized expense. The returned expense has no ID.
func Validate(p CreateParams) (Expense, error) {
	amount, err := ParseAmount(p.Amount)
	if err != nil {
		return Expense{}, err
	}

	category := NormalizeCategory(p.Category)
	if category == "" {
		return Expense{}, fmt.Errorf("%w: category cannot be empty", ErrInvalidCategory)
	}

	date, err := ParseDate(p.Date)
	if err != nil {
		return Expense{}, err
	}

	return Expense{
		Amount:   amount,
		Category: category,
		Date:     date,
		Note:     strings.TrimSpace(p.Note),
	}, nil
}

// ParseAmount parses a decimal string into cents, rounding half away from zero.
// Examples: "12.34" -> 1234, "5.5" -> 550, "0.005" -> 1.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	if exp := d.Exponent(); exp < minExponent || exp > maxExponent {
		return 0, fmt.Errorf("%w: %q has too many digits", ErrInvalidAmount, s)
	}

	cents := d.Shift(minorUnits).Round(0)
	if !cents.IsPositive() {
		return 0, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidAmount, s)
	}

	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
	}

	return cents.IntPart(), nil
}

// FormatAmount renders cents with exactly two decimal places.
func FormatAmount(cents int64) string {
	return decimal.New(cents, -minorUnits).StringFixed(minorUnits)
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}

	return t, nil
}

// FormatDate formats a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// NormalizeCategory trims, collapses inner whitespace and case-folds a category
// so that "  Food ", "FOOD" and "food" group together.
func NormalizeCategory(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}

	if id < 1 {
		return 0, fmt.Errorf("invalid id %d: must be positive", id)
	}

	return id, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// FromRow validates a persisted row, keeping its id.
func FromRow(r Row) (Expense, error) {
	id, err := parseID(r.ID)
	if err != nil {
		return Expense{}, err
	}

	e, err := Validate(CreateParams{
		Amount:   r.Amount,
		Category: r.Category,
		Date:     r.Date,
		Note:     r.Note,
	})
	if err != nil {
		return Expense{}, err
	}

	e.ID = id

	return e, nil
}
