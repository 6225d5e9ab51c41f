// Package report aggregates expense snapshots into summaries.
// Every function is pure and all sums are kept in integer cents.
package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

// Summary aggregates the expenses that fall inside a period.
// Total always equals the sum of ByCategory.
type Summary struct {
	Period          Period
	Total           int64
	Count           int
	ByCategory      map[string]int64
	CountByCategory map[string]int
	Entries         []expense.Expense // newest first
}

// CategoryTotal is one line of a breakdown.
type CategoryTotal struct {
	Category   string
	Total      int64
	Percentage decimal.Decimal // of the grand total, 2 decimal places
}

func Summarize(records []expense.Expense, p Period) Summary {
	s := Summary{
		Period:          p,
		ByCategory:      map[string]int64{},
		CountByCategory: map[string]int{},
	}

	for _, e := range records {
		if !p.Contains(e.Date) {
			continue
		}

		s.Total += e.Amount
		s.Count++
		s.ByCategory[e.Category] += e.Amount
		s.CountByCategory[e.Category]++
		s.Entries = append(s.Entries, e)
	}

	slices.SortStableFunc(s.Entries, func(a, b expense.Expense) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return s
}

func Monthly(records []expense.Expense, year int, month time.Month) Summary {
	return Summarize(records, MonthPeriod(year, month))
}

func Weekly(records []expense.Expense, year, week int) Summary {
	return Summarize(records, WeekPeriod(year, week))
}

func Yearly(records []expense.Expense, year int) Summary {
	return Summarize(records, YearPeriod(year))
}

// RangeTotal sums the amounts dated within [from, to].
func RangeTotal(records []expense.Expense, from, to time.Time) int64 {
	p := DayRange(from, to)

	var total int64

	for _, e := range records {
		if p.Contains(e.Date) {
			total += e.Amount
		}
	}

	return total
}

var basisPoints = decimal.NewFromInt(10000)

// Breakdown totals the records per category, largest first, ties broken by
// category name. Percentages are relative to the grand total of records and
// are apportioned by largest remainder so they always add up to exactly 100.00.
func Breakdown(records []expense.Expense) []CategoryTotal {
	totals := map[string]int64{}

	var grand int64

	for _, e := range records {
		totals[e.Category] += e.Amount
		grand += e.Amount
	}

	if grand == 0 {
		return []CategoryTotal{}
	}

	out := make([]CategoryTotal, 0, len(totals))
	for category, total := range totals {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}

	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	apportion(out, decimal.NewFromInt(grand))

	return out
}

// apportion fills in Percentage for each line in hundredths of a percent.
func apportion(lines []CategoryTotal, grand decimal.Decimal) {
	units := make([]int64, len(lines))
	rems := make([]decimal.Decimal, len(lines))
	left := basisPoints.IntPart()

	for i, l := range lines {
		q, r := decimal.NewFromInt(l.Total).Mul(basisPoints).QuoRem(grand, 0)
		units[i] = q.IntPart()
		rems[i] = r
		left -= units[i]
	}

	order := make([]int, len(lines))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		return rems[b].Cmp(rems[a])
	})

	for i := 0; left > 0; i++ {
		units[order[i%len(order)]]++
		left--
	}

	for i := range lines {
		lines[i].Percentage = decimal.New(units[i], -2)
	}
}

// Categories returns the category names of a summary sorted by total, then name.
func (s Summary) Categories() []string {
	names := make([]string, 0, len(s.ByCategory))
	for c := range s.ByCategory {
		names = append(names, c)
	}

	slices.SortFunc(names, func(a, b string) int {
		if c := cmp.Compare(s.ByCategory[b], s.ByCategory[a]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	return names
}

// CategoryGroup holds every record of one category.
type CategoryGroup struct {
	Category string
	Total    int64
	Entries  []expense.Expense
}

// GroupByCategory buckets records per category, ordered by category name.
// Records keep their input order inside a group.
func GroupByCategory(records []expense.Expense) []CategoryGroup {
	idx := map[string]int{}

	var groups []CategoryGroup

	for _, e := range records {
		i, ok := idx[e.Category]
		if !ok {
			i = len(groups)
			idx[e.Category] = i
			groups = append(groups, CategoryGroup{Category: e.Category})
		}

		groups[i].Total += e.Amount
		groups[i].Entries = append(groups[i].Entries, e)
	}

	slices.SortFunc(groups, func(a, b CategoryGroup) int {
		return cmp.Compare(a.Category, b.Category)
	})

	return groups
}
