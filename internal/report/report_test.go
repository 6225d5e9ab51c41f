package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func sample() []expense.Expense {
	return []expense.Expense{
		{ID: 1, Amount: 1000, Category: "food", Date: date(2024, 1, 5)},
		{ID: 2, Amount: 550, Category: "food", Date: date(2024, 1, 20)},
		{ID: 3, Amount: 2000, Category: "travel", Date: date(2024, 2, 1)},
	}
}

func TestMonthly(t *testing.T) {
	got := report.Monthly(sample(), 2024, time.January)

	assert.Equal(t, int64(1550), got.Total)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, map[string]int64{"food": 1550}, got.ByCategory)
	assert.Equal(t, map[string]int{"food": 2}, got.CountByCategory)
	assert.Equal(t, "2024-01-01..2024-01-31", got.Period.String())

	require.Len(t, got.Entries, 2)
	assert.Equal(t, int64(2), got.Entries[0].ID)
	assert.Equal(t, int64(1), got.Entries[1].ID)
}

func TestMonthly_Empty(t *testing.T) {
	got := report.Monthly(nil, 2024, time.March)

	assert.Zero(t, got.Total)
	assert.Zero(t, got.Count)
	assert.Empty(t, got.ByCategory)
	assert.Empty(t, got.Entries)
}

func TestMonthly_CountsDuplicates(t *testing.T) {
	e := expense.Expense{Amount: 300, Category: "coffee", Date: date(2024, 4, 2)}
	records := []expense.Expense{e, e, e}

	got := report.Monthly(records, 2024, time.April)
	assert.Equal(t, int64(900), got.Total)
	assert.Equal(t, 3, got.CountByCategory["coffee"])
}

func TestMonthly_MatchesRangeTotal(t *testing.T) {
	records := []expense.Expense{
		{ID: 1, Amount: 101, Category: "a", Date: date(2024, 1, 31)},
		{ID: 2, Amount: 202, Category: "b", Date: date(2024, 2, 1)},
		{ID: 3, Amount: 303, Category: "a", Date: date(2024, 2, 29)},
		{ID: 4, Amount: 404, Category: "c", Date: date(2024, 3, 1)},
		{ID: 5, Amount: 505, Category: "b", Date: date(2023, 2, 15)},
	}

	for m := time.January; m <= time.December; m++ {
		s := report.Monthly(records, 2024, m)
		p := report.MonthPeriod(2024, m)

		assert.Equal(t, report.RangeTotal(records, p.From, p.To), s.Total, m.String())

		var sum int64
		for _, v := range s.ByCategory {
			sum += v
		}

		assert.Equal(t, s.Total, sum, m.String())
	}

	assert.Equal(t, int64(505), report.Monthly(records, 2024, time.February).Total)
}

func TestRangeTotal(t *testing.T) {
	records := sample()

	assert.Equal(t, int64(3550), report.RangeTotal(records, date(2024, 1, 5), date(2024, 2, 1)))
	assert.Equal(t, int64(550), report.RangeTotal(records, date(2024, 1, 6), date(2024, 1, 31)))
	assert.Zero(t, report.RangeTotal(records, date(2025, 1, 1), date(2025, 12, 31)))
	assert.Zero(t, report.RangeTotal(nil, date(2024, 1, 1), date(2024, 12, 31)))
	assert.Zero(t, report.RangeTotal(records, date(2024, 2, 1), date(2024, 1, 1)))
}

func TestBreakdown(t *testing.T) {
	got := report.Breakdown(sample())

	require.Len(t, got, 2)
	assert.Equal(t, "travel", got[0].Category)
	assert.Equal(t, int64(2000), got[0].Total)
	assert.Equal(t, "56.34", got[0].Percentage.StringFixed(2))
	assert.Equal(t, "food", got[1].Category)
	assert.Equal(t, int64(1550), got[1].Total)
	assert.Equal(t, "43.66", got[1].Percentage.StringFixed(2))
}

func TestBreakdown_Empty(t *testing.T) {
	got := report.Breakdown(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBreakdown_TiesByName(t *testing.T) {
	records := []expense.Expense{
		{ID: 1, Amount: 100, Category: "zoo", Date: date(2024, 1, 1)},
		{ID: 2, Amount: 100, Category: "art", Date: date(2024, 1, 1)},
		{ID: 3, Amount: 100, Category: "music", Date: date(2024, 1, 1)},
	}

	got := report.Breakdown(records)
	require.Len(t, got, 3)
	assert.Equal(t, "art", got[0].Category)
	assert.Equal(t, "music", got[1].Category)
	assert.Equal(t, "zoo", got[2].Category)

	assert.Equal(t, "33.34", got[0].Percentage.StringFixed(2))
	assert.Equal(t, "33.33", got[1].Percentage.StringFixed(2))
	assert.Equal(t, "33.33", got[2].Percentage.StringFixed(2))
}

func TestBreakdown_Reconciles(t *testing.T) {
	records := []expense.Expense{
		{ID: 1, Amount: 1, Category: "a", Date: date(2024, 1, 1)},
		{ID: 2, Amount: 7, Category: "b", Date: date(2024, 1, 1)},
		{ID: 3, Amount: 13, Category: "c", Date: date(2024, 1, 1)},
		{ID: 4, Amount: 29, Category: "d", Date: date(2024, 1, 1)},
		{ID: 5, Amount: 31, Category: "e", Date: date(2024, 1, 1)},
		{ID: 6, Amount: 9999, Category: "a", Date: date(2024, 6, 1)},
	}

	got := report.Breakdown(records)

	var total int64

	pct := decimal.Zero

	for _, l := range got {
		total += l.Total
		pct = pct.Add(l.Percentage)
	}

	assert.Equal(t, report.RangeTotal(records, date(2024, 1, 1), date(2024, 12, 31)), total)
	assert.Equal(t, "100.00", pct.StringFixed(2))
}

func TestWeekly(t *testing.T) {
	records := []expense.Expense{
		{ID: 1, Amount: 100, Category: "a", Date: date(2024, 1, 1)},  // Monday, week 1
		{ID: 2, Amount: 200, Category: "a", Date: date(2024, 1, 7)},  // Sunday, week 1
		{ID: 3, Amount: 400, Category: "b", Date: date(2024, 1, 8)},  // week 2
		{ID: 4, Amount: 800, Category: "b", Date: date(2023, 12, 31)}, // week 52 of 2023
	}

	got := report.Weekly(records, 2024, 1)
	assert.Equal(t, int64(300), got.Total)
	assert.Equal(t, "2024-01-01..2024-01-07", got.Period.String())

	assert.Equal(t, int64(400), report.Weekly(records, 2024, 2).Total)
	assert.Equal(t, int64(800), report.Weekly(records, 2023, 52).Total)
}

func TestWeekPeriodMatchesISOWeek(t *testing.T) {
	for _, year := range []int{2020, 2021, 2024, 2026} {
		for week := 1; week <= 52; week++ {
			p := report.WeekPeriod(year, week)

			y, w := p.From.ISOWeek()
			assert.Equal(t, year, y)
			assert.Equal(t, week, w)
			assert.Equal(t, time.Monday, p.From.Weekday())
			assert.Equal(t, time.Sunday, p.To.Weekday())
		}
	}
}

func TestYearly(t *testing.T) {
	got := report.Yearly(sample(), 2024)
	assert.Equal(t, int64(3550), got.Total)
	assert.Equal(t, []string{"travel", "food"}, got.Categories())

	assert.Zero(t, report.Yearly(sample(), 2023).Total)
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Month
		wantErr bool
	}{
		{in: "1", want: time.January},
		{in: "12", want: time.December},
		{in: "January", want: time.January},
		{in: "feb", want: time.February},
		{in: " SEPT ", want: time.September},
		{in: "0", wantErr: true},
		{in: "13", wantErr: true},
		{in: "ju", wantErr: true},
		{in: "smarch", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseMonth(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGroupByCategory(t *testing.T) {
	got := report.GroupByCategory(sample())

	require.Len(t, got, 2)
	assert.Equal(t, "food", got[0].Category)
	assert.Equal(t, int64(1550), got[0].Total)
	require.Len(t, got[0].Entries, 2)
	assert.Equal(t, int64(1), got[0].Entries[0].ID)
	assert.Equal(t, "travel", got[1].Category)

	assert.Empty(t, report.GroupByCategory(nil))
}

func TestMonthly_LargestAmountsDoNotWrap(t *testing.T) {
	store := expense.NewStore()

	for _, c := range []string{"a", "a", "b", "b"} {
		_, err := store.Add(expense.CreateParams{Amount: "100000000000.00", Category: c, Date: "2024-01-10"})
		require.NoError(t, err)
	}

	_, err := store.Add(expense.CreateParams{Amount: "92233720368547758.07", Category: "c", Date: "2024-01-10"})
	require.ErrorIs(t, err, expense.ErrInvalidAmount)

	records := store.Snapshot()

	got := report.Monthly(records, 2024, time.January)
	assert.Equal(t, 4*expense.MaxAmountCents, got.Total)
	assert.Equal(t, got.Total, got.ByCategory["a"]+got.ByCategory["b"])

	lines := report.Breakdown(records)
	require.Len(t, lines, 2)
	assert.Equal(t, "50.00", lines[0].Percentage.StringFixed(2))
	assert.Equal(t, "50.00", lines[1].Percentage.StringFixed(2))
}
