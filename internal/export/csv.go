package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

var (
	RecordHeader    = []string{"id", "date", "category", "amount", "note"}
	BreakdownHeader = []string{"category", "total", "percentage"}
	SummaryHeader   = []string{"category", "count", "total"}
)

// RecordRows lays out records in the persisted column order, header first.
func RecordRows(records []expense.Expense) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, RecordHeader)

	for _, e := range records {
		r := expense.ToRow(e)
		rows = append(rows, []string{r.ID, r.Date, r.Category, r.Amount, r.Note})
	}

	return rows
}

func BreakdownRows(lines []report.CategoryTotal) [][]string {
	rows := make([][]string, 0, len(lines)+1)
	rows = append(rows, BreakdownHeader)

	for _, l := range lines {
		rows = append(rows, []string{l.Category, expense.FormatAmount(l.Total), l.Percentage.StringFixed(2)})
	}

	return rows
}

// SummaryRows has one line per category of the summary, largest first.
func SummaryRows(s report.Summary) [][]string {
	categories := s.Categories()

	rows := make([][]string, 0, len(categories)+1)
	rows = append(rows, SummaryHeader)

	for _, c := range categories {
		rows = append(rows, []string{c, strconv.Itoa(s.CountByCategory[c]), expense.FormatAmount(s.ByCategory[c])})
	}

	return rows
}

func WriteCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}

	return nil
}
