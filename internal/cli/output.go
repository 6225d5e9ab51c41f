package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// renderTable draws rows under headers. Columns listed in numeric are right aligned.
func renderTable(w io.Writer, headers []string, rows [][]string, numeric ...int) {
	right := map[int]bool{}
	for _, c := range numeric {
		right[c] = true
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case right[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})

	fmt.Fprintln(w, t.Render())
}

func expenseRows(records []expense.Expense) [][]string {
	rows := make([][]string, len(records))
	for i, e := range records {
		r := expense.ToRow(e)
		rows[i] = []string{r.ID, r.Date, r.Category, r.Amount, r.Note}
	}

	return rows
}

func printExpenses(w io.Writer, records []expense.Expense) {
	var total int64
	for _, e := range records {
		total += e.Amount
	}

	if len(records) > 0 {
		renderTable(w, []string{"ID", "Date", "Category", "Amount", "Note"}, expenseRows(records), 0, 3)
	}

	fmt.Fprintf(w, "%d entries, total %s\n", len(records), expense.FormatAmount(total))
}

func printSummary(w io.Writer, title string, s report.Summary, withEntries bool) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s)", title, s.Period)))

	if s.Count == 0 {
		fmt.Fprintln(w, "No expenses in this period.")
		return
	}

	categories := s.Categories()
	rows := make([][]string, len(categories))

	for i, c := range categories {
		rows[i] = []string{c, fmt.Sprint(s.CountByCategory[c]), expense.FormatAmount(s.ByCategory[c])}
	}

	renderTable(w, []string{"Category", "Count", "Total"}, rows, 1, 2)
	fmt.Fprintf(w, "Total: %s (%d entries)\n", expense.FormatAmount(s.Total), s.Count)

	if withEntries {
		renderTable(w, []string{"ID", "Date", "Category", "Amount", "Note"}, expenseRows(s.Entries), 0, 3)
	}
}

func printBreakdown(w io.Writer, lines []report.CategoryTotal) {
	if len(lines) == 0 {
		fmt.Fprintln(w, "No expenses to break down.")
		return
	}

	rows := make([][]string, len(lines))
	for i, l := range lines {
		rows[i] = []string{l.Category, expense.FormatAmount(l.Total), l.Percentage.StringFixed(2) + "%"}
	}

	renderTable(w, []string{"Category", "Total", "Share"}, rows, 1, 2)
}

func printGroups(w io.Writer, groups []report.CategoryGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No expenses found.")
		return
	}

	for _, g := range groups {
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s: %s (%d entries)", g.Category, expense.FormatAmount(g.Total), len(g.Entries))))
		renderTable(w, []string{"ID", "Date", "Amount", "Note"}, groupRows(g.Entries), 0, 2)
	}
}

func groupRows(records []expense.Expense) [][]string {
	rows := make([][]string, len(records))
	for i, e := range records {
		r := expense.ToRow(e)
		rows[i] = []string{r.ID, r.Date, r.Amount, r.Note}
	}

	return rows
}
