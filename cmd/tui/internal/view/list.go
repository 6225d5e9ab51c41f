package view

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/report"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
	listStateConfirmDelete
)

var listTimeframes = []Timeframe{TimeframeAll, TimeframeThisMonth, TimeframeLastMonth, TimeframeThisWeek}

type ListModel struct {
	session *Session

	state    listState
	table    table.Model
	expenses []expense.Expense
	form     *huh.Form
	fields   *expenseFields
	confirm  *bool

	dateFilterIdx int
	categoryIdx   int
	categories    []string

	filter expense.ListFilter
	err    error
	status string
}

func NewListModel(session *Session) ListModel {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 16},
		{Title: "Amount", Width: 12},
		{Title: "Note", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		session: session,
		table:   t,
	}
}

func (m ListModel) Title() string { return "Expenses" }
func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateEdit:
		return "Navigate form | Esc: cancel"
	case listStateConfirmDelete:
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | e: edit | x: delete | c: category | d: date | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.expenses = msg.expenses
		m.categories = msg.categories
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		m.err = msg.err
		m.status = msg.status
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	switch m.state {
	case listStateEdit, listStateConfirmDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "x":
			return m.enterDeleteMode()
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(m.categories) + 1)
			m.applyFilter(time.Now())

			return m, m.loadCmd()
		case "d":
			m.dateFilterIdx = (m.dateFilterIdx + 1) % len(listTimeframes)
			m.applyFilter(time.Now())

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) selected() (expense.Expense, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.expenses) {
		return expense.Expense{}, false
	}

	return m.expenses[idx], true
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.fields = fieldsFrom(e)
	m.form = newExpenseForm(m.fields, true)
	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete expense #%d?", e.ID)).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirm),
		),
	).WithWidth(45).WithShowHelp(false)
	m.state = listStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == listStateConfirmDelete {
		return m, m.deleteCmd()
	}

	return m, m.saveCmd()
}

func (m ListModel) View() string {
	category := "All"
	if m.categoryIdx > 0 && m.categoryIdx <= len(m.categories) {
		category = m.categories[m.categoryIdx-1]
	}

	header := fmt.Sprintf(
		"Filter: [c] Category: %s | [d] Date: %s",
		activeStyle(category),
		activeStyle(listTimeframes[m.dateFilterIdx].String()),
	)

	var total int64
	for _, e := range m.expenses {
		total += e.Amount
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(fmt.Sprintf("%d entries, total %s", len(m.expenses), expense.FormatAmount(total))),
	)

	if m.state != listStateBrowse && m.form != nil {
		title := "Delete Expense"
		if m.state == listStateEdit {
			title = "Edit Expense\n\nLeave a field empty to keep it."
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return paddedStyle.Render(content)
}

func (m *ListModel) applyFilter(now time.Time) {
	m.filter = expense.ListFilter{}

	if m.categoryIdx > 0 && m.categoryIdx <= len(m.categories) {
		m.filter.Categories = []string{m.categories[m.categoryIdx-1]}
	}

	if tf := listTimeframes[m.dateFilterIdx]; tf != TimeframeAll {
		p := tf.Period(now)
		m.filter.From = &p.From
		m.filter.To = &p.To
	}
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.expenses))
	for _, e := range m.expenses {
		r := expense.ToRow(e)
		rows = append(rows, table.Row{r.ID, r.Date, r.Category, r.Amount, r.Note})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	expenses   []expense.Expense
	categories []string
}

func (m ListModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		all := m.session.List(ctx, expense.ListFilter{})

		return loadListMsg{
			expenses:   m.session.List(ctx, filter),
			categories: categoryNames(all),
		}
	}
}

func categoryNames(records []expense.Expense) []string {
	groups := report.GroupByCategory(records)

	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Category
	}

	return names
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) saveCmd() tea.Cmd {
	e, ok := m.selected()
	if !ok {
		return nil
	}

	params := m.fields.params(time.Now())

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		updated, err := m.session.Update(ctx, e.ID, params)
		if err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: "Updated expense #" + strconv.FormatInt(updated.ID, 10)}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	e, ok := m.selected()
	if !ok || m.confirm == nil || !*m.confirm {
		return func() tea.Msg { return listSaveMsg{} }
	}

	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		if err := m.session.Delete(ctx, e.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Deleted expense #%d", e.ID)}
	}
}
