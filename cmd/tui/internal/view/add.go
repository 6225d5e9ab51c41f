package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
)

// AddModel records new expenses one after another until the user leaves.
type AddModel struct {
	session *Session

	form   *huh.Form
	fields *expenseFields
	saving bool

	last expense.Expense
	err  error
}

func NewAddModel(session *Session) AddModel {
	m := AddModel{session: session}
	m.reset()

	return m
}

func (m *AddModel) reset() {
	m.fields = &expenseFields{date: "today"}
	m.form = newExpenseForm(m.fields, false)
}

func (m AddModel) Title() string     { return "Add Expense" }
func (m AddModel) ShortHelp() string { return "Enter: next field | Esc: back" }

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case addResultMsg:
		m.saving = false
		m.err = msg.err

		if msg.err == nil {
			m.last = msg.expense
		}

		m.reset()

		return m, m.form.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.saving {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.saving = true

	return m, m.createCmd(m.fields.params(time.Now()))
}

func (m AddModel) View() string {
	status := ""

	switch {
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	case m.last.ID != 0:
		r := expense.ToRow(m.last)
		status = okStyle.Render(fmt.Sprintf("Added expense #%s: %s %s %s", r.ID, r.Date, r.Category, r.Amount)) + "\n\n"
	}

	if m.saving {
		return paddedStyle.Render(status + "Saving...")
	}

	return paddedStyle.Render(status + m.form.View())
}

type addResultMsg struct {
	expense expense.Expense
	err     error
}

func (m AddModel) createCmd(params expense.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()

		e, err := m.session.Create(ctx, params)

		return addResultMsg{expense: e, err: err}
	}
}
