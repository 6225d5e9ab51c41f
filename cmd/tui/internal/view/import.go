package view

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/spendlog/internal/expense"
	"github.com/MrJamesThe3rd/spendlog/internal/importer"
)

type importState int

const (
	importStateFormatSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	session *Session

	state         importState
	filePicker    filepicker.Model
	formatOptions []importer.Format
	formatCursor  int

	imported list.Model

	status string
	err    error
}

func NewImportModel(session *Session) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".csv", ".jsonl", ".json", ".txt"}
	fp.SetHeight(15)

	return ImportModel{
		session:       session,
		filePicker:    fp,
		formatOptions: []importer.Format{importer.FormatCSV, importer.FormatJSONL},
	}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Up/Down: scroll | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		switch m.state {
		case importStateFormatSelect:
			return m.updateFormatSelect(msg)
		case importStateResult:
			var cmd tea.Cmd
			m.imported, cmd = m.imported.Update(msg)

			return m, cmd
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d expenses", len(msg.expenses))
		m.imported = newImportedList(msg.expenses)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(m.formatOptions[m.formatCursor], path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateFormatSelect
		return m, nil
	case importStateResult:
		m.state = importStateFormatSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case tea.KeyDown:
		if m.formatCursor < len(m.formatOptions)-1 {
			m.formatCursor++
		}
	case tea.KeyEnter:
		m.state = importStateFilePick
		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFormatSelect:
		return m.viewFormatSelect()
	case importStateFilePick:
		return paddedStyle.Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.formatOptions[m.formatCursor], m.filePicker.View()),
		)
	case importStateImporting:
		return paddedStyle.Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewFormatSelect() string {
	s := "Select Format:\n\n"

	for i, f := range m.formatOptions {
		cursor := " "
		if i == m.formatCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, f)
	}

	s += faintStyle.Render("\nAll rows are imported or none are.")

	return paddedStyle.Render(s)
}

func (m ImportModel) viewResult() string {
	if m.err != nil {
		return paddedStyle.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return paddedStyle.Render(okStyle.Render(m.status) + "\n\n" + m.imported.View())
}

// Messages

type importResultMsg struct {
	expenses []expense.Expense
	err      error
}

func (m ImportModel) importCmd(format importer.Format, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := opCtx()
		defer cancel()

		created, err := m.session.Import(ctx, format, f)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("importing %s: %w", path, err)}
		}

		return importResultMsg{expenses: created}
	}
}

// Imported expense list

type expenseItem struct {
	expense expense.Expense
}

func (i expenseItem) Title() string       { return i.expense.Category }
func (i expenseItem) Description() string { return i.expense.Note }
func (i expenseItem) FilterValue() string { return i.expense.Category }

type expenseDelegate struct{}

func (d expenseDelegate) Height() int                             { return 1 }
func (d expenseDelegate) Spacing() int                            { return 0 }
func (d expenseDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d expenseDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(expenseItem)
	if !ok {
		return
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	r := expense.ToRow(item.expense)
	line := fmt.Sprintf("%s#%s  %s  %-16s %10s", cursor, r.ID, r.Date, r.Category, r.Amount)

	if r.Note != "" {
		line += "  " + r.Note
	}

	fmt.Fprint(w, line)
}

func newImportedList(expenses []expense.Expense) list.Model {
	items := make([]list.Item, len(expenses))
	for i, e := range expenses {
		items[i] = expenseItem{expense: e}
	}

	l := list.New(items, expenseDelegate{}, 80, 15)
	l.Title = "Imported"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}
